package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Put("/updatepassword", handler.AuthRequired, handler.UpdatePassword)

	users := api.Group("/users", handler.AuthRequired, handler.AdminOnly)
	users.Get("", handler.ListUsers)
	users.Post("", handler.CreateUser)
	users.Get("/:id", handler.GetUser)
	users.Put("/:id", handler.UpdateUser)
	users.Delete("/:id", handler.DeleteUser)

	clients := api.Group("/clients", handler.AuthRequired)
	clients.Get("", handler.ListClients)
	clients.Post("", handler.CreateClient)
	clients.Get("/follow-up-today", handler.FollowUpClients)
	clients.Get("/:id", handler.GetClient)
	clients.Put("/:id", handler.UpdateClient)
	clients.Delete("/:id", handler.DeleteClient)
	clients.Post("/:id/interactions", handler.AddInteraction)
	clients.Put("/:id/interactions/:interactionID", handler.UpdateInteraction)
	clients.Delete("/:id/interactions/:interactionID", handler.DeleteInteraction)
	clients.Post("/:id/feedback", handler.AddFeedback)
	clients.Put("/:id/feedback/:feedbackID", handler.UpdateFeedback)
	clients.Delete("/:id/feedback/:feedbackID", handler.DeleteFeedback)

	attendance := api.Group("/attendance", handler.AuthRequired)
	attendance.Post("", handler.CheckIn)
	attendance.Put("/checkout", handler.CheckOut)
	attendance.Get("/me", handler.MyAttendance)
	attendance.Get("", handler.AdminOnly, handler.ListAttendance)
	attendance.Get("/:id", handler.GetAttendance)
	attendance.Put("/:id", handler.AdminOnly, handler.UpdateAttendance)
	attendance.Delete("/:id", handler.AdminOnly, handler.DeleteAttendance)

	analytics := api.Group("/analytics", handler.AuthRequired)
	analytics.Get("/clients", handler.AdminOnly, handler.ClientAnalytics)
	analytics.Get("/attendance", handler.AdminOnly, handler.AttendanceAnalytics)
	analytics.Get("/performance", handler.AdminOnly, handler.PerformanceAnalytics)
	analytics.Get("/followups", handler.FollowupAnalytics)
	analytics.Get("/dashboard", handler.Dashboard)
}
