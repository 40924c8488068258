package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ClientAnalytics(c *fiber.Ctx) error {
	metrics, err := handler.analyticsService.ClientMetrics(handler.now())
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondData(c, fiber.StatusOK, metrics)
}

func (handler *Handler) AttendanceAnalytics(c *fiber.Ctx) error {
	metrics, err := handler.analyticsService.AttendanceMetrics(handler.now())
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondData(c, fiber.StatusOK, metrics)
}

func (handler *Handler) PerformanceAnalytics(c *fiber.Ctx) error {
	metrics, err := handler.analyticsService.Performance()
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondData(c, fiber.StatusOK, metrics)
}

// FollowupAnalytics lists clients due for contact within the next week,
// scoped to the caller's visibility.
func (handler *Handler) FollowupAnalytics(c *fiber.Ctx) error {
	clients, err := handler.analyticsService.Followups(mustCurrentUser(c), handler.now())
	if err != nil {
		return handler.serverError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(clients),
		"data":    clients,
	})
}

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	data, err := handler.analyticsService.Dashboard(mustCurrentUser(c), handler.now())
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondData(c, fiber.StatusOK, data)
}
