package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"github.com/sagarvd01/teamtrack/internal/services"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	params := query.Parse(c.Queries(), services.UserListSpec)
	users, total, err := handler.userService.List(params)
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondList(c, users, len(users), total, query.Paginate(params.Page, params.Limit, total))
}

func (handler *Handler) GetUser(c *fiber.Ctx) error {
	userID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	user, err := handler.userService.Get(userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

// CreateUser is the admin variant of registration: the role in the body is
// honored as-is since the route is already admin-gated.
func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apiError(c, fiber.StatusBadRequest, "Please provide a name")
	}
	if !validEmail(req.Email) {
		return apiError(c, fiber.StatusBadRequest, "Please provide a valid email")
	}
	if len(req.Password) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	user, err := handler.authService.Register(services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       models.ParseRole(req.Role),
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, user)
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var update services.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if update.Email != nil && !validEmail(*update.Email) {
		return apiError(c, fiber.StatusBadRequest, "Please provide a valid email")
	}
	if update.Password != nil && *update.Password != "" && len(*update.Password) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	user, err := handler.userService.Update(userID, update)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

// DeleteUser deactivates the account rather than removing the row, so
// clients and attendance history keep a resolvable owner.
func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if err := handler.userService.Deactivate(userID); err != nil {
		return handler.serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "User deactivated")
}
