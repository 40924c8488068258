package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/services"
)

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// Register creates an account. Anyone may self-register as a team member;
// the admin role is only granted when the request carries a valid admin
// token.
func (handler *Handler) Register(c *fiber.Ctx) error {
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

	role := models.RoleTeamMember
	if models.Role(req.Role) == models.RoleAdmin {
		caller := handler.identityFromToken(c)
		if caller == nil || !caller.IsAdmin() {
			return apiError(c, fiber.StatusForbidden, "Only an admin can create admin accounts")
		}
		role = models.RoleAdmin
	}

	user, err := handler.authService.Register(services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       role,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}

	return handler.respondWithToken(c, fiber.StatusCreated, &user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "Please provide an email and password")
	}

	user, err := handler.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		return handler.serviceError(c, err)
	}

	return handler.respondWithToken(c, fiber.StatusOK, &user)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	return respondData(c, fiber.StatusOK, mustCurrentUser(c))
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdatePassword verifies the current password and issues a fresh token on
// success.
func (handler *Handler) UpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apiError(c, fiber.StatusBadRequest, "Please provide current and new password")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	user := mustCurrentUser(c)
	if err := handler.authService.ChangePassword(user, req.CurrentPassword, req.NewPassword); err != nil {
		return handler.serviceError(c, err)
	}

	return handler.respondWithToken(c, fiber.StatusOK, user)
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, status int, user *models.User) error {
	token, err := handler.buildToken(user)
	if err != nil {
		return handler.serverError(c, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user.Summary(),
	})
}
