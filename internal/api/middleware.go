package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
)

// bearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. Empty string when the header is absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired verifies the bearer token, loads the account and stores it in
// the request context. Deactivated accounts are rejected even with a valid
// token.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized to access this route")
	}
	claims, err := handler.parseToken(raw)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized to access this route")
	}
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized to access this route")
	}
	if !user.IsActive {
		return apiError(c, fiber.StatusUnauthorized, "Account has been deactivated")
	}
	c.Locals(contextUserKey, &user)
	return c.Next()
}

// AdminOnly guards a route behind the admin role. It must run after
// AuthRequired.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authorized to access this route")
	}
	if user.Role != models.RoleAdmin {
		return apiError(c, fiber.StatusForbidden, "User role is not authorized to access this route")
	}
	return c.Next()
}

// identityFromToken resolves the caller when a valid bearer token happens to
// be present. Registration uses it to decide whether an admin role may be
// granted; anonymous requests simply get no identity.
func (handler *Handler) identityFromToken(c *fiber.Ctx) *models.User {
	raw := bearerToken(c)
	if raw == "" {
		return nil
	}
	claims, err := handler.parseToken(raw)
	if err != nil {
		return nil
	}
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil
	}
	return &user
}
