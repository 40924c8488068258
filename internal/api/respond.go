package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/query"
	"github.com/sagarvd01/teamtrack/internal/services"
	"github.com/sirupsen/logrus"
)

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func respondList(c *fiber.Ctx, data interface{}, count int, total int64, pagination query.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"count":      count,
		"total":      total,
		"pagination": pagination,
		"data":       data,
	})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// serverError logs the cause and returns a generic 500 envelope. The error
// detail is only echoed back outside production.
func (handler *Handler) serverError(c *fiber.Ctx, err error) error {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("request failed")

	body := fiber.Map{
		"success": false,
		"message": "Server Error",
	}
	if !handler.production {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// serviceError maps the service sentinel errors onto HTTP statuses. Anything
// unrecognized is treated as an internal failure.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrSubEntryNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrAttendanceNotFound),
		errors.Is(err, services.ErrCheckInNotFound),
		errors.Is(err, services.ErrAttendanceUserNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrClientAccessDenied),
		errors.Is(err, services.ErrReassignDenied),
		errors.Is(err, services.ErrDeleteDenied),
		errors.Is(err, services.ErrAttendanceAccessDenied):
		return apiError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrAlreadyCheckedOut):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDeactivated),
		errors.Is(err, services.ErrWrongPassword):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	}
	return handler.serverError(c, err)
}
