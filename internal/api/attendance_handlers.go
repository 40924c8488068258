package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"github.com/sagarvd01/teamtrack/internal/services"
)

type checkRequest struct {
	Location *models.GeoPoint `json:"location"`
	Notes    string           `json:"notes"`
}

// CheckIn opens today's attendance record for the caller.
func (handler *Handler) CheckIn(c *fiber.Ctx) error {
	var req checkRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apiError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	record, err := handler.attendanceService.CheckIn(mustCurrentUser(c).ID, req.Location, req.Notes, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, record)
}

// CheckOut completes today's record and fills in the worked hours.
func (handler *Handler) CheckOut(c *fiber.Ctx) error {
	var req checkRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apiError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	record, err := handler.attendanceService.CheckOut(mustCurrentUser(c).ID, req.Location, req.Notes, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusOK, record)
}

// MyAttendance lists the caller's own records.
func (handler *Handler) MyAttendance(c *fiber.Ctx) error {
	params := query.Parse(c.Queries(), services.AttendanceListSpec)
	records, total, err := handler.attendanceService.ListMine(mustCurrentUser(c).ID, params)
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondList(c, records, len(records), total, query.Paginate(params.Page, params.Limit, total))
}

func (handler *Handler) ListAttendance(c *fiber.Ctx) error {
	params := query.Parse(c.Queries(), services.AttendanceListSpec)
	records, total, err := handler.attendanceService.List(mustCurrentUser(c), params)
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondList(c, records, len(records), total, query.Paginate(params.Page, params.Limit, total))
}

func (handler *Handler) GetAttendance(c *fiber.Ctx) error {
	recordID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}
	record, err := handler.attendanceService.GetAuthorized(mustCurrentUser(c), recordID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusOK, record)
}

// UpdateAttendance is the admin edit endpoint. An unknown id with a user and
// date in the body creates the record instead, mirroring a manual correction
// of a missed day.
func (handler *Handler) UpdateAttendance(c *fiber.Ctx) error {
	recordID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var update services.AttendanceUpdate
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if update.Status != nil && !update.Status.Valid() {
		return apiError(c, fiber.StatusBadRequest, "Invalid attendance status")
	}

	record, created, err := handler.attendanceService.AdminUpsert(recordID, update)
	if err != nil {
		return handler.serviceError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return respondData(c, status, record)
}

func (handler *Handler) DeleteAttendance(c *fiber.Ctx) error {
	recordID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}
	if err := handler.attendanceService.Delete(recordID); err != nil {
		return handler.serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Attendance record deleted")
}
