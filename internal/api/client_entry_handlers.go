package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
)

type interactionRequest struct {
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

func (handler *Handler) AddInteraction(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}

	var req interactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	interactionType := models.InteractionType(req.Type)
	if !interactionType.Valid() {
		return apiError(c, fiber.StatusBadRequest, "Invalid interaction type")
	}

	entry, err := handler.clientService.AddInteraction(mustCurrentUser(c), clientID, interactionType, req.Notes, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, entry)
}

type interactionUpdateRequest struct {
	Type  *string `json:"type"`
	Notes *string `json:"notes"`
}

func (handler *Handler) UpdateInteraction(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}
	entryID := c.Params("interactionID")

	var req interactionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	var interactionType *models.InteractionType
	if req.Type != nil {
		parsed := models.InteractionType(*req.Type)
		if !parsed.Valid() {
			return apiError(c, fiber.StatusBadRequest, "Invalid interaction type")
		}
		interactionType = &parsed
	}

	entry, err := handler.clientService.UpdateInteraction(mustCurrentUser(c), clientID, entryID, interactionType, req.Notes)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

func (handler *Handler) DeleteInteraction(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}
	if err := handler.clientService.RemoveInteraction(mustCurrentUser(c), clientID, c.Params("interactionID")); err != nil {
		return handler.serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Interaction removed")
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (handler *Handler) AddFeedback(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}

	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return apiError(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}

	entry, err := handler.clientService.AddFeedback(mustCurrentUser(c), clientID, req.Rating, req.Comment, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, entry)
}

type feedbackUpdateRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (handler *Handler) UpdateFeedback(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}
	entryID := c.Params("feedbackID")

	var req feedbackUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return apiError(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}

	entry, err := handler.clientService.UpdateFeedback(mustCurrentUser(c), clientID, entryID, req.Rating, req.Comment)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

func (handler *Handler) DeleteFeedback(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}
	if err := handler.clientService.RemoveFeedback(mustCurrentUser(c), clientID, c.Params("feedbackID")); err != nil {
		return handler.serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Feedback removed")
}
