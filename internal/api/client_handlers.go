package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"github.com/sagarvd01/teamtrack/internal/services"
)

// clientView embeds the client record and resolves the assignee reference to
// a user summary for the response payload.
type clientView struct {
	models.Client
	AssignedUser *models.UserSummary `json:"assignedToUser,omitempty"`
}

func (handler *Handler) clientViews(clients []models.Client) ([]clientView, error) {
	ids := make([]uint, 0, len(clients))
	for _, client := range clients {
		if client.AssignedTo != 0 {
			ids = append(ids, client.AssignedTo)
		}
	}
	summaries, err := handler.repositories.Users.SummariesByID(ids)
	if err != nil {
		return nil, err
	}

	views := make([]clientView, 0, len(clients))
	for _, client := range clients {
		view := clientView{Client: client}
		if summary, ok := summaries[client.AssignedTo]; ok {
			view.AssignedUser = &summary
		}
		views = append(views, view)
	}
	return views, nil
}

func (handler *Handler) clientView(client models.Client) (clientView, error) {
	views, err := handler.clientViews([]models.Client{client})
	if err != nil {
		return clientView{}, err
	}
	return views[0], nil
}

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	params := query.Parse(c.Queries(), services.ClientListSpec)

	clients, total, err := handler.clientService.List(user, params)
	if err != nil {
		return handler.serverError(c, err)
	}
	views, err := handler.clientViews(clients)
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondList(c, views, len(views), total, query.Paginate(params.Page, params.Limit, total))
}

func (handler *Handler) GetClient(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}
	client, err := handler.clientService.GetAuthorized(mustCurrentUser(c), clientID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	view, err := handler.clientView(client)
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondData(c, fiber.StatusOK, view)
}

func (handler *Handler) CreateClient(c *fiber.Ctx) error {
	var input services.ClientInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if input.Name == "" {
		return apiError(c, fiber.StatusBadRequest, "Please provide a client name")
	}
	if input.Status != "" && !models.ClientStatus(input.Status).Valid() {
		return apiError(c, fiber.StatusBadRequest, "Invalid client status")
	}

	client, err := handler.clientService.Create(mustCurrentUser(c), input, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, client)
}

func (handler *Handler) UpdateClient(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}

	var update services.ClientUpdate
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if update.Status != nil && !models.ClientStatus(*update.Status).Valid() {
		return apiError(c, fiber.StatusBadRequest, "Invalid client status")
	}

	client, err := handler.clientService.Update(mustCurrentUser(c), clientID, update, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}
	view, err := handler.clientView(client)
	if err != nil {
		return handler.serverError(c, err)
	}
	return respondData(c, fiber.StatusOK, view)
}

func (handler *Handler) DeleteClient(c *fiber.Ctx) error {
	clientID, ok := idParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid client id")
	}
	if err := handler.clientService.Delete(mustCurrentUser(c), clientID); err != nil {
		return handler.serviceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Client removed")
}

// FollowUpClients lists the clients whose next contact date falls today.
func (handler *Handler) FollowUpClients(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	clients, err := handler.clientService.FollowUpsToday(user, handler.now(), handler.location)
	if err != nil {
		return handler.serverError(c, err)
	}
	views, err := handler.clientViews(clients)
	if err != nil {
		return handler.serverError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(views),
		"data":    views,
	})
}
