package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientAccessDenied = errors.New("not authorized for this client")
	ErrReassignDenied     = errors.New("not authorized to reassign client")
	ErrDeleteDenied       = errors.New("not authorized to delete client")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrSubEntryNotFound   = errors.New("entry not found")
)

type ClientRepository interface {
	FindByID(clientID uint) (models.Client, error)
	Create(client *models.Client) error
	Save(client *models.Client) error
	Delete(clientID uint) error
	List(params query.Params, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, int64, error)
	ListByNextContact(from time.Time, until time.Time, orderBy string, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, error)
}

type ClientUserReader interface {
	FindByID(userID uint) (models.User, error)
}

type ClientService struct {
	clients ClientRepository
	users   ClientUserReader
}

func NewClientService(clients ClientRepository, users ClientUserReader) *ClientService {
	return &ClientService{clients: clients, users: users}
}

// ClientListSpec is the whitelist for /clients list queries.
var ClientListSpec = query.Spec{
	Columns: map[string]string{
		"name":            "name",
		"email":           "email",
		"phone":           "phone",
		"company":         "company",
		"position":        "position",
		"status":          "status",
		"assignedTo":      "assigned_to",
		"createdBy":       "created_by",
		"lastContacted":   "last_contacted_at",
		"nextContactDate": "next_contact_at",
		"createdAt":       "created_at",
	},
	Searchable: []string{"name", "email", "company", "phone"},
	Sortable: map[string]string{
		"name":            "name",
		"company":         "company",
		"status":          "status",
		"lastContacted":   "last_contacted_at",
		"nextContactDate": "next_contact_at",
		"createdAt":       "created_at",
	},
	DefaultSort: "created_at DESC",
}

// List applies the ownership scope before the caller's filter. A non-admin
// can never filter their way to someone else's clients: their own predicate
// on the owner column is dropped and replaced by the scope.
func (service *ClientService) List(user *models.User, params query.Params) ([]models.Client, int64, error) {
	if !user.IsAdmin() {
		params.DropColumn("assigned_to")
	}
	return service.clients.List(params, query.Scope(user, "assigned_to"))
}

// GetAuthorized loads a client and enforces the ownership rule: admins see
// everything, team members only records assigned to them. Records without an
// assignee stay visible to any authenticated caller.
func (service *ClientService) GetAuthorized(user *models.User, clientID uint) (models.Client, error) {
	client, err := service.clients.FindByID(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Client{}, ErrClientNotFound
		}
		return models.Client{}, err
	}
	if client.AssignedTo != 0 && !user.IsAdmin() && client.AssignedTo != user.ID {
		return models.Client{}, ErrClientAccessDenied
	}
	return client, nil
}

type ClientInput struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Company       string        `json:"company"`
	Position      string        `json:"position"`
	Status        string        `json:"status"`
	AssignedTo    uint          `json:"assignedTo"`
	NextContactAt *time.Time    `json:"nextContactDate"`
	Tags          []string      `json:"tags"`
	Notes         string        `json:"notes"`
}

// Create defaults the assignee to the creator. A team member supplying
// someone else's id is silently overridden, not rejected; an admin pointing
// at a missing user gets ErrAssigneeNotFound.
func (service *ClientService) Create(user *models.User, input ClientInput, now time.Time) (models.Client, error) {
	assignedTo := input.AssignedTo
	if assignedTo == 0 || !user.IsAdmin() {
		assignedTo = user.ID
	}
	if assignedTo != user.ID {
		if _, err := service.users.FindByID(assignedTo); err != nil {
			return models.Client{}, ErrAssigneeNotFound
		}
	}

	status := models.ClientStatus(input.Status)
	if !status.Valid() {
		status = models.StatusProspect
	}

	client := models.Client{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Company:       input.Company,
		Position:      input.Position,
		Status:        status,
		AssignedTo:    assignedTo,
		CreatedBy:     user.ID,
		NextContactAt: input.NextContactAt,
		Tags:          input.Tags,
		Notes:         input.Notes,
		Interactions:  []models.Interaction{},
		Feedback:      []models.FeedbackEntry{},
	}
	if err := service.clients.Create(&client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// ClientUpdate carries a partial update; nil fields are left untouched.
type ClientUpdate struct {
	Name          *string    `json:"name"`
	Email         *string    `json:"email"`
	Phone         *string    `json:"phone"`
	Company       *string    `json:"company"`
	Position      *string    `json:"position"`
	Status        *string    `json:"status"`
	AssignedTo    *uint      `json:"assignedTo"`
	NextContactAt *time.Time `json:"nextContactDate"`
	Tags          *[]string  `json:"tags"`
	Notes         *string    `json:"notes"`
}

// Update enforces ownership, refuses reassignment by non-admins and stamps
// LastContactedAt on every successful update.
func (service *ClientService) Update(user *models.User, clientID uint, update ClientUpdate, now time.Time) (models.Client, error) {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return models.Client{}, err
	}

	if update.AssignedTo != nil && *update.AssignedTo != client.AssignedTo {
		if !user.IsAdmin() {
			return models.Client{}, ErrReassignDenied
		}
		if _, err := service.users.FindByID(*update.AssignedTo); err != nil {
			return models.Client{}, ErrAssigneeNotFound
		}
		client.AssignedTo = *update.AssignedTo
	}

	if update.Name != nil {
		client.Name = *update.Name
	}
	if update.Email != nil {
		client.Email = *update.Email
	}
	if update.Phone != nil {
		client.Phone = *update.Phone
	}
	if update.Company != nil {
		client.Company = *update.Company
	}
	if update.Position != nil {
		client.Position = *update.Position
	}
	if update.Status != nil {
		client.Status = models.ClientStatus(*update.Status)
	}
	if update.NextContactAt != nil {
		client.NextContactAt = update.NextContactAt
	}
	if update.Tags != nil {
		client.Tags = *update.Tags
	}
	if update.Notes != nil {
		client.Notes = *update.Notes
	}

	client.LastContactedAt = &now
	if err := service.clients.Save(&client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (service *ClientService) Delete(user *models.User, clientID uint) error {
	if _, err := service.clients.FindByID(clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if !user.IsAdmin() {
		return ErrDeleteDenied
	}
	return service.clients.Delete(clientID)
}

// AddInteraction prepends a touchpoint (newest first) and stamps
// LastContactedAt.
func (service *ClientService) AddInteraction(user *models.User, clientID uint, interactionType models.InteractionType, notes string, now time.Time) (models.Interaction, error) {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return models.Interaction{}, err
	}

	entry := models.Interaction{
		ID:         uuid.NewString(),
		Type:       interactionType,
		Notes:      notes,
		CreatedBy:  user.ID,
		OccurredAt: now,
	}
	client.Interactions = append([]models.Interaction{entry}, client.Interactions...)
	client.LastContactedAt = &now
	if err := service.clients.Save(&client); err != nil {
		return models.Interaction{}, err
	}
	return entry, nil
}

func (service *ClientService) UpdateInteraction(user *models.User, clientID uint, entryID string, interactionType *models.InteractionType, notes *string) (models.Interaction, error) {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return models.Interaction{}, err
	}
	index := client.InteractionByID(entryID)
	if index < 0 {
		return models.Interaction{}, ErrSubEntryNotFound
	}
	if interactionType != nil {
		client.Interactions[index].Type = *interactionType
	}
	if notes != nil {
		client.Interactions[index].Notes = *notes
	}
	if err := service.clients.Save(&client); err != nil {
		return models.Interaction{}, err
	}
	return client.Interactions[index], nil
}

func (service *ClientService) RemoveInteraction(user *models.User, clientID uint, entryID string) error {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return err
	}
	index := client.InteractionByID(entryID)
	if index < 0 {
		return ErrSubEntryNotFound
	}
	client.Interactions = append(client.Interactions[:index], client.Interactions[index+1:]...)
	return service.clients.Save(&client)
}

// AddFeedback prepends a rating entry; unlike interactions it does not touch
// LastContactedAt.
func (service *ClientService) AddFeedback(user *models.User, clientID uint, rating int, comment string, now time.Time) (models.FeedbackEntry, error) {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return models.FeedbackEntry{}, err
	}

	entry := models.FeedbackEntry{
		ID:         uuid.NewString(),
		Rating:     rating,
		Comment:    comment,
		OccurredAt: now,
	}
	client.Feedback = append([]models.FeedbackEntry{entry}, client.Feedback...)
	if err := service.clients.Save(&client); err != nil {
		return models.FeedbackEntry{}, err
	}
	return entry, nil
}

func (service *ClientService) UpdateFeedback(user *models.User, clientID uint, entryID string, rating *int, comment *string) (models.FeedbackEntry, error) {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return models.FeedbackEntry{}, err
	}
	index := client.FeedbackByID(entryID)
	if index < 0 {
		return models.FeedbackEntry{}, ErrSubEntryNotFound
	}
	if rating != nil {
		client.Feedback[index].Rating = *rating
	}
	if comment != nil {
		client.Feedback[index].Comment = *comment
	}
	if err := service.clients.Save(&client); err != nil {
		return models.FeedbackEntry{}, err
	}
	return client.Feedback[index], nil
}

func (service *ClientService) RemoveFeedback(user *models.User, clientID uint, entryID string) error {
	client, err := service.GetAuthorized(user, clientID)
	if err != nil {
		return err
	}
	index := client.FeedbackByID(entryID)
	if index < 0 {
		return ErrSubEntryNotFound
	}
	client.Feedback = append(client.Feedback[:index], client.Feedback[index+1:]...)
	return service.clients.Save(&client)
}

// FollowUpsToday lists clients due for contact today, name ascending. Team
// members only see their own records.
func (service *ClientService) FollowUpsToday(user *models.User, now time.Time, location *time.Location) ([]models.Client, error) {
	dayStart, dayEnd := DayRange(now, location)
	return service.clients.ListByNextContact(dayStart, dayEnd, "name ASC", query.Scope(user, "assigned_to"))
}
