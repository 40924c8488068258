package models

import "time"

// ClientStatus is the lifecycle stage of a CRM record.
type ClientStatus string

const (
	StatusProspect ClientStatus = "prospect"
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case StatusProspect, StatusActive, StatusInactive:
		return true
	}
	return false
}

// InteractionType classifies a logged touchpoint with a client.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionOther   InteractionType = "other"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionOther:
		return true
	}
	return false
}

// Interaction is a sub-entry owned by exactly one client, newest first.
type Interaction struct {
	ID         string          `json:"id"`
	Type       InteractionType `json:"type"`
	Notes      string          `json:"notes,omitempty"`
	CreatedBy  uint            `json:"createdBy"`
	OccurredAt time.Time       `json:"date"`
}

// FeedbackEntry is a rated sub-entry owned by exactly one client, newest first.
type FeedbackEntry struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	OccurredAt time.Time `json:"date"`
}

type Client struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `gorm:"not null" json:"phone"`
	Company         string          `json:"company,omitempty"`
	Position        string          `json:"position,omitempty"`
	Status          ClientStatus    `gorm:"not null;default:prospect;index" json:"status"`
	AssignedTo      uint            `gorm:"index" json:"assignedTo"`
	CreatedBy       uint            `gorm:"not null" json:"createdBy"`
	LastContactedAt *time.Time      `json:"lastContacted,omitempty"`
	NextContactAt   *time.Time      `gorm:"index" json:"nextContactDate,omitempty"`
	Tags            []string        `gorm:"serializer:json" json:"tags"`
	Notes           string          `json:"notes,omitempty"`
	Interactions    []Interaction   `gorm:"serializer:json" json:"interactions"`
	Feedback        []FeedbackEntry `gorm:"serializer:json" json:"feedback"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// InteractionByID returns the index of the sub-entry, or -1 when absent.
func (c *Client) InteractionByID(entryID string) int {
	for index := range c.Interactions {
		if c.Interactions[index].ID == entryID {
			return index
		}
	}
	return -1
}

func (c *Client) FeedbackByID(entryID string) int {
	for index := range c.Feedback {
		if c.Feedback[index].ID == entryID {
			return index
		}
	}
	return -1
}
