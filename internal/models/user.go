package models

import "time"

// Role is the closed set of account roles. Authorization goes through
// Valid and set membership, never raw string comparison.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeamMember Role = "team_member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamMember:
		return true
	}
	return false
}

// ParseRole maps an inbound role string to a known Role. Unknown or empty
// values fall back to team_member.
func ParseRole(raw string) Role {
	role := Role(raw)
	if role.Valid() {
		return role
	}
	return RoleTeamMember
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;default:team_member" json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Department   string    `json:"department,omitempty"`
	Position     string    `json:"position,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the trimmed payload returned by auth endpoints and embedded
// as the populated owner reference in list responses.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
