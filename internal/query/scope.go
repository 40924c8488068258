package query

import (
	"github.com/sagarvd01/teamtrack/internal/models"
	"gorm.io/gorm"
)

// Scope restricts visibility to rows owned by the acting user unless the
// user is an admin. It composes before any caller-supplied filter; callers
// must pair it with Params.DropColumn on the same owner column so the
// restriction cannot be overridden from the query string.
func Scope(user *models.User, ownerColumn string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if user.IsAdmin() {
			return tx
		}
		return tx.Where(ownerColumn+" = ?", user.ID)
	}
}
