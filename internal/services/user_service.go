package services

import (
	"errors"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserAdminRepository interface {
	FindByID(userID uint) (models.User, error)
	List(params query.Params) ([]models.User, int64, error)
	Save(user *models.User) error
	Deactivate(userID uint) error
	ExistsByNormalizedEmailExcluding(email string, userID uint) (bool, error)
}

// UserService backs the admin-only /users surface.
type UserService struct {
	users UserAdminRepository
}

func NewUserService(users UserAdminRepository) *UserService {
	return &UserService{users: users}
}

// UserListSpec is the whitelist for /users list queries.
var UserListSpec = query.Spec{
	Columns: map[string]string{
		"name":       "name",
		"email":      "email",
		"role":       "role",
		"department": "department",
		"isActive":   "is_active",
		"createdAt":  "created_at",
	},
	Searchable: []string{"name", "email"},
	Sortable: map[string]string{
		"name":      "name",
		"email":     "email",
		"role":      "role",
		"createdAt": "created_at",
	},
	DefaultSort: "created_at DESC",
}

func (service *UserService) List(params query.Params) ([]models.User, int64, error) {
	return service.users.List(params)
}

func (service *UserService) Get(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UserUpdate is a partial admin edit; nil fields stay untouched.
type UserUpdate struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	IsActive   *bool   `json:"isActive"`
}

func (service *UserService) Update(userID uint, update UserUpdate) (models.User, error) {
	user, err := service.Get(userID)
	if err != nil {
		return models.User{}, err
	}

	if update.Email != nil && *update.Email != user.Email {
		taken, err := service.users.ExistsByNormalizedEmailExcluding(*update.Email, userID)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil && *update.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = string(passwordHash)
	}
	if update.Role != nil {
		user.Role = models.ParseRole(*update.Role)
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Department != nil {
		user.Department = *update.Department
	}
	if update.Position != nil {
		user.Position = *update.Position
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err := service.users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Deactivate is the delete operation: accounts are switched off, never
// removed, so historic ownership references stay resolvable.
func (service *UserService) Deactivate(userID uint) error {
	if _, err := service.Get(userID); err != nil {
		return err
	}
	return service.users.Deactivate(userID)
}
