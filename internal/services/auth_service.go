package services

import (
	"errors"
	"strings"

	"github.com/sagarvd01/teamtrack/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       models.Role
	Phone      string
	Department string
	Position   string
}

// Register creates an account. The caller decides the role beforehand:
// only an already-authenticated admin may mint another admin.
func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := service.users.ExistsByNormalizedEmail(input.Email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		Role:         input.Role,
		Phone:        input.Phone,
		Department:   input.Department,
		Position:     input.Position,
		IsActive:     true,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

// Authenticate resolves a login attempt. Unknown emails and bad passwords
// produce the same error so the endpoint can't be used to probe accounts.
func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDeactivated
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// ChangePassword verifies the current password before storing a new hash.
func (service *AuthService) ChangePassword(user *models.User, currentPassword string, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(user.ID, string(passwordHash))
}
