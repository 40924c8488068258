package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/db"
	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/services"
	"gorm.io/gorm"
)

const contextUserKey = "current_user"

type Handler struct {
	secretKey  []byte
	tokenTTL   time.Duration
	production bool
	location   *time.Location

	repositories      *db.Repositories
	authService       *services.AuthService
	userService       *services.UserService
	clientService     *services.ClientService
	attendanceService *services.AttendanceService
	analyticsService  *services.AnalyticsService
}

// Options carries the process-level settings the handler needs.
type Options struct {
	SecretKey  string
	TokenTTL   time.Duration
	Production bool
	Location   *time.Location
}

func NewHandler(database *gorm.DB, opts Options) *Handler {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 7 * 24 * time.Hour
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:         []byte(opts.SecretKey),
		tokenTTL:          opts.TokenTTL,
		production:        opts.Production,
		location:          opts.Location,
		repositories:      repositories,
		authService:       services.NewAuthService(repositories.Users),
		userService:       services.NewUserService(repositories.Users),
		clientService:     services.NewClientService(repositories.Clients, repositories.Users),
		attendanceService: services.NewAttendanceService(repositories.Attendances, repositories.Users, opts.Location),
		analyticsService:  services.NewAnalyticsService(repositories.Clients, repositories.Attendances, repositories.Users, opts.Location),
	}
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// mustCurrentUser is for handlers behind AuthRequired; the middleware
// guarantees the identity is present.
func mustCurrentUser(c *fiber.Ctx) *models.User {
	user, _ := currentUser(c)
	return user
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
