package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/db"
	"github.com/sagarvd01/teamtrack/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "teamtrack-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, Options{
		SecretKey: "test-secret-key",
		Location:  time.UTC,
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func createTestUser(t *testing.T, database *gorm.DB, name string, email string, password string, role models.Role) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
		IsActive:     true,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func loginAndExtractToken(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("expected login status 200, got %d: %v", status, body)
	}
	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("token is missing in login response: %v", body)
	}
	return token
}

// doJSON sends a request with an optional JSON payload and bearer token and
// decodes the JSON response body.
func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	body := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("%s %s decode body failed: %v (%s)", method, path, err, raw)
		}
	}
	return response.StatusCode, body
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data object is missing in response: %v", body)
	}
	return data
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()

	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("data list is missing in response: %v", body)
	}
	return data
}
