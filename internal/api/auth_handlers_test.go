package api

import (
	"net/http"
	"testing"

	"github.com/sagarvd01/teamtrack/internal/models"
)

func TestRegisterCreatesTeamMember(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"password": "secret123",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %v", status, body)
	}
	if body["token"] == "" || body["token"] == nil {
		t.Fatalf("token is missing in register response: %v", body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("user is missing in register response: %v", body)
	}
	if user["role"] != string(models.RoleTeamMember) {
		t.Fatalf("expected role %q, got %v", models.RoleTeamMember, user["role"])
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Asha", "asha@example.com", "secret123", models.RoleTeamMember)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Someone Else",
		"email":    "asha@example.com",
		"password": "secret123",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %v", status, body)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "abc",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
}

func TestRegisterAdminRoleNeedsAdminToken(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Member", "member@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	// Anonymous request asking for admin.
	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected anonymous admin register status 403, got %d", status)
	}

	memberToken := loginAndExtractToken(t, app, "member@example.com", "secret123")
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", memberToken, map[string]any{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected member admin register status 403, got %d", status)
	}

	adminToken := loginAndExtractToken(t, app, "admin@example.com", "secret123")
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", adminToken, map[string]any{
		"name":     "Second Admin",
		"email":    "admin2@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected admin register status 201, got %d: %v", status, body)
	}
	user := body["user"].(map[string]any)
	if user["role"] != string(models.RoleAdmin) {
		t.Fatalf("expected role admin, got %v", user["role"])
	}
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Asha", "asha@example.com", "secret123", models.RoleTeamMember)

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "asha@example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected missing password status 400, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected bad password status 401, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected unknown email status 401, got %d", status)
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	user := createTestUser(t, database, "Asha", "asha@example.com", "secret123", models.RoleTeamMember)
	if err := database.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected deactivated login status 401, got %d", status)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Asha", "asha@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "asha@example.com", "secret123")

	status, body := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	data := dataField(t, body)
	if data["email"] != "asha@example.com" {
		t.Fatalf("expected own profile, got %v", data)
	}
	if _, leaked := data["passwordHash"]; leaked {
		t.Fatal("password hash must never appear in responses")
	}
}

func TestMeWithoutTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", status)
	}
}

func TestUpdatePasswordFlow(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Asha", "asha@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "asha@example.com", "secret123")

	status, _ := doJSON(t, app, http.MethodPut, "/api/auth/updatepassword", token, map[string]any{
		"currentPassword": "wrong-password",
		"newPassword":     "newsecret1",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected wrong current password status 401, got %d", status)
	}

	status, body := doJSON(t, app, http.MethodPut, "/api/auth/updatepassword", token, map[string]any{
		"currentPassword": "secret123",
		"newPassword":     "newsecret1",
	})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	if body["token"] == nil || body["token"] == "" {
		t.Fatalf("expected a fresh token in response: %v", body)
	}

	// The old password no longer works, the new one does.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected old password login status 401, got %d", status)
	}
	loginAndExtractToken(t, app, "asha@example.com", "newsecret1")
}
