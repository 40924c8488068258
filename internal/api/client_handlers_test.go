package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sagarvd01/teamtrack/internal/models"
)

func createTestClient(t *testing.T, app *fiber.App, token string, name string, extra map[string]any) map[string]any {
	t.Helper()

	payload := map[string]any{"name": name}
	for key, value := range extra {
		payload[key] = value
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/clients", token, payload)
	if status != http.StatusCreated {
		t.Fatalf("create client %s: expected status 201, got %d: %v", name, status, body)
	}
	return dataField(t, body)
}

func TestCreateClientDefaultsAssigneeToCaller(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	member := createTestUser(t, database, "Member", "member@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "member@example.com", "secret123")

	data := createTestClient(t, app, token, "Acme Corp", nil)
	if uint(data["assignedTo"].(float64)) != member.ID {
		t.Fatalf("expected assignedTo %d, got %v", member.ID, data["assignedTo"])
	}
	if data["status"] != string(models.StatusProspect) {
		t.Fatalf("expected default status prospect, got %v", data["status"])
	}
}

func TestCreateClientIgnoresForeignAssigneeForMembers(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	member := createTestUser(t, database, "Member", "member@example.com", "secret123", models.RoleTeamMember)
	other := createTestUser(t, database, "Other", "other@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "member@example.com", "secret123")

	data := createTestClient(t, app, token, "Acme Corp", map[string]any{"assignedTo": other.ID})
	if uint(data["assignedTo"].(float64)) != member.ID {
		t.Fatalf("expected assignment forced back to caller %d, got %v", member.ID, data["assignedTo"])
	}
}

func TestCreateClientRejectsUnknownAssigneeForAdmin(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)
	token := loginAndExtractToken(t, app, "admin@example.com", "secret123")

	status, _ := doJSON(t, app, http.MethodPost, "/api/clients", token, map[string]any{
		"name":       "Acme Corp",
		"assignedTo": 9999,
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
}

func TestListClientsScopedToOwner(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Bob", "bob@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	aliceToken := loginAndExtractToken(t, app, "alice@example.com", "secret123")
	bobToken := loginAndExtractToken(t, app, "bob@example.com", "secret123")
	adminToken := loginAndExtractToken(t, app, "admin@example.com", "secret123")

	createTestClient(t, app, aliceToken, "Alice Client", nil)
	createTestClient(t, app, bobToken, "Bob Client", nil)

	status, body := doJSON(t, app, http.MethodGet, "/api/clients", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	list := dataList(t, body)
	if len(list) != 1 {
		t.Fatalf("expected alice to see 1 client, got %d", len(list))
	}
	if list[0].(map[string]any)["name"] != "Alice Client" {
		t.Fatalf("expected Alice Client, got %v", list[0])
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/clients", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	if len(dataList(t, body)) != 2 {
		t.Fatalf("expected admin to see 2 clients, got %v", body)
	}
}

func TestListClientsIgnoresForeignOwnerFilter(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	bob := createTestUser(t, database, "Bob", "bob@example.com", "secret123", models.RoleTeamMember)

	aliceToken := loginAndExtractToken(t, app, "alice@example.com", "secret123")
	bobToken := loginAndExtractToken(t, app, "bob@example.com", "secret123")
	createTestClient(t, app, bobToken, "Bob Client", nil)

	// A member filtering on someone else's id still only gets their own rows.
	path := fmt.Sprintf("/api/clients?assignedTo=%d", bob.ID)
	status, body := doJSON(t, app, http.MethodGet, path, aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	if len(dataList(t, body)) != 0 {
		t.Fatalf("expected no foreign clients, got %v", body)
	}
}

func TestListClientsPaginationEnvelope(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)
	token := loginAndExtractToken(t, app, "admin@example.com", "secret123")

	for i := 0; i < 12; i++ {
		createTestClient(t, app, token, fmt.Sprintf("Client %02d", i), nil)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/clients?page=2&limit=5", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	if body["count"].(float64) != 5 {
		t.Fatalf("expected count 5, got %v", body["count"])
	}
	if body["total"].(float64) != 12 {
		t.Fatalf("expected total 12, got %v", body["total"])
	}
	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("pagination is missing: %v", body)
	}
	next, ok := pagination["next"].(map[string]any)
	if !ok || next["page"].(float64) != 3 || next["limit"].(float64) != 5 {
		t.Fatalf("expected next {3,5}, got %v", pagination)
	}
	prev, ok := pagination["prev"].(map[string]any)
	if !ok || prev["page"].(float64) != 1 || prev["limit"].(float64) != 5 {
		t.Fatalf("expected prev {1,5}, got %v", pagination)
	}
}

func TestGetClientOwnership(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Bob", "bob@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	aliceToken := loginAndExtractToken(t, app, "alice@example.com", "secret123")
	bobToken := loginAndExtractToken(t, app, "bob@example.com", "secret123")
	adminToken := loginAndExtractToken(t, app, "admin@example.com", "secret123")

	created := createTestClient(t, app, aliceToken, "Alice Client", nil)
	clientID := created["id"].(float64)
	path := fmt.Sprintf("/api/clients/%.0f", clientID)

	status, _ := doJSON(t, app, http.MethodGet, path, bobToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected foreign access status 403, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, path, adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected admin access status 200, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/api/clients/9999", adminToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected unknown client status 404, got %d", status)
	}
}

func TestUpdateClientReassignAdminOnly(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	bob := createTestUser(t, database, "Bob", "bob@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	aliceToken := loginAndExtractToken(t, app, "alice@example.com", "secret123")
	adminToken := loginAndExtractToken(t, app, "admin@example.com", "secret123")

	created := createTestClient(t, app, aliceToken, "Alice Client", nil)
	path := fmt.Sprintf("/api/clients/%.0f", created["id"].(float64))

	status, _ := doJSON(t, app, http.MethodPut, path, aliceToken, map[string]any{"assignedTo": bob.ID})
	if status != http.StatusForbidden {
		t.Fatalf("expected member reassign status 403, got %d", status)
	}

	status, body := doJSON(t, app, http.MethodPut, path, adminToken, map[string]any{"assignedTo": bob.ID})
	if status != http.StatusOK {
		t.Fatalf("expected admin reassign status 200, got %d: %v", status, body)
	}
	data := dataField(t, body)
	if uint(data["assignedTo"].(float64)) != bob.ID {
		t.Fatalf("expected assignedTo %d, got %v", bob.ID, data["assignedTo"])
	}
	if data["lastContacted"] == nil {
		t.Fatal("expected lastContacted to be stamped by the update")
	}
}

func TestUpdateClientRejectsInvalidStatus(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "alice@example.com", "secret123")

	created := createTestClient(t, app, token, "Acme Corp", nil)
	path := fmt.Sprintf("/api/clients/%.0f", created["id"].(float64))

	status, _ := doJSON(t, app, http.MethodPut, path, token, map[string]any{"status": "bogus"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
}

func TestDeleteClientAdminOnly(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	createTestUser(t, database, "Admin", "admin@example.com", "secret123", models.RoleAdmin)

	aliceToken := loginAndExtractToken(t, app, "alice@example.com", "secret123")
	adminToken := loginAndExtractToken(t, app, "admin@example.com", "secret123")

	created := createTestClient(t, app, aliceToken, "Alice Client", nil)
	path := fmt.Sprintf("/api/clients/%.0f", created["id"].(float64))

	status, _ := doJSON(t, app, http.MethodDelete, path, aliceToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected member delete status 403, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodDelete, path, adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("expected admin delete status 200, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, path, adminToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected deleted client status 404, got %d", status)
	}
}
