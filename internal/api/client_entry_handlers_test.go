package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/sagarvd01/teamtrack/internal/models"
)

func TestAddInteractionPrependsAndStampsLastContacted(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "alice@example.com", "secret123")

	created := createTestClient(t, app, token, "Acme Corp", nil)
	clientPath := fmt.Sprintf("/api/clients/%.0f", created["id"].(float64))

	status, body := doJSON(t, app, http.MethodPost, clientPath+"/interactions", token, map[string]any{
		"type":  "call",
		"notes": "first touch",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %v", status, body)
	}

	status, body = doJSON(t, app, http.MethodPost, clientPath+"/interactions", token, map[string]any{
		"type":  "email",
		"notes": "second touch",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %v", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, clientPath, token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	data := dataField(t, body)
	interactions, ok := data["interactions"].([]any)
	if !ok || len(interactions) != 2 {
		t.Fatalf("expected 2 interactions, got %v", data["interactions"])
	}
	newest := interactions[0].(map[string]any)
	if newest["type"] != "email" || newest["notes"] != "second touch" {
		t.Fatalf("expected newest interaction first, got %v", newest)
	}
	if data["lastContacted"] == nil {
		t.Fatal("expected lastContacted to be stamped")
	}
}

func TestAddInteractionRejectsUnknownType(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "alice@example.com", "secret123")

	created := createTestClient(t, app, token, "Acme Corp", nil)
	path := fmt.Sprintf("/api/clients/%.0f/interactions", created["id"].(float64))

	status, _ := doJSON(t, app, http.MethodPost, path, token, map[string]any{
		"type":  "carrier-pigeon",
		"notes": "no",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
}

func TestUpdateAndDeleteInteraction(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "alice@example.com", "secret123")

	created := createTestClient(t, app, token, "Acme Corp", nil)
	basePath := fmt.Sprintf("/api/clients/%.0f/interactions", created["id"].(float64))

	status, body := doJSON(t, app, http.MethodPost, basePath, token, map[string]any{
		"type":  "call",
		"notes": "initial",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %v", status, body)
	}
	entryID := dataField(t, body)["id"].(string)

	status, body = doJSON(t, app, http.MethodPut, basePath+"/"+entryID, token, map[string]any{
		"notes": "amended",
	})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %v", status, body)
	}
	updated := dataField(t, body)
	if updated["notes"] != "amended" || updated["type"] != "call" {
		t.Fatalf("expected amended notes with type untouched, got %v", updated)
	}

	status, _ = doJSON(t, app, http.MethodPut, basePath+"/does-not-exist", token, map[string]any{
		"notes": "nope",
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected unknown entry status 404, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodDelete, basePath+"/"+entryID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected delete status 200, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodDelete, basePath+"/"+entryID, token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected repeated delete status 404, got %d", status)
	}
}

func TestFeedbackRatingBounds(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "alice@example.com", "secret123")

	created := createTestClient(t, app, token, "Acme Corp", nil)
	path := fmt.Sprintf("/api/clients/%.0f/feedback", created["id"].(float64))

	for _, rating := range []int{0, 6} {
		status, _ := doJSON(t, app, http.MethodPost, path, token, map[string]any{
			"rating":  rating,
			"comment": "out of range",
		})
		if status != http.StatusBadRequest {
			t.Fatalf("expected rating %d status 400, got %d", rating, status)
		}
	}

	status, body := doJSON(t, app, http.MethodPost, path, token, map[string]any{
		"rating":  4,
		"comment": "solid",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %v", status, body)
	}
}

func TestFeedbackDoesNotStampLastContacted(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "Alice", "alice@example.com", "secret123", models.RoleTeamMember)
	token := loginAndExtractToken(t, app, "alice@example.com", "secret123")

	created := createTestClient(t, app, token, "Acme Corp", nil)
	clientPath := fmt.Sprintf("/api/clients/%.0f", created["id"].(float64))

	status, _ := doJSON(t, app, http.MethodPost, clientPath+"/feedback", token, map[string]any{
		"rating":  5,
		"comment": "great",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", status)
	}

	status, body := doJSON(t, app, http.MethodGet, clientPath, token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", status)
	}
	data := dataField(t, body)
	if data["lastContacted"] != nil {
		t.Fatalf("feedback must not stamp lastContacted, got %v", data["lastContacted"])
	}
	feedback, ok := data["feedback"].([]any)
	if !ok || len(feedback) != 1 {
		t.Fatalf("expected 1 feedback entry, got %v", data["feedback"])
	}
}
