package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/taskflow/client/rest"
	"github.com/example/taskflow/domain/task"
)

// setupRemote starts a fake API server and returns a Remote wired to it.
func setupRemote(t *testing.T, handler http.Handler) *Remote {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := rest.NewClient(server.URL + "/api")
	api.SetToken("test-token")
	return NewRemote(api)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("Failed to encode response: %v", err)
	}
}

func todoJSON(id, title string, completed bool) map[string]any {
	return map[string]any{
		"_id":       id,
		"title":     title,
		"completed": completed,
		"createdAt": time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		"user":      "owner-1",
	}
}

func TestRemoteList(t *testing.T) {
	remote := setupRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-token")
		}
		writeJSON(t, w, http.StatusOK, []map[string]any{
			todoJSON("t-1", "Buy milk", false),
			todoJSON("t-2", "Walk the dog", true),
		})
	}))

	tasks, err := remote.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != "t-1" || tasks[0].Name != "Buy milk" || tasks[0].Status != task.StatusIncomplete {
		t.Errorf("first task = %+v, want t-1 / Buy milk / incomplete", tasks[0])
	}
	if tasks[1].Status != task.StatusComplete {
		t.Errorf("second task status = %q, want %q", tasks[1].Status, task.StatusComplete)
	}
	if tasks[0].OwnerID != "owner-1" {
		t.Errorf("first task owner = %q, want %q", tasks[0].OwnerID, "owner-1")
	}
}

func TestRemoteCreate(t *testing.T) {
	remote := setupRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Title     string `json:"title"`
			Completed bool   `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if body.Title != "Buy milk" {
			t.Errorf("title = %q, want %q", body.Title, "Buy milk")
		}
		if body.Completed {
			t.Error("completed = true, want false for new tasks")
		}
		writeJSON(t, w, http.StatusCreated, todoJSON("t-1", body.Title, false))
	}))

	// The trimmed name is what goes over the wire.
	created, err := remote.Create(context.Background(), "owner-1", "  Buy milk  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "t-1" || created.Status != task.StatusIncomplete {
		t.Errorf("Create() = %+v, want id t-1, incomplete", created)
	}
}

func TestRemoteSetStatusSendsOnlyCompleted(t *testing.T) {
	remote := setupRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/todos/t-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		// Title must be absent so the server leaves it unchanged.
		if _, present := body["title"]; present {
			t.Error("patch body contains title, want completed only")
		}
		if body["completed"] != true {
			t.Errorf("completed = %v, want true", body["completed"])
		}
		writeJSON(t, w, http.StatusOK, todoJSON("t-1", "Buy milk", true))
	}))

	updated, err := remote.SetStatus(context.Background(), "owner-1", "t-1", task.StatusComplete)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if updated.Status != task.StatusComplete {
		t.Errorf("SetStatus() status = %q, want %q", updated.Status, task.StatusComplete)
	}
}

func TestRemoteNotFoundMapsToTaskNotFound(t *testing.T) {
	remote := setupRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
	}))

	if _, err := remote.SetStatus(context.Background(), "owner-1", "missing", task.StatusComplete); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("SetStatus() error = %v, want %v", err, ErrTaskNotFound)
	}
	if _, err := remote.Update(context.Background(), "owner-1", "missing", "Name", task.StatusComplete); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Update() error = %v, want %v", err, ErrTaskNotFound)
	}
}

func TestRemoteDeleteTreatsNotFoundAsSuccess(t *testing.T) {
	remote := setupRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
	}))

	if err := remote.Delete(context.Background(), "owner-1", "already-gone"); err != nil {
		t.Errorf("Delete() error = %v, want nil", err)
	}
}

func TestRemoteRequiresOwner(t *testing.T) {
	remote := setupRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server was called without an owner")
	}))

	ctx := context.Background()
	if _, err := remote.List(ctx, ""); !errors.Is(err, ErrNoOwner) {
		t.Errorf("List() error = %v, want %v", err, ErrNoOwner)
	}
	if _, err := remote.Create(ctx, "", "Buy milk"); !errors.Is(err, ErrNoOwner) {
		t.Errorf("Create() error = %v, want %v", err, ErrNoOwner)
	}
	if err := remote.Delete(ctx, "", "t-1"); !errors.Is(err, ErrNoOwner) {
		t.Errorf("Delete() error = %v, want %v", err, ErrNoOwner)
	}
}
