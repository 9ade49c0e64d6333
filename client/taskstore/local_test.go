package taskstore

import (
	"context"
	"errors"
	"testing"

	"github.com/example/taskflow/client/kv"
	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/validate"
)

func setupLocal(t *testing.T) *Local {
	t.Helper()

	store, err := kv.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return NewLocal(store)
}

func TestLocalCreateAndList(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	first, err := local.Create(ctx, "owner-1", "Buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID == "" {
		t.Error("Create() returned empty id")
	}
	if first.Status != task.StatusIncomplete {
		t.Errorf("Create() status = %q, want %q", first.Status, task.StatusIncomplete)
	}
	if first.CreatedAt.IsZero() {
		t.Error("Create() returned zero CreatedAt")
	}

	second, err := local.Create(ctx, "owner-1", "Walk the dog")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks, err := local.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks, want 2", len(tasks))
	}
	// Newest task comes first.
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("List() order = [%s, %s], want [%s, %s]",
			tasks[0].ID, tasks[1].ID, second.ID, first.ID)
	}
}

func TestLocalCreateValidatesName(t *testing.T) {
	local := setupLocal(t)

	for _, name := range []string{"", "   "} {
		if _, err := local.Create(context.Background(), "owner-1", name); !errors.Is(err, validate.ErrNameRequired) {
			t.Errorf("Create(%q) error = %v, want %v", name, err, validate.ErrNameRequired)
		}
	}

	// Leading and trailing whitespace is trimmed before storage.
	created, err := local.Create(context.Background(), "owner-1", "  Buy milk  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Name != "Buy milk" {
		t.Errorf("Create() name = %q, want %q", created.Name, "Buy milk")
	}
}

func TestLocalOwnershipIsolation(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	mine, err := local.Create(ctx, "owner-1", "Mine")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := local.Create(ctx, "owner-2", "Theirs"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks, err := local.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Mine" {
		t.Errorf("List(owner-1) = %v, want only the owner's task", tasks)
	}

	// Another owner cannot mutate or complete someone else's task; the error
	// is the same as for an absent id.
	if _, err := local.SetStatus(ctx, "owner-2", mine.ID, task.StatusComplete); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("SetStatus() by wrong owner error = %v, want %v", err, ErrTaskNotFound)
	}
	if _, err := local.Update(ctx, "owner-2", mine.ID, "Stolen", task.StatusComplete); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Update() by wrong owner error = %v, want %v", err, ErrTaskNotFound)
	}

	// Deleting through the wrong owner is a silent no-op.
	if err := local.Delete(ctx, "owner-2", mine.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	tasks, _ = local.List(ctx, "owner-1")
	if len(tasks) != 1 {
		t.Error("task was deleted by a different owner")
	}
}

func TestLocalSetStatus(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	created, err := local.Create(ctx, "owner-1", "Buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := local.SetStatus(ctx, "owner-1", created.ID, task.StatusComplete)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if updated.Status != task.StatusComplete {
		t.Errorf("SetStatus() status = %q, want %q", updated.Status, task.StatusComplete)
	}
	// Identity and creation time are preserved.
	if updated.ID != created.ID {
		t.Errorf("SetStatus() changed id: %q != %q", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("SetStatus() changed CreatedAt: %v != %v", updated.CreatedAt, created.CreatedAt)
	}

	if _, err := local.SetStatus(ctx, "owner-1", created.ID, task.Status("bogus")); err == nil {
		t.Error("SetStatus() with invalid status: error = nil, want error")
	}
}

func TestLocalUpdate(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	created, err := local.Create(ctx, "owner-1", "Buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := local.Update(ctx, "owner-1", created.ID, "Buy oat milk", task.StatusComplete)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Buy oat milk" {
		t.Errorf("Update() name = %q, want %q", updated.Name, "Buy oat milk")
	}
	if updated.Status != task.StatusComplete {
		t.Errorf("Update() status = %q, want %q", updated.Status, task.StatusComplete)
	}

	// A failed update must not change anything.
	if _, err := local.Update(ctx, "owner-1", created.ID, "  ", task.StatusIncomplete); err == nil {
		t.Fatal("Update() with blank name: error = nil, want error")
	}
	tasks, _ := local.List(ctx, "owner-1")
	if tasks[0].Name != "Buy oat milk" {
		t.Errorf("task name after failed update = %q, want %q", tasks[0].Name, "Buy oat milk")
	}
}

func TestLocalDeleteIdempotent(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	created, err := local.Create(ctx, "owner-1", "Buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := local.Delete(ctx, "owner-1", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	// Deleting again, or deleting an id that never existed, succeeds.
	if err := local.Delete(ctx, "owner-1", created.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if err := local.Delete(ctx, "owner-1", "never-existed"); err != nil {
		t.Errorf("Delete(absent) error = %v, want nil", err)
	}

	tasks, _ := local.List(ctx, "owner-1")
	if len(tasks) != 0 {
		t.Errorf("List() after delete returned %d tasks, want 0", len(tasks))
	}
}

func TestLocalRequiresOwner(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	if _, err := local.List(ctx, ""); !errors.Is(err, ErrNoOwner) {
		t.Errorf("List() error = %v, want %v", err, ErrNoOwner)
	}
	if _, err := local.Create(ctx, "", "Buy milk"); !errors.Is(err, ErrNoOwner) {
		t.Errorf("Create() error = %v, want %v", err, ErrNoOwner)
	}
	if err := local.Delete(ctx, "", "some-id"); !errors.Is(err, ErrNoOwner) {
		t.Errorf("Delete() error = %v, want %v", err, ErrNoOwner)
	}
}

func TestLocalCreatedAtSurvivesReload(t *testing.T) {
	local := setupLocal(t)
	ctx := context.Background()

	created, err := local.Create(ctx, "owner-1", "Buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// List goes through a full JSON round trip of the stored collection.
	tasks, err := local.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !tasks[0].CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt after reload = %v, want %v", tasks[0].CreatedAt, created.CreatedAt)
	}
}
