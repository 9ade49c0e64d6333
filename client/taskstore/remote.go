package taskstore

import (
	"context"
	"errors"
	"strings"

	"github.com/example/taskflow/client/rest"
	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/validate"
)

// Remote delegates every operation to the REST API. The backend scopes all
// requests by the authenticated token, so the ownerID argument is only
// checked for presence; no client-side ownership filtering happens here.
type Remote struct {
	api *rest.Client
}

var _ Store = (*Remote)(nil)

// NewRemote creates a Remote task store backed by the given API client.
func NewRemote(api *rest.Client) *Remote {
	return &Remote{api: api}
}

// List returns the authenticated user's tasks.
func (r *Remote) List(ctx context.Context, ownerID string) ([]task.Task, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	return r.api.ListTodos(ctx)
}

// Create persists a new incomplete task.
func (r *Remote) Create(ctx context.Context, ownerID, name string) (task.Task, error) {
	if ownerID == "" {
		return task.Task{}, ErrNoOwner
	}
	if err := validate.TaskName(name); err != nil {
		return task.Task{}, err
	}
	return r.api.CreateTodo(ctx, strings.TrimSpace(name), false)
}

// SetStatus sets the status of the identified task.
func (r *Remote) SetStatus(ctx context.Context, ownerID, id string, status task.Status) (task.Task, error) {
	if ownerID == "" {
		return task.Task{}, ErrNoOwner
	}
	completed := status == task.StatusComplete
	updated, err := r.api.PatchTodo(ctx, id, rest.TodoPatch{Completed: &completed})
	if err != nil {
		return task.Task{}, mapNotFound(err)
	}
	return updated, nil
}

// Update replaces name and status atomically.
func (r *Remote) Update(ctx context.Context, ownerID, id, name string, status task.Status) (task.Task, error) {
	if ownerID == "" {
		return task.Task{}, ErrNoOwner
	}
	if err := validate.TaskName(name); err != nil {
		return task.Task{}, err
	}
	title := strings.TrimSpace(name)
	completed := status == task.StatusComplete
	updated, err := r.api.PatchTodo(ctx, id, rest.TodoPatch{Title: &title, Completed: &completed})
	if err != nil {
		return task.Task{}, mapNotFound(err)
	}
	return updated, nil
}

// Delete removes the task. A missing id is treated as already deleted.
func (r *Remote) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrNoOwner
	}
	err := r.api.DeleteTodo(ctx, id)
	if errors.Is(err, rest.ErrNotFound) {
		return nil
	}
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, rest.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
