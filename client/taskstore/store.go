// Package taskstore defines the task persistence contract used by the
// client, with two swappable backends: an on-device store (Local) and a
// REST-backed store (Remote). The backend is chosen once at composition
// time; callers only see the Store interface.
package taskstore

import (
	"context"
	"errors"

	"github.com/example/taskflow/domain/task"
)

// Sentinel errors for task operations.
var (
	// ErrTaskNotFound is returned when a task does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNoOwner is returned when an operation requires an authenticated
	// owner and none is present.
	ErrNoOwner = errors.New("no authenticated user")
)

// Store is the task persistence contract, parameterized by the current
// session's user id.
type Store interface {
	// List returns all tasks owned by ownerID. Ordering is unspecified;
	// deriving the view order is the query pipeline's job.
	List(ctx context.Context, ownerID string) ([]task.Task, error)

	// Create persists a new incomplete task with a fresh id and the
	// current time, and returns it. The name must pass validation.
	Create(ctx context.Context, ownerID, name string) (task.Task, error)

	// SetStatus sets the status of the identified task.
	SetStatus(ctx context.Context, ownerID, id string, status task.Status) (task.Task, error)

	// Update replaces both mutable fields atomically.
	Update(ctx context.Context, ownerID, id, name string, status task.Status) (task.Task, error)

	// Delete removes the task. Deleting an absent id is not an error.
	Delete(ctx context.Context, ownerID, id string) error
}
