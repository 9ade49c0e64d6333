package taskstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/taskflow/client/kv"
	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/validate"
)

// Local persists all tasks for all users as one JSON array in the on-device
// store, filtered by owner on read. The owner filter here is a convenience
// for a single-device store, not a security boundary.
type Local struct {
	store *kv.Store
}

var _ Store = (*Local)(nil)

// NewLocal creates a Local task store on top of the given key-value store.
func NewLocal(store *kv.Store) *Local {
	return &Local{store: store}
}

// List returns the tasks owned by ownerID.
func (l *Local) List(_ context.Context, ownerID string) ([]task.Task, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	all, err := l.load()
	if err != nil {
		return nil, err
	}
	owned := make([]task.Task, 0, len(all))
	for _, t := range all {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// Create persists a new incomplete task owned by ownerID.
func (l *Local) Create(_ context.Context, ownerID, name string) (task.Task, error) {
	if ownerID == "" {
		return task.Task{}, ErrNoOwner
	}
	if err := validate.TaskName(name); err != nil {
		return task.Task{}, err
	}

	all, err := l.load()
	if err != nil {
		return task.Task{}, err
	}

	created := task.Task{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Status:    task.StatusIncomplete,
		CreatedAt: time.Now(),
		OwnerID:   ownerID,
	}

	// Newest first, matching the order the app always displayed.
	all = append([]task.Task{created}, all...)
	if err := l.save(all); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// SetStatus sets the status of the identified task.
func (l *Local) SetStatus(_ context.Context, ownerID, id string, status task.Status) (task.Task, error) {
	return l.mutate(ownerID, id, func(t *task.Task) error {
		if !status.Valid() {
			return fmt.Errorf("invalid status %q", status)
		}
		t.Status = status
		return nil
	})
}

// Update replaces name and status atomically.
func (l *Local) Update(_ context.Context, ownerID, id, name string, status task.Status) (task.Task, error) {
	return l.mutate(ownerID, id, func(t *task.Task) error {
		if err := validate.TaskName(name); err != nil {
			return err
		}
		if !status.Valid() {
			return fmt.Errorf("invalid status %q", status)
		}
		t.Name = strings.TrimSpace(name)
		t.Status = status
		return nil
	})
}

// Delete removes the task. Absent ids are ignored.
func (l *Local) Delete(_ context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrNoOwner
	}
	all, err := l.load()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, t := range all {
		if t.ID == id && t.OwnerID == ownerID {
			continue
		}
		kept = append(kept, t)
	}
	return l.save(kept)
}

func (l *Local) mutate(ownerID, id string, apply func(*task.Task) error) (task.Task, error) {
	if ownerID == "" {
		return task.Task{}, ErrNoOwner
	}
	all, err := l.load()
	if err != nil {
		return task.Task{}, err
	}
	for i := range all {
		if all[i].ID != id || all[i].OwnerID != ownerID {
			continue
		}
		if err := apply(&all[i]); err != nil {
			return task.Task{}, err
		}
		if err := l.save(all); err != nil {
			return task.Task{}, err
		}
		return all[i], nil
	}
	return task.Task{}, ErrTaskNotFound
}

// load reads the full task collection. A missing or corrupt record yields an
// empty collection rather than an error; createdAt round-trips through the
// ISO-8601 encoding of time.Time.
func (l *Local) load() ([]task.Task, error) {
	raw, found, err := l.store.Get(kv.KeyTasks)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, nil
	}
	return tasks, nil
}

func (l *Local) save(tasks []task.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return l.store.Set(kv.KeyTasks, raw)
}
