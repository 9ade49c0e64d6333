package task

import (
	"errors"

	"gorm.io/gorm"

	domain "github.com/example/taskflow/domain/task"
)

// ErrTaskNotFound is returned when a task does not exist or is not owned by
// the requesting user. Ownership failures are indistinguishable from missing
// tasks on purpose: the API never confirms another user's task ids.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence using GORM. Every lookup is scoped
// by owner id; there is no unscoped read path.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create persists a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a task by id, scoped to the given owner.
func (r *TaskRepository) FindOwned(id, ownerID string) (*domain.Task, error) {
	var task domain.Task
	result := r.db.First(&task, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// FindByOwner returns all tasks owned by ownerID, newest first.
func (r *TaskRepository) FindByOwner(ownerID string) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Save updates an existing task.
func (r *TaskRepository) Save(task *domain.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task scoped to the given owner. Deleting an absent task
// is not an error.
func (r *TaskRepository) Delete(id, ownerID string) error {
	return r.db.Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID).Error
}
