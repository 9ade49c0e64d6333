package task

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	domain "github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/events"
	"github.com/example/taskflow/validate"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskPayload, error) {
	if req.OwnerID == "" {
		return TaskPayload{}, fmt.Errorf("owner id is required")
	}
	if err := validate.TaskName(req.Name); err != nil {
		return TaskPayload{}, err
	}

	status := domain.StatusIncomplete
	if req.Completed {
		status = domain.StatusComplete
	}

	newTask := &domain.Task{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Status:    status,
		CreatedAt: time.Now(),
		OwnerID:   req.OwnerID,
	}

	if err := m.repo.Create(newTask); err != nil {
		return TaskPayload{}, fmt.Errorf("failed to save task: %w", err)
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			Name:      newTask.Name,
			OwnerID:   newTask.OwnerID,
			CreatedAt: newTask.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation.
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", newTask.ID, err)
		}
	}

	return toTaskPayload(newTask), nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.OwnerID == "" {
		return ListTasksResponse{}, fmt.Errorf("owner id is required")
	}

	tasks, err := m.repo.FindByOwner(req.OwnerID)
	if err != nil {
		return ListTasksResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	response := ListTasksResponse{
		Tasks: make([]TaskPayload, 0, len(tasks)),
		Total: len(tasks),
	}
	for i := range tasks {
		response.Tasks = append(response.Tasks, toTaskPayload(&tasks[i]))
	}
	return response, nil
}

// updateTask handles the update-task service request. Absent fields are left
// unchanged; name and status changes are persisted together.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskPayload, error) {
	task, err := m.repo.FindOwned(req.TaskID, req.OwnerID)
	if err != nil {
		return TaskPayload{}, err
	}

	if req.Name != nil {
		if err := validate.TaskName(*req.Name); err != nil {
			return TaskPayload{}, err
		}
		task.Name = strings.TrimSpace(*req.Name)
	}

	completedNow := false
	if req.Completed != nil {
		next := domain.StatusIncomplete
		if *req.Completed {
			next = domain.StatusComplete
		}
		completedNow = next == domain.StatusComplete && task.Status != domain.StatusComplete
		task.Status = next
	}

	if err := m.repo.Save(task); err != nil {
		return TaskPayload{}, fmt.Errorf("failed to update task: %w", err)
	}

	if completedNow && m.eventBus != nil {
		event := events.TaskCompletedEvent{
			TaskID:      task.ID,
			OwnerID:     task.OwnerID,
			CompletedAt: time.Now(),
		}
		if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", task.ID, err)
		}
	}

	return toTaskPayload(task), nil
}

// deleteTask handles the delete-task service request. Deleting an id that no
// longer exists still acknowledges the delete.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.OwnerID == "" {
		return DeleteTaskResponse{}, fmt.Errorf("owner id is required")
	}

	if err := m.repo.Delete(req.TaskID, req.OwnerID); err != nil {
		return DeleteTaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			OwnerID:   req.OwnerID,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", req.TaskID, err)
		}
	}

	return DeleteTaskResponse{Deleted: true}, nil
}

func toTaskPayload(task *domain.Task) TaskPayload {
	return TaskPayload{
		ID:        task.ID,
		Name:      task.Name,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		OwnerID:   task.OwnerID,
	}
}
