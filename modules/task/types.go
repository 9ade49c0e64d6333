package task

import "time"

// TaskPayload is the task shape returned by task services.
type TaskPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerID   string    `json:"ownerId"`
}

// CreateTaskRequest creates a task for the given owner.
type CreateTaskRequest struct {
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// ListTasksRequest lists all tasks for the given owner.
type ListTasksRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListTasksResponse holds the owner's tasks.
type ListTasksResponse struct {
	Tasks []TaskPayload `json:"tasks"`
	Total int           `json:"total"`
}

// UpdateTaskRequest patches a task. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	OwnerID   string  `json:"owner_id"`
	TaskID    string  `json:"task_id"`
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// DeleteTaskRequest removes a task for the given owner.
type DeleteTaskRequest struct {
	OwnerID string `json:"owner_id"`
	TaskID  string `json:"task_id"`
}

// DeleteTaskResponse acknowledges a delete.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}
