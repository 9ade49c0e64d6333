package task

import "time"

// Status represents the completion state of a task.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// Valid reports whether s is one of the two allowed task states.
func (s Status) Valid() bool {
	return s == StatusComplete || s == StatusIncomplete
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"not null;type:text"`
	Status    Status    `json:"status" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerID   string    `json:"userId" gorm:"index;not null;type:text"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
