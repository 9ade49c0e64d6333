package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/taskflow/events"
)

// ActivityEntry is one logged task activity record.
type ActivityEntry struct {
	TaskID    string    `json:"task_id"`
	OwnerID   string    `json:"owner_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule consumes task events and keeps an in-memory activity
// log. It stands in for whatever outbound channel (mail, push) would consume
// these events in a larger deployment.
type NotificationModule struct {
	activity []ActivityEntry
	mu       sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

// NewModule creates a new NotificationModule.
func NewModule() *NotificationModule {
	return &NotificationModule{
		activity: make([]ActivityEntry, 0),
	}
}

// Name returns the module name.
func (m *NotificationModule) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the task events.
func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskCompleted, TaskDeleted")
	return nil
}

// Start initializes the module.
func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started")
	return nil
}

// Stop shuts down the module.
func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.OwnerID, "task_created",
		fmt.Sprintf("Task %q created", event.Name))
	return nil
}

func (m *NotificationModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.OwnerID, "task_completed",
		fmt.Sprintf("Task %s completed", event.TaskID))
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, event.OwnerID, "task_deleted",
		fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) record(taskID, ownerID, entryType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.activity = append(m.activity, ActivityEntry{
		TaskID:    taskID,
		OwnerID:   ownerID,
		Type:      entryType,
		Message:   message,
		Timestamp: time.Now(),
	})
	log.Printf("[notification] %s", message)
}

// Activity returns a copy of the recorded activity log.
func (m *NotificationModule) Activity() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ActivityEntry, len(m.activity))
	copy(out, m.activity)
	return out
}
