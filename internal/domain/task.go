package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority enumerates urgency levels.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Task is the aggregate for units of work. AutoDeleteAt is only populated
// once the task transitions into completed; the cleanup sweep purges rows
// whose AutoDeleteAt has elapsed.
type Task struct {
	ID             string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       TaskPriority
	AssignedTo     *string
	ProjectID      *string
	DueDate        *time.Time
	EstimatedHours int
	RequiredSkills []string
	CompletedAt    *time.Time
	AutoDeleteAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
