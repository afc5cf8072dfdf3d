package events

import (
	"time"

	"github.com/spec-kit/taskflow/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated     EventType = "task_created"
	EventTaskAssigned    EventType = "task_assigned"
	EventTaskCompleted   EventType = "task_completed"
	EventTaskCategorized EventType = "task_categorized"
	EventOverloadAlert   EventType = "overload_alert"
	EventSweepCompleted  EventType = "sweep_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TaskID    string      `json:"task_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	Title    string              `json:"title"`
	Priority domain.TaskPriority `json:"priority"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	TaskTitle    string              `json:"task_title"`
	Priority     domain.TaskPriority `json:"priority"`
	NewWorkload  int                 `json:"new_workload"`
	AutoAssigned bool                `json:"auto_assigned"`
	MatchScore   int                 `json:"match_score,omitempty"`
	MatchReason  string              `json:"match_reason,omitempty"`
}

// TaskCompletedPayload payload.
type TaskCompletedPayload struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
	TaskTitle    string  `json:"task_title"`
}

// TaskCategorizedPayload payload.
type TaskCategorizedPayload struct {
	TaskTitle  string `json:"task_title"`
	TeamName   string `json:"team_name"`
	DomainName string `json:"domain_name"`
	MatchScore int    `json:"match_score"`
}

// OverloadAlertPayload payload.
type OverloadAlertPayload struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Workload     int    `json:"workload"`
}

// SweepCompletedPayload payload.
type SweepCompletedPayload struct {
	Sweep    string `json:"sweep"`
	Affected int    `json:"affected"`
}
