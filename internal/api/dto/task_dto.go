package dto

import (
	"time"

	"github.com/spec-kit/taskflow/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       domain.TaskPriority `json:"priority"`
	ProjectID      *string             `json:"project_id"`
	DueDate        *time.Time          `json:"due_date"`
	EstimatedHours int                 `json:"estimated_hours"`
	RequiredSkills []string            `json:"required_skills"`
}

// UpdateTaskRequest payload; nil fields are untouched.
type UpdateTaskRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Priority       *domain.TaskPriority `json:"priority"`
	ProjectID      *string              `json:"project_id"`
	DueDate        *time.Time           `json:"due_date"`
	EstimatedHours *int                 `json:"estimated_hours"`
	RequiredSkills []string             `json:"required_skills"`
}

// AssignTaskRequest payload.
type AssignTaskRequest struct {
	EmployeeID string `json:"employee_id"`
}

// UpdateTaskStatusRequest payload.
type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// TaskResponse response.
type TaskResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         domain.TaskStatus   `json:"status"`
	Priority       domain.TaskPriority `json:"priority"`
	AssignedTo     *string             `json:"assigned_to"`
	ProjectID      *string             `json:"project_id"`
	DueDate        *time.Time          `json:"due_date"`
	EstimatedHours int                 `json:"estimated_hours"`
	RequiredSkills []string            `json:"required_skills"`
	CompletedAt    *time.Time          `json:"completed_at"`
	AutoDeleteAt   *time.Time          `json:"auto_delete_at"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// RecommendationResponse is one scored candidate for a task.
type RecommendationResponse struct {
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name"`
	Role             string   `json:"role"`
	Skills           []string `json:"skills"`
	Workload         int      `json:"workload"`
	PerformanceScore int      `json:"performance_score"`
	MatchScore       int      `json:"match_score"`
	Reason           string   `json:"reason"`
}

// CategorizationResponse describes a task's taxonomy placement.
type CategorizationResponse struct {
	TaskID        string   `json:"task_id"`
	TeamKey       string   `json:"team_key"`
	DomainID      string   `json:"domain_id"`
	MatchScore    int      `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
}

// AutoAssignResponse reports one sweep assignment.
type AutoAssignResponse struct {
	TaskID     string `json:"task_id"`
	TaskTitle  string `json:"task_title"`
	EmployeeID string `json:"employee_id"`
	Score      int    `json:"score"`
	Reason     string `json:"reason"`
}
