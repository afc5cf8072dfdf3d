package dto

import (
	"time"

	"github.com/spec-kit/taskflow/internal/domain"
)

// EmployeeRequest payload used for both create and update.
type EmployeeRequest struct {
	Name             string                `json:"name"`
	Role             string                `json:"role"`
	Department       string                `json:"department"`
	Email            string                `json:"email"`
	Avatar           string                `json:"avatar"`
	Status           domain.EmployeeStatus `json:"status"`
	Skills           []string              `json:"skills"`
	PerformanceScore int                   `json:"performance_score"`
	CurrentWorkload  int                   `json:"current_workload"`
	Rating           float64               `json:"rating"`
	AvgTaskTime      float64               `json:"avg_task_time"`
	JoinDate         *time.Time            `json:"join_date"`
}

// UpdateEmployeeStatusRequest payload.
type UpdateEmployeeStatusRequest struct {
	Status domain.EmployeeStatus `json:"status"`
}

// EmployeeResponse response.
type EmployeeResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Role             string                `json:"role"`
	Department       string                `json:"department"`
	Email            string                `json:"email"`
	Avatar           string                `json:"avatar"`
	Status           domain.EmployeeStatus `json:"status"`
	Skills           []string              `json:"skills"`
	PerformanceScore int                   `json:"performance_score"`
	CurrentWorkload  int                   `json:"current_workload"`
	ActiveTasks      int                   `json:"active_tasks"`
	CompletedTasks   int                   `json:"completed_tasks"`
	Rating           float64               `json:"rating"`
	AvgTaskTime      float64               `json:"avg_task_time"`
	JoinDate         *time.Time            `json:"join_date"`
	LastActive       *time.Time            `json:"last_active"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
