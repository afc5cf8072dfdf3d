package dto

import (
	"time"

	"github.com/spec-kit/taskflow/internal/domain"
)

// ProjectRequest payload used for both create and update.
type ProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	Priority    domain.TaskPriority  `json:"priority"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	TeamSize    int                  `json:"team_size"`
	Budget      float64              `json:"budget"`
	Manager     string               `json:"manager"`
	Department  string               `json:"department"`
	TeamKey     string               `json:"team_key"`
}

// ProjectResponse response.
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	Priority    domain.TaskPriority  `json:"priority"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	Progress    int                  `json:"progress"`
	TeamSize    int                  `json:"team_size"`
	Budget      float64              `json:"budget"`
	Manager     string               `json:"manager"`
	Department  string               `json:"department"`
	TeamKey     string               `json:"team_key"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
