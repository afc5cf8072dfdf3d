package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
)

// Project groups tasks under a manager, department and team.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	Priority    TaskPriority
	StartDate   *time.Time
	EndDate     *time.Time
	Progress    int
	TeamSize    int
	Budget      float64
	Manager     string
	Department  string
	TeamKey     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
