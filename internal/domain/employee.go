package domain

import "time"

// EmployeeStatus enumerates availability states for employees.
type EmployeeStatus string

const (
	EmployeeStatusAvailable EmployeeStatus = "available"
	EmployeeStatusBusy      EmployeeStatus = "busy"
	EmployeeStatusOffline   EmployeeStatus = "offline"
)

// Employee models a workforce member that tasks can be assigned to.
// CurrentWorkload is a 0-100 percentage of consumed capacity; PerformanceScore
// is a 0-100 rating used by the recommendation engine.
type Employee struct {
	ID               string
	Name             string
	Role             string
	Department       string
	Email            string
	Avatar           string
	Status           EmployeeStatus
	Skills           []string
	PerformanceScore int
	CurrentWorkload  int
	ActiveTasks      int
	CompletedTasks   int
	Rating           float64
	AvgTaskTime      float64
	JoinDate         *time.Time
	LastActive       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasSkill reports whether the employee lists the exact skill.
func (e *Employee) HasSkill(skill string) bool {
	for _, s := range e.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
