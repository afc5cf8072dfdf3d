package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/engine"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// EmployeeService manages the workforce directory.
type EmployeeService struct {
	employees repository.EmployeeRepository
	tasks     repository.TaskRepository
	skills    *SkillService
}

// EmployeeDependencies bundles repositories for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	TaskRepo     repository.TaskRepository
	SkillService *SkillService
}

// EmployeeInput carries employee create/update fields.
type EmployeeInput struct {
	Name             string
	Role             string
	Department       string
	Email            string
	Avatar           string
	Status           domain.EmployeeStatus
	Skills           []string
	PerformanceScore int
	CurrentWorkload  int
	Rating           float64
	AvgTaskTime      float64
	JoinDate         *time.Time
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees: deps.EmployeeRepo,
		tasks:     deps.TaskRepo,
		skills:    deps.SkillService,
	}
}

// CreateEmployee registers a new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	if err := validateEmployeeInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	emp := &domain.Employee{
		Name:             strings.TrimSpace(input.Name),
		Role:             strings.TrimSpace(input.Role),
		Department:       strings.TrimSpace(input.Department),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		Avatar:           input.Avatar,
		Status:           input.Status,
		Skills:           input.Skills,
		PerformanceScore: clampPercent(input.PerformanceScore),
		CurrentWorkload:  engine.ClampWorkload(input.CurrentWorkload),
		Rating:           input.Rating,
		AvgTaskTime:      input.AvgTaskTime,
		JoinDate:         input.JoinDate,
		LastActive:       &now,
	}
	if emp.Status == "" {
		emp.Status = domain.EmployeeStatusAvailable
	}
	if emp.JoinDate == nil {
		emp.JoinDate = &now
	}

	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateSkills(ctx)
	return emp, nil
}

// GetEmployee fetches one employee.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// ListEmployees returns employees matching the filter.
func (s *EmployeeService) ListEmployees(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// UpdateEmployee replaces profile fields. Workload and task counters are
// owned by the task lifecycle and are not settable here.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, input EmployeeInput) (*domain.Employee, error) {
	if err := validateEmployeeInput(input); err != nil {
		return nil, err
	}

	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	emp.Name = strings.TrimSpace(input.Name)
	emp.Role = strings.TrimSpace(input.Role)
	emp.Department = strings.TrimSpace(input.Department)
	emp.Email = strings.ToLower(strings.TrimSpace(input.Email))
	emp.Avatar = input.Avatar
	emp.Status = input.Status
	emp.Skills = input.Skills
	emp.PerformanceScore = clampPercent(input.PerformanceScore)
	emp.Rating = input.Rating
	emp.AvgTaskTime = input.AvgTaskTime
	if input.JoinDate != nil {
		emp.JoinDate = input.JoinDate
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateSkills(ctx)
	return emp, nil
}

// SetStatus changes availability and refreshes the last-active stamp.
func (s *EmployeeService) SetStatus(ctx context.Context, id string, status domain.EmployeeStatus) (*domain.Employee, error) {
	switch status {
	case domain.EmployeeStatusAvailable, domain.EmployeeStatusBusy, domain.EmployeeStatusOffline:
	default:
		return nil, apperrors.NewValidationError("unknown employee status", map[string]any{"status": status})
	}

	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	emp.Status = status
	emp.LastActive = &now
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// DeleteEmployee removes the employee. Tasks still assigned to them are left
// in place; the dangling assignee simply stops matching any employee.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return apperrors.MapError(err)
	}
	s.invalidateSkills(ctx)
	return nil
}

// EmployeeTasks returns the employee's current assignments.
func (s *EmployeeService) EmployeeTasks(ctx context.Context, id string) ([]domain.Task, error) {
	if _, err := s.GetEmployee(ctx, id); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{AssignedTo: &id})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// Any employee write can change the skill union, so the cached vocabulary
// goes stale.
func (s *EmployeeService) invalidateSkills(ctx context.Context) {
	if s.skills != nil {
		s.skills.Invalidate(ctx)
	}
}

func validateEmployeeInput(input EmployeeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if strings.TrimSpace(input.Email) == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	return nil
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
