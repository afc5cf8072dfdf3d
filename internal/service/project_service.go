package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// ProjectService manages projects and their task rollups.
type ProjectService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	TaskRepo    repository.TaskRepository
}

// ProjectInput carries project create/update fields.
type ProjectInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
	Priority    domain.TaskPriority
	StartDate   *time.Time
	EndDate     *time.Time
	TeamSize    int
	Budget      float64
	Manager     string
	Department  string
	TeamKey     string
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{projects: deps.ProjectRepo, tasks: deps.TaskRepo}
}

// CreateProject stores a new project.
func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	p := &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		TeamSize:    input.TeamSize,
		Budget:      input.Budget,
		Manager:     strings.TrimSpace(input.Manager),
		Department:  strings.TrimSpace(input.Department),
		TeamKey:     input.TeamKey,
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusActive
	}
	if p.Priority == "" {
		p.Priority = domain.TaskPriorityMedium
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, apperrors.MapError(err)
	}
	return p, nil
}

// GetProject fetches one project.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return p, nil
}

// ListProjects returns projects matching the filter.
func (s *ProjectService) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// UpdateProject replaces project fields and refreshes progress from tasks.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, input ProjectInput) (*domain.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) != "" {
		p.Name = strings.TrimSpace(input.Name)
	}
	p.Description = strings.TrimSpace(input.Description)
	if input.Status != "" {
		p.Status = input.Status
	}
	if input.Priority != "" {
		p.Priority = input.Priority
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = input.EndDate
	}
	if input.TeamSize != 0 {
		p.TeamSize = input.TeamSize
	}
	if input.Budget != 0 {
		p.Budget = input.Budget
	}
	if strings.TrimSpace(input.Manager) != "" {
		p.Manager = strings.TrimSpace(input.Manager)
	}
	if strings.TrimSpace(input.Department) != "" {
		p.Department = strings.TrimSpace(input.Department)
	}
	if input.TeamKey != "" {
		p.TeamKey = input.TeamKey
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, apperrors.MapError(err)
	}
	return p, nil
}

// DeleteProject removes a project. Tasks keep their project reference; the
// task list endpoint simply returns nothing for the dead project id.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ProjectTasks returns tasks under the project.
func (s *ProjectService) ProjectTasks(ctx context.Context, id string) ([]domain.Task, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{ProjectID: &id})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// RefreshProgress recomputes the project's progress percentage as the share
// of its tasks that are completed.
func (s *ProjectService) RefreshProgress(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{ProjectID: &id})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	progress := 0
	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Status == domain.TaskStatusCompleted {
				completed++
			}
		}
		progress = completed * 100 / len(tasks)
	}
	p.Progress = progress
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, apperrors.MapError(err)
	}
	return p, nil
}
