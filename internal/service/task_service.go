package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/engine"
	"github.com/spec-kit/taskflow/internal/events"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// TaskService coordinates task workflows: creation with auto-categorization,
// assignment, the lifecycle state machine, and workload bookkeeping.
type TaskService struct {
	// mu serializes read-modify-write mutations so scoring reads observe a
	// consistent workload value.
	mu sync.Mutex

	tasks           repository.TaskRepository
	employees       repository.EmployeeRepository
	teams           repository.TeamRepository
	categorizations repository.CategorizationRepository
	dispatcher      events.Dispatcher

	now func() time.Time
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo           repository.TaskRepository
	EmployeeRepo       repository.EmployeeRepository
	TeamRepo           repository.TeamRepository
	CategorizationRepo repository.CategorizationRepository
	Dispatcher         events.Dispatcher
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title          string
	Description    string
	Priority       domain.TaskPriority
	ProjectID      *string
	DueDate        *time.Time
	EstimatedHours int
	RequiredSkills []string
}

// TaskUpdateInput describes mutable task fields; nil members are left as-is.
type TaskUpdateInput struct {
	Title          *string
	Description    *string
	Priority       *domain.TaskPriority
	ProjectID      *string
	DueDate        *time.Time
	EstimatedHours *int
	RequiredSkills []string
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:           deps.TaskRepo,
		employees:       deps.EmployeeRepo,
		teams:           deps.TeamRepo,
		categorizations: deps.CategorizationRepo,
		dispatcher:      deps.Dispatcher,
		now:             time.Now,
	}
}

var allowedTransitions = map[domain.TaskStatus][]domain.TaskStatus{
	domain.TaskStatusPending:    {domain.TaskStatusInProgress, domain.TaskStatusCompleted},
	domain.TaskStatusInProgress: {domain.TaskStatusPending, domain.TaskStatusCompleted},
	domain.TaskStatusCompleted:  {domain.TaskStatusInProgress},
}

func isValidTransition(current, next domain.TaskStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CreateTask stores a new pending task and auto-categorizes it when it
// declares required skills.
func (s *TaskService) CreateTask(ctx context.Context, input TaskCreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	task := &domain.Task{
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Status:         domain.TaskStatusPending,
		Priority:       input.Priority,
		ProjectID:      input.ProjectID,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		RequiredSkills: input.RequiredSkills,
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTaskCreated,
		TaskID: task.ID,
		Payload: events.TaskCreatedPayload{
			Title:    task.Title,
			Priority: task.Priority,
		},
	})

	if err := s.categorize(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// categorize runs the taxonomy match for the task and replaces its
// categorization record when a sufficiently good match exists. A missing
// match is a normal outcome and leaves any prior record untouched.
func (s *TaskService) categorize(ctx context.Context, task *domain.Task) error {
	if len(task.RequiredSkills) == 0 {
		return nil
	}
	domains, err := s.teams.ListAllDomains(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	cat := engine.Categorize(task.ID, task.RequiredSkills, domains)
	if cat == nil {
		return nil
	}
	if err := s.categorizations.Replace(ctx, cat); err != nil {
		return apperrors.MapError(err)
	}

	teamName := cat.TeamKey
	domainName := cat.DomainID
	if team, err := s.teams.GetTeam(ctx, cat.TeamKey); err == nil {
		teamName = team.Name
	}
	if d, err := s.teams.GetDomain(ctx, cat.TeamKey, cat.DomainID); err == nil {
		domainName = d.Name
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTaskCategorized,
		TaskID: task.ID,
		Payload: events.TaskCategorizedPayload{
			TaskTitle:  task.Title,
			TeamName:   teamName,
			DomainName: domainName,
			MatchScore: cat.MatchScore,
		},
	})
	return nil
}

// GetTask fetches a single task.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", map[string]any{"task_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// UpdateTask applies field updates and re-categorizes when the required
// skill set changed. Status is not updated here; use UpdateStatus.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input TaskUpdateInput) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ProjectID != nil {
		task.ProjectID = input.ProjectID
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = *input.EstimatedHours
	}
	skillsChanged := input.RequiredSkills != nil && !equalSkills(task.RequiredSkills, input.RequiredSkills)
	if input.RequiredSkills != nil {
		task.RequiredSkills = input.RequiredSkills
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	if skillsChanged {
		if err := s.categorize(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// AssignTask assigns the task to the employee, moves it to in-progress and
// charges the assignee's workload.
func (s *TaskService) AssignTask(ctx context.Context, taskID, employeeID string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignLocked(ctx, taskID, employeeID, false, 0, "")
}

// autoAssign is used by the sweep; it records that the assignment came from
// the recommendation engine along with its score.
func (s *TaskService) autoAssign(ctx context.Context, taskID, employeeID string, score int, reason string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignLocked(ctx, taskID, employeeID, true, score, reason)
}

func (s *TaskService) assignLocked(ctx context.Context, taskID, employeeID string, auto bool, score int, reason string) (*domain.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == domain.TaskStatusCompleted {
		return nil, apperrors.NewConflict("completed task cannot be assigned", map[string]any{"task_id": taskID})
	}
	if task.AssignedTo != nil && *task.AssignedTo == employeeID {
		return task, nil
	}

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	task.AssignedTo = &emp.ID
	task.Status = domain.TaskStatusInProgress
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	emp.ActiveTasks++
	emp.CurrentWorkload = engine.ClampWorkload(emp.CurrentWorkload + engine.WorkloadPerTask)
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTaskAssigned,
		TaskID: task.ID,
		Payload: events.TaskAssignedPayload{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			TaskTitle:    task.Title,
			Priority:     task.Priority,
			NewWorkload:  emp.CurrentWorkload,
			AutoAssigned: auto,
			MatchScore:   score,
			MatchReason:  reason,
		},
	})

	if emp.CurrentWorkload >= engine.OverloadAlertBound {
		s.publishEvent(ctx, events.Event{
			Type:   events.EventOverloadAlert,
			TaskID: task.ID,
			Payload: events.OverloadAlertPayload{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Workload:     emp.CurrentWorkload,
			},
		})
	}
	return task, nil
}

// UpdateStatus drives the lifecycle state machine. Completion stamps
// completedAt/autoDeleteAt and credits the assignee; pause and reopen change
// status only, leaving counters untouched.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, next domain.TaskStatus) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == next {
		return task, nil
	}
	if !isValidTransition(task.Status, next) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": task.Status,
			"to":   next,
		})
	}

	old := task.Status
	task.Status = next

	switch {
	case next == domain.TaskStatusCompleted:
		now := s.now()
		deleteAt := now.Add(engine.CompletedTaskRetention)
		task.CompletedAt = &now
		task.AutoDeleteAt = &deleteAt
	case old == domain.TaskStatusCompleted:
		// Reopen: clear the completion stamps so the cleanup sweep does not
		// purge a task that is active again.
		task.CompletedAt = nil
		task.AutoDeleteAt = nil
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if next == domain.TaskStatusCompleted {
		s.creditCompletion(ctx, task)
	}
	return task, nil
}

// creditCompletion adjusts the assignee's counters and emits the completion
// event. A missing assignee is tolerated: the task still completes.
func (s *TaskService) creditCompletion(ctx context.Context, task *domain.Task) {
	payload := events.TaskCompletedPayload{TaskTitle: task.Title}

	if task.AssignedTo != nil {
		if emp, err := s.getEmployee(ctx, *task.AssignedTo); err == nil {
			emp.CompletedTasks++
			if emp.ActiveTasks > 0 {
				emp.ActiveTasks--
			}
			emp.CurrentWorkload = engine.ClampWorkload(emp.CurrentWorkload - engine.WorkloadPerTask)
			if err := s.employees.Update(ctx, emp); err == nil {
				payload.EmployeeID = &emp.ID
				payload.EmployeeName = emp.Name
			}
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTaskCompleted,
		TaskID:  task.ID,
		Payload: payload,
	})
}

// DeleteTask removes a task and its categorization index entry.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("task", map[string]any{"task_id": id})
		}
		return apperrors.MapError(err)
	}
	if err := s.categorizations.DeleteByTask(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// PurgeExpired deletes tasks whose auto-delete timestamp has elapsed.
func (s *TaskService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.tasks.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if deleted > 0 {
		s.publishEvent(ctx, events.Event{
			Type: events.EventSweepCompleted,
			Payload: events.SweepCompletedPayload{
				Sweep:    "cleanup",
				Affected: int(deleted),
			},
		})
	}
	return deleted, nil
}

func (s *TaskService) getEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

func (s *TaskService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func equalSkills(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
