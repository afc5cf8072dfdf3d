package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/engine"
	"github.com/spec-kit/taskflow/internal/events"
	"github.com/spec-kit/taskflow/internal/repository"
)

// AssignmentService produces employee recommendations for tasks and runs the
// auto-assignment sweep over the pending backlog.
type AssignmentService struct {
	tasks     repository.TaskRepository
	employees repository.EmployeeRepository
	taskSvc   *TaskService
	logger    *zap.Logger
}

// AssignmentDependencies bundles collaborators for the assignment service.
type AssignmentDependencies struct {
	TaskRepo     repository.TaskRepository
	EmployeeRepo repository.EmployeeRepository
	TaskService  *TaskService
	Logger       *zap.Logger
}

// AutoAssignResult reports one successful sweep assignment.
type AutoAssignResult struct {
	TaskID     string `json:"task_id"`
	TaskTitle  string `json:"task_title"`
	EmployeeID string `json:"employee_id"`
	Score      int    `json:"score"`
	Reason     string `json:"reason"`
}

// NewAssignmentService constructs the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tasks:     deps.TaskRepo,
		employees: deps.EmployeeRepo,
		taskSvc:   deps.TaskService,
		logger:    deps.Logger,
	}
}

// Recommend ranks all eligible employees for the given task.
func (s *AssignmentService) Recommend(ctx context.Context, taskID string) ([]engine.Candidate, error) {
	task, err := s.taskSvc.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	return engine.Recommend(task, employees), nil
}

// AutoAssignPending walks the pending unassigned backlog and assigns each
// task to its best candidate when the match score clears the threshold.
// Assignments within one sweep are sequential so each one observes the
// workload added by the previous.
func (s *AssignmentService) AutoAssignPending(ctx context.Context) ([]AutoAssignResult, error) {
	pending, err := s.tasks.List(ctx, repository.TaskFilter{
		Statuses:   []domain.TaskStatus{domain.TaskStatusPending},
		Unassigned: true,
	})
	if err != nil {
		return nil, err
	}

	var results []AutoAssignResult
	for i := range pending {
		task := &pending[i]

		employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
		if err != nil {
			return results, err
		}
		candidates := engine.Recommend(task, employees)
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		if best.MatchScore <= engine.AutoAssignThreshold {
			continue
		}

		if _, err := s.taskSvc.autoAssign(ctx, task.ID, best.Employee.ID, best.MatchScore, best.Reason); err != nil {
			s.logger.Warn("auto-assign skipped",
				zap.String("task_id", task.ID),
				zap.String("employee_id", best.Employee.ID),
				zap.Error(err))
			continue
		}
		results = append(results, AutoAssignResult{
			TaskID:     task.ID,
			TaskTitle:  task.Title,
			EmployeeID: best.Employee.ID,
			Score:      best.MatchScore,
			Reason:     best.Reason,
		})
	}

	if len(results) > 0 {
		s.taskSvc.publishEvent(ctx, events.Event{
			Type: events.EventSweepCompleted,
			Payload: events.SweepCompletedPayload{
				Sweep:    "auto-assign",
				Affected: len(results),
			},
		})
	}
	return results, nil
}
