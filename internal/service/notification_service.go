package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/events"
	"github.com/spec-kit/taskflow/internal/repository"
	apperrors "github.com/spec-kit/taskflow/pkg/util"
)

// NotificationService turns domain events into notification records and
// serves the notification inbox.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	Logger           *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		logger:        deps.Logger,
	}
}

// RegisterHandlers subscribes the service to the events it records.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTaskCreated, s.onTaskCreated)
	dispatcher.Subscribe(events.EventTaskAssigned, s.onTaskAssigned)
	dispatcher.Subscribe(events.EventTaskCompleted, s.onTaskCompleted)
	dispatcher.Subscribe(events.EventTaskCategorized, s.onTaskCategorized)
	dispatcher.Subscribe(events.EventOverloadAlert, s.onOverloadAlert)
	dispatcher.Subscribe(events.EventSweepCompleted, s.onSweepCompleted)
}

func (s *NotificationService) onTaskCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskCreatedPayload)
	if !ok {
		return nil
	}
	return s.record(ctx, &domain.Notification{
		Type:        domain.NotificationSystem,
		Title:       "New Task Created",
		Message:     fmt.Sprintf("Task %q has been created and is ready for assignment", payload.Title),
		Priority:    payload.Priority,
		RelatedTask: &event.TaskID,
	})
}

func (s *NotificationService) onTaskAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskAssignedPayload)
	if !ok {
		return nil
	}
	title := "Task Assigned"
	message := fmt.Sprintf("%q has been assigned to %s", payload.TaskTitle, payload.EmployeeName)
	if payload.AutoAssigned {
		title = "Task Auto-Assigned"
		message = fmt.Sprintf("%q was auto-assigned to %s (match score %d)",
			payload.TaskTitle, payload.EmployeeName, payload.MatchScore)
	}
	return s.record(ctx, &domain.Notification{
		Type:            domain.NotificationTaskAssigned,
		Title:           title,
		Message:         message,
		Priority:        payload.Priority,
		RelatedEmployee: &payload.EmployeeID,
		RelatedTask:     &event.TaskID,
	})
}

func (s *NotificationService) onTaskCompleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskCompletedPayload)
	if !ok {
		return nil
	}
	message := fmt.Sprintf("%q has been completed", payload.TaskTitle)
	if payload.EmployeeName != "" {
		message = fmt.Sprintf("%s completed %q", payload.EmployeeName, payload.TaskTitle)
	}
	return s.record(ctx, &domain.Notification{
		Type:            domain.NotificationTaskCompleted,
		Title:           "Task Completed",
		Message:         message,
		Priority:        domain.TaskPriorityLow,
		RelatedEmployee: payload.EmployeeID,
		RelatedTask:     &event.TaskID,
	})
}

func (s *NotificationService) onTaskCategorized(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskCategorizedPayload)
	if !ok {
		return nil
	}
	return s.record(ctx, &domain.Notification{
		Type:  domain.NotificationTaskCategorized,
		Title: "Task Categorized",
		Message: fmt.Sprintf("%q was categorized under %s / %s (%d%% match)",
			payload.TaskTitle, payload.TeamName, payload.DomainName, payload.MatchScore),
		Priority:    domain.TaskPriorityLow,
		RelatedTask: &event.TaskID,
	})
}

func (s *NotificationService) onOverloadAlert(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OverloadAlertPayload)
	if !ok {
		return nil
	}
	return s.record(ctx, &domain.Notification{
		Type:  domain.NotificationOverloadAlert,
		Title: "Workload Alert",
		Message: fmt.Sprintf("%s is at %d%% capacity and should not receive more work",
			payload.EmployeeName, payload.Workload),
		Priority:        domain.TaskPriorityHigh,
		RelatedEmployee: &payload.EmployeeID,
	})
}

// onSweepCompleted summarizes a background sweep as a system notification.
// Sweeps that touch nothing never publish, so every record here has a count.
func (s *NotificationService) onSweepCompleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SweepCompletedPayload)
	if !ok {
		return nil
	}
	n := &domain.Notification{
		Type:     domain.NotificationSystem,
		Priority: domain.TaskPriorityLow,
	}
	switch payload.Sweep {
	case "auto-assign":
		n.Title = "Auto-Assignment Complete"
		n.Message = fmt.Sprintf("Successfully auto-assigned %d tasks from the pending backlog", payload.Affected)
		n.Priority = domain.TaskPriorityMedium
	case "cleanup":
		n.Title = "Tasks Auto-Cleaned"
		n.Message = fmt.Sprintf("%d completed tasks older than 15 days have been automatically deleted", payload.Affected)
	default:
		return nil
	}
	return s.record(ctx, n)
}

// NotifyDeadline records a deadline warning for the task unless one already
// exists, returning whether a record was created.
func (s *NotificationService) NotifyDeadline(ctx context.Context, task *domain.Task) (bool, error) {
	exists, err := s.notifications.ExistsForTask(ctx, task.ID, domain.NotificationDeadlineWarning)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	if exists {
		return false, nil
	}
	n := &domain.Notification{
		Type:        domain.NotificationDeadlineWarning,
		Title:       "Deadline Approaching",
		Message:     fmt.Sprintf("%q is due within 24 hours", task.Title),
		Priority:    domain.TaskPriorityHigh,
		RelatedTask: &task.ID,
	}
	n.RelatedEmployee = task.AssignedTo
	if err := s.record(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

func (s *NotificationService) record(ctx context.Context, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("notification write failed",
			zap.String("type", string(n.Type)),
			zap.Error(err))
		return err
	}
	return nil
}

// List returns notifications matching the filter, newest first.
func (s *NotificationService) List(ctx context.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	notifications, err := s.notifications.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// MarkAllRead flags every unread notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	updated, err := s.notifications.MarkAllRead(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return updated, nil
}

// Dismiss deletes a notification.
func (s *NotificationService) Dismiss(ctx context.Context, id string) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
