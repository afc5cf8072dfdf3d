package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/domain"
	"github.com/spec-kit/taskflow/internal/observability"
	"github.com/spec-kit/taskflow/internal/repository"
	"github.com/spec-kit/taskflow/internal/service"
)

// deadlineWindow is how far ahead the sweep looks for due tasks.
const deadlineWindow = 24 * time.Hour

// CleanupWorker periodically purges expired completed tasks and records
// deadline warnings for tasks due soon.
type CleanupWorker struct {
	tasks         repository.TaskRepository
	taskSvc       *service.TaskService
	notifications *service.NotificationService
	metrics       *observability.Metrics
	logger        *zap.Logger
	interval      time.Duration

	// running guards against overlapping sweeps when one run outlasts the
	// tick interval.
	running sync.Mutex
}

// NewCleanupWorker constructs the worker.
func NewCleanupWorker(
	tasks repository.TaskRepository,
	taskSvc *service.TaskService,
	notifications *service.NotificationService,
	metrics *observability.Metrics,
	logger *zap.Logger,
	interval time.Duration,
) *CleanupWorker {
	return &CleanupWorker{
		tasks:         tasks,
		taskSvc:       taskSvc,
		notifications: notifications,
		metrics:       metrics,
		logger:        logger,
		interval:      interval,
	}
}

// Start runs the sweep loop until the context is cancelled. The first sweep
// fires after one full interval.
func (w *CleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("cleanup worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep. If a previous sweep is still in flight
// the call returns immediately.
func (w *CleanupWorker) RunOnce(ctx context.Context) {
	if !w.running.TryLock() {
		w.logger.Warn("cleanup sweep still running, skipping tick")
		return
	}
	defer w.running.Unlock()

	deleted, err := w.taskSvc.PurgeExpired(ctx)
	if err != nil {
		w.logger.Error("expired task purge failed", zap.Error(err))
	} else if deleted > 0 {
		w.logger.Info("purged expired tasks", zap.Int64("deleted", deleted))
	}
	w.metrics.RecordSweep("cleanup", int(deleted))

	warned := w.sweepDeadlines(ctx)
	w.metrics.RecordSweep("deadline", warned)
}

// sweepDeadlines records a warning for every open task due inside the
// lookahead window, returning how many new warnings were issued.
func (w *CleanupWorker) sweepDeadlines(ctx context.Context) int {
	cutoff := time.Now().Add(deadlineWindow)
	due, err := w.tasks.List(ctx, repository.TaskFilter{
		Statuses:  []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusInProgress},
		DueBefore: &cutoff,
	})
	if err != nil {
		w.logger.Error("deadline sweep query failed", zap.Error(err))
		return 0
	}

	warned := 0
	for i := range due {
		created, err := w.notifications.NotifyDeadline(ctx, &due[i])
		if err != nil {
			w.logger.Error("deadline warning failed",
				zap.String("task_id", due[i].ID),
				zap.Error(err))
			continue
		}
		if created {
			warned++
		}
	}
	if warned > 0 {
		w.logger.Info("issued deadline warnings", zap.Int("count", warned))
	}
	return warned
}
