package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/taskflow/internal/service"
)

// AnalyticsWorker keeps the cached dashboard snapshot warm by recomputing it
// on a fixed cadence.
type AnalyticsWorker struct {
	analytics *service.AnalyticsService
	logger    *zap.Logger
	interval  time.Duration
}

// NewAnalyticsWorker constructs the worker.
func NewAnalyticsWorker(analytics *service.AnalyticsService, logger *zap.Logger, interval time.Duration) *AnalyticsWorker {
	return &AnalyticsWorker{analytics: analytics, logger: logger, interval: interval}
}

// Start recomputes immediately, then on every tick until cancelled.
func (w *AnalyticsWorker) Start(ctx context.Context) {
	w.recompute(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("analytics worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("analytics worker stopped")
			return
		case <-ticker.C:
			w.recompute(ctx)
		}
	}
}

func (w *AnalyticsWorker) recompute(ctx context.Context) {
	if _, err := w.analytics.Recompute(ctx); err != nil {
		w.logger.Error("analytics recompute failed", zap.Error(err))
	}
}
