package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/startailors/tailorshop/internal/dashboard"
	jobmetrics "github.com/startailors/tailorshop/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DashboardRefresher rebuilds the dashboard snapshot.
type DashboardRefresher interface {
	Refresh(ctx context.Context) (dashboard.Snapshot, error)
}

// DashboardRefreshJob handles TaskDashboardRefresh.
type DashboardRefreshJob struct {
	Service DashboardRefresher
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewDashboardRefreshJob wires dependencies for the refresh handler.
func NewDashboardRefreshJob(service DashboardRefresher, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardRefreshJob {
	return &DashboardRefreshJob{Service: service, Logger: logger, Metrics: metrics}
}

// Handle processes a refresh task. A signed-out session is not retried.
func (j *DashboardRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("dashboard refresh: handler not configured")
	}
	var payload DashboardRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("dashboard refresh payload: %w", asynq.SkipRetry)
	}
	logger := j.logger().With(slog.String("job", TaskDashboardRefresh), slog.String("reason", payload.Reason))
	tracker := j.metrics().Track("dashboard_refresh")

	snap, err := j.Service.Refresh(ctx)
	if errors.Is(err, dashboard.ErrSignedOut) {
		tracker.Skip()
		logger.Info("dashboard refresh skipped, no signed-in session")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		logger.Error("dashboard refresh", slog.Any("error", err))
		return tracker.End(err)
	}
	if snap.Partial() {
		logger.Warn("dashboard refreshed partially", slog.Any("errors", snap.Errors))
	} else {
		logger.Info("dashboard refreshed", slog.Int("orders", len(snap.Orders)))
	}
	return tracker.End(nil)
}

func (j *DashboardRefreshJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *DashboardRefreshJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
