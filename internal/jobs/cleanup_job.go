package jobs

import (
	"context"
	"time"

	"ffc/aircraft-tracker/internal/db/repositories"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/metrics"
)

// CleanupJob enforces the retention window on persisted status history and
// flight sessions. It runs on its own timer, independent of the poll path.
type CleanupJob struct {
	statusRepo     *repositories.StatusHistoryRepository
	sessionRepo    *repositories.FlightSessionRepository
	retentionHours int
	metrics        *metrics.MetricsRegistry
}

// NewCleanupJob creates a new cleanup job instance
func NewCleanupJob(
	statusRepo *repositories.StatusHistoryRepository,
	sessionRepo *repositories.FlightSessionRepository,
	retentionHours int,
	metricsReg *metrics.MetricsRegistry,
) *CleanupJob {
	return &CleanupJob{
		statusRepo:     statusRepo,
		sessionRepo:    sessionRepo,
		retentionHours: retentionHours,
		metrics:        metricsReg,
	}
}

// Run executes one cleanup cycle and returns the total rows removed. Each
// delete is its own transaction, so a cycle interrupted mid-way leaves the
// store consistent.
func (j *CleanupJob) Run(ctx context.Context) (int64, error) {
	start := time.Now()

	statusRemoved, err := j.statusRepo.CleanupExpired(ctx, j.retentionHours)
	if err != nil {
		return 0, err
	}

	sessionsRemoved, err := j.sessionRepo.CleanupExpired(ctx, j.retentionHours)
	if err != nil {
		return statusRemoved, err
	}

	total := statusRemoved + sessionsRemoved
	if j.metrics != nil {
		j.metrics.CleanupRowsRemovedTotal.Add(float64(total))
		j.metrics.CleanupCycleDuration.Observe(time.Since(start).Seconds())
	}

	logging.Info("Retention cleanup completed",
		"status_removed", statusRemoved,
		"sessions_removed", sessionsRemoved,
		"retention_hours", j.retentionHours,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return total, nil
}

// RunScheduled runs the cleanup job on a fixed interval until ctx is
// cancelled.
func (j *CleanupJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := j.Run(ctx); err != nil {
		logging.Error("Cleanup job initial run failed", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				logging.Error("Cleanup job scheduled run failed", "error", err.Error())
			}
		case <-ctx.Done():
			logging.Info("Cleanup job shutting down")
			return
		}
	}
}
