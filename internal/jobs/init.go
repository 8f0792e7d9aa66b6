package jobs

import (
	"context"

	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/db/repositories"
	"ffc/aircraft-tracker/internal/metrics"
	"ffc/aircraft-tracker/internal/services"
)

// JobsContainer exposes the background jobs for manual triggering
type JobsContainer struct {
	Poll    *PollJob
	Cleanup *CleanupJob
}

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	cfg *config.Config,
	tracker *services.TrackerService,
	statusRepo *repositories.StatusHistoryRepository,
	sessionRepo *repositories.FlightSessionRepository,
	metricsReg *metrics.MetricsRegistry,
) *JobsContainer {
	pollJob := NewPollJob(tracker)
	cleanupJob := NewCleanupJob(statusRepo, sessionRepo, cfg.RetentionHours, metricsReg)

	go pollJob.RunScheduled(ctx, cfg.PollInterval)
	go cleanupJob.RunScheduled(ctx, cfg.CleanupInterval)

	return &JobsContainer{Poll: pollJob, Cleanup: cleanupJob}
}
