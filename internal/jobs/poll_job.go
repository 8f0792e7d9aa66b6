package jobs

import (
	"context"
	"time"

	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/services"
)

// PollJob drives the foreground poll-and-persist cycle on a schedule. One
// cycle runs at a time; a slow cycle simply delays the next tick.
type PollJob struct {
	tracker *services.TrackerService
}

// NewPollJob creates a new poll job instance
func NewPollJob(tracker *services.TrackerService) *PollJob {
	return &PollJob{tracker: tracker}
}

// Run executes one poll-and-persist cycle
func (j *PollJob) Run(ctx context.Context) services.PollSummary {
	return j.tracker.PollOnce(ctx)
}

// RunScheduled polls on a fixed interval until ctx is cancelled, starting
// with an immediate cycle.
func (j *PollJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.Run(ctx)

	for {
		select {
		case <-ticker.C:
			j.Run(ctx)
		case <-ctx.Done():
			logging.Info("Poll job shutting down")
			return
		}
	}
}
