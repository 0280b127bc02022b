package scheduler

import (
	"context"
	"time"
)

const taskDailyAnalysis = "daily-analysis"

// nextMidnight returns the first local midnight strictly after now.
func nextMidnight(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.AddDate(0, 0, 1)
}

// Loop runs the daily analysis at every local midnight until ctx is done.
//
// Each cycle persists the next wake-up time BEFORE sleeping or executing.
// The two phases are deliberately separate: a crash or termination during
// the analysis never loses the following day's run.
func (r *Refresher) Loop(ctx context.Context) {
	for {
		now := r.now()
		next := nextMidnight(now)

		if err := r.store.Schedule().SetNextRun(ctx, taskDailyAnalysis, next.Format(time.RFC3339)); err != nil {
			r.log.Error().Stack().Err(err).Msg("failed to persist next analysis run")
		}
		r.log.Info().Time("next_run", next).Msg("daily analysis scheduled")

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}

		if err := r.runBackground(ctx); err != nil {
			// Reported but non-fatal; the marker is untouched so the next
			// trigger retries.
			r.log.Warn().Err(err).Msg("background analysis aborted")
		}
	}
}
