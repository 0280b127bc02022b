package services

import (
	"context"

	"github.com/daybook-app/daybook/internal/insight"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/scheduler"
)

// DailyMessenger is the slice of the analyzer the insight service needs
// beyond the refresher.
type DailyMessenger interface {
	DailyMessage(ctx context.Context) (string, error)
}

// InsightService exposes snapshot reads and refresh triggers.
type InsightService struct {
	refresher *scheduler.Refresher
	messenger DailyMessenger
}

func NewInsightService(r *scheduler.Refresher, m DailyMessenger) *InsightService {
	return &InsightService{refresher: r, messenger: m}
}

// Current returns the stored snapshot without triggering any analysis.
func (s *InsightService) Current(ctx context.Context) (*model.InsightSnapshot, error) {
	return s.refresher.Current(ctx)
}

// Refresh runs the analyses unless today's snapshot is already fresh;
// force bypasses the freshness check.
func (s *InsightService) Refresh(ctx context.Context, force bool) (*model.InsightSnapshot, error) {
	return s.refresher.RunIfStale(ctx, force)
}

// DailyMessage returns the one-line encouragement for the home screen.
func (s *InsightService) DailyMessage(ctx context.Context) (string, error) {
	return s.messenger.DailyMessage(ctx)
}

// WeeklyChart projects the snapshot's happiness points onto the full
// trailing week, zero-filling days the model skipped.
func (s *InsightService) WeeklyChart(snap *model.InsightSnapshot, weekDates []string) []model.DailyHappiness {
	return insight.AlignWeek(snap.Happiness, weekDates)
}
