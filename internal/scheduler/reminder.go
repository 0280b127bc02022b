package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/internal/insight"
	"github.com/daybook-app/daybook/internal/store"
)

// Notifier delivers the evening "you haven't written today" nudge.
// Delivery transports (push, mail) live behind this interface; the
// default implementation only logs.
type Notifier interface {
	Reminder(ctx context.Context, date string)
}

// LogNotifier writes reminders to the service log.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Reminder(_ context.Context, date string) {
	n.Log.Info().Str("date", date).Msg("no diary entry today, reminder due")
}

// Reminder checks each evening whether an entry exists for the current
// day and notifies when none does.
type Reminder struct {
	store    store.Store
	notifier Notifier
	hour     int
	now      func() time.Time
	log      zerolog.Logger
}

func NewReminder(st store.Store, notifier Notifier, hour int, log zerolog.Logger) *Reminder {
	return &Reminder{store: st, notifier: notifier, hour: hour, now: time.Now, log: log}
}

// WithClock overrides the time source, for tests.
func (rm *Reminder) WithClock(now func() time.Time) *Reminder {
	rm.now = now
	return rm
}

// CheckToday fires the notifier when no entry carries today's date.
func (rm *Reminder) CheckToday(ctx context.Context) error {
	today := rm.now().Format(insight.DateLayout)

	entries, err := rm.store.Entries().List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Date == today {
			return nil
		}
	}
	rm.notifier.Reminder(ctx, today)
	return nil
}

// Loop runs CheckToday once per day at the configured hour.
func (rm *Reminder) Loop(ctx context.Context) {
	for {
		now := rm.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), rm.hour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}

		if err := rm.CheckToday(ctx); err != nil {
			rm.log.Warn().Err(err).Msg("diary reminder check failed")
		}
	}
}
