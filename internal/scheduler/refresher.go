// Package scheduler keeps the daily insight snapshot fresh: once per
// calendar day on demand, plus a background midnight run.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/insight"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
)

// ErrNoEntries reports a background trigger that fired with no entry data
// available. Non-fatal: the marker is left untouched so the next eligible
// trigger retries.
var ErrNoEntries = errors.New("no diary entries available")

// Analyzer is the orchestration dependency of the refresher.
type Analyzer interface {
	Analyze(ctx context.Context, entries []*model.DiaryEntry, today time.Time) *model.InsightSnapshot
}

// Refresher moves the snapshot between Stale and Fresh. Fresh means the
// stored snapshot carries today's date; the transition back to Stale is
// implicit on the first access of a new day.
type Refresher struct {
	store    store.Store
	analyzer Analyzer
	policy   config.RefreshPolicy
	now      func() time.Time
	log      zerolog.Logger
}

func NewRefresher(st store.Store, analyzer Analyzer, policy config.RefreshPolicy, log zerolog.Logger) *Refresher {
	return &Refresher{
		store:    st,
		analyzer: analyzer,
		policy:   policy,
		now:      time.Now,
		log:      log,
	}
}

// WithClock overrides the time source, for tests.
func (r *Refresher) WithClock(now func() time.Time) *Refresher {
	r.now = now
	return r
}

// Current returns the stored snapshot whatever its age. Readers never
// block on an analysis in flight.
func (r *Refresher) Current(ctx context.Context) (*model.InsightSnapshot, error) {
	return r.store.Snapshots().Latest(ctx)
}

// fresh reports whether snap still counts for today under the configured
// policy. Best-effort accepts a snapshot with empty failed slots;
// require-complete treats it as stale so the next trigger retries.
func (r *Refresher) fresh(snap *model.InsightSnapshot, today string) bool {
	if snap == nil || snap.Date != today {
		return false
	}
	if r.policy == config.PolicyRequireComplete && !snap.Complete {
		return false
	}
	return true
}

// RunIfStale runs the five-way analysis unless a fresh snapshot already
// exists for today. force bypasses the freshness check entirely. The
// returned snapshot is always the one now stored.
func (r *Refresher) RunIfStale(ctx context.Context, force bool) (*model.InsightSnapshot, error) {
	today := r.now().Format(insight.DateLayout)

	if !force {
		snap, err := r.store.Snapshots().Latest(ctx)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		if err == nil && r.fresh(snap, today) {
			r.log.Debug().Str("date", today).Msg("insight snapshot already fresh")
			return snap, nil
		}
	}

	entries, err := r.store.Entries().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	snap := r.analyzer.Analyze(ctx, entries, r.now())
	if err := r.store.Snapshots().Put(ctx, snap); err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}

	r.log.Info().
		Str("date", snap.Date).
		Bool("complete", snap.Complete).
		Int("entries", len(entries)).
		Msg("insight snapshot refreshed")
	return snap, nil
}

// runBackground is the wake-up handler. Unlike RunIfStale it aborts when
// no entry data exists rather than writing a welcome snapshot, leaving the
// marker unchanged for the next trigger.
func (r *Refresher) runBackground(ctx context.Context) error {
	today := r.now().Format(insight.DateLayout)

	snap, err := r.store.Snapshots().Latest(ctx)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}
	if err == nil && r.fresh(snap, today) {
		return nil
	}

	entries, err := r.store.Entries().List(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	if len(entries) == 0 {
		return ErrNoEntries
	}

	out := r.analyzer.Analyze(ctx, entries, r.now())
	if err := r.store.Snapshots().Put(ctx, out); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}
