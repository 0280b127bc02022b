package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/insight"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	entries  []*model.DiaryEntry
	listErr  error
	snapshot *model.InsightSnapshot
	nextRuns map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextRuns: map[string]string{}}
}

func (f *fakeStore) Entries() store.Entries              { return fakeEntries{f} }
func (f *fakeStore) Snapshots() store.Snapshots          { return fakeSnapshots{f} }
func (f *fakeStore) Schedule() store.Schedule            { return fakeSchedule{f} }
func (f *fakeStore) HealthCheck(context.Context) error   { return nil }
func (f *fakeStore) Close() error                        { return nil }

type fakeEntries struct{ f *fakeStore }

func (fe fakeEntries) Create(context.Context, *model.DiaryEntry) (*model.DiaryEntry, error) {
	panic("unused")
}
func (fe fakeEntries) List(context.Context) ([]*model.DiaryEntry, error) {
	return fe.f.entries, fe.f.listErr
}
func (fe fakeEntries) GetByID(context.Context, string) (*model.DiaryEntry, error) {
	panic("unused")
}
func (fe fakeEntries) Update(context.Context, *model.DiaryEntry) (*model.DiaryEntry, error) {
	panic("unused")
}
func (fe fakeEntries) Delete(context.Context, string) error { panic("unused") }

type fakeSnapshots struct{ f *fakeStore }

func (fs fakeSnapshots) Put(_ context.Context, s *model.InsightSnapshot) error {
	fs.f.snapshot = s
	return nil
}
func (fs fakeSnapshots) Latest(context.Context) (*model.InsightSnapshot, error) {
	if fs.f.snapshot == nil {
		return nil, model.ErrNotFound
	}
	return fs.f.snapshot, nil
}

type fakeSchedule struct{ f *fakeStore }

func (fs fakeSchedule) SetNextRun(_ context.Context, task, at string) error {
	fs.f.nextRuns[task] = at
	return nil
}
func (fs fakeSchedule) NextRun(_ context.Context, task string) (string, error) {
	at, ok := fs.f.nextRuns[task]
	if !ok {
		return "", model.ErrNotFound
	}
	return at, nil
}

type fakeAnalyzer struct {
	calls    int
	complete bool
}

func (fa *fakeAnalyzer) Analyze(_ context.Context, entries []*model.DiaryEntry, today time.Time) *model.InsightSnapshot {
	fa.calls++
	return &model.InsightSnapshot{
		Date:     today.Format(insight.DateLayout),
		Feedback: "fresh analysis",
		Complete: fa.complete,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestRefresher(f *fakeStore, fa *fakeAnalyzer, policy config.RefreshPolicy, now time.Time) *Refresher {
	return NewRefresher(f, fa, policy, zerolog.Nop()).WithClock(fixedClock(now))
}

// --- Tests ---

func TestRunIfStale_SecondCallSameDayIsNoOp(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	f := newFakeStore()
	f.entries = []*model.DiaryEntry{{ID: "a", Date: "20250110", Text: "hi"}}
	fa := &fakeAnalyzer{complete: true}
	r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

	first, err := r.RunIfStale(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, fa.calls)

	second, err := r.RunIfStale(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, fa.calls, "same-day trigger must reuse the cached snapshot")
	require.Equal(t, first, second)
}

func TestRunIfStale_ForceAlwaysReRuns(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	f := newFakeStore()
	f.entries = []*model.DiaryEntry{{ID: "a", Date: "20250110", Text: "hi"}}
	fa := &fakeAnalyzer{complete: true}
	r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

	_, err := r.RunIfStale(context.Background(), false)
	require.NoError(t, err)
	_, err = r.RunIfStale(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 2, fa.calls)
}

func TestRunIfStale_NewDayInvalidatesSnapshot(t *testing.T) {
	f := newFakeStore()
	f.entries = []*model.DiaryEntry{{ID: "a", Date: "20250110", Text: "hi"}}
	fa := &fakeAnalyzer{complete: true}

	day1 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	r := newTestRefresher(f, fa, config.PolicyBestEffort, day1)
	_, err := r.RunIfStale(context.Background(), false)
	require.NoError(t, err)

	r.WithClock(fixedClock(day1.AddDate(0, 0, 1)))
	snap, err := r.RunIfStale(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 2, fa.calls)
	require.Equal(t, "20250111", snap.Date)
}

func TestRunIfStale_PolicyDecidesIncompleteFreshness(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("best effort keeps incomplete snapshot", func(t *testing.T) {
		f := newFakeStore()
		f.entries = []*model.DiaryEntry{{ID: "a", Date: "20250110", Text: "hi"}}
		fa := &fakeAnalyzer{complete: false}
		r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

		_, err := r.RunIfStale(context.Background(), false)
		require.NoError(t, err)
		_, err = r.RunIfStale(context.Background(), false)
		require.NoError(t, err)
		require.Equal(t, 1, fa.calls)
	})

	t.Run("require-complete retries failed slots", func(t *testing.T) {
		f := newFakeStore()
		f.entries = []*model.DiaryEntry{{ID: "a", Date: "20250110", Text: "hi"}}
		fa := &fakeAnalyzer{complete: false}
		r := newTestRefresher(f, fa, config.PolicyRequireComplete, now)

		_, err := r.RunIfStale(context.Background(), false)
		require.NoError(t, err)
		_, err = r.RunIfStale(context.Background(), false)
		require.NoError(t, err)
		require.Equal(t, 2, fa.calls)
	})
}

func TestRunIfStale_EmptyEntriesPersistsWelcomeSnapshot(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	f := newFakeStore()
	fa := &fakeAnalyzer{complete: true}
	r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

	snap, err := r.RunIfStale(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, fa.calls)
	require.NotNil(t, f.snapshot)
	require.Equal(t, "20250110", snap.Date)
}

func TestRunBackground_NoEntriesAbortsLeavingMarkerUnchanged(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 5, 0, time.UTC)
	f := newFakeStore()
	f.snapshot = &model.InsightSnapshot{Date: "20250109", Complete: true}
	fa := &fakeAnalyzer{complete: true}
	r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

	err := r.runBackground(context.Background())
	require.True(t, errors.Is(err, ErrNoEntries))
	require.Zero(t, fa.calls)
	require.Equal(t, "20250109", f.snapshot.Date, "stale snapshot must stay for retry")
}

func TestRunBackground_FreshSnapshotSkipsAnalysis(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 5, 0, time.UTC)
	f := newFakeStore()
	f.snapshot = &model.InsightSnapshot{Date: "20250110", Complete: true}
	f.entries = []*model.DiaryEntry{{ID: "a", Date: "20250110", Text: "hi"}}
	fa := &fakeAnalyzer{complete: true}
	r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

	require.NoError(t, r.runBackground(context.Background()))
	require.Zero(t, fa.calls)
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), nextMidnight(now))

	exactly := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), nextMidnight(exactly))
}

func TestLoop_PersistsNextRunBeforeExecuting(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	f := newFakeStore()
	fa := &fakeAnalyzer{complete: true}
	r := newTestRefresher(f, fa, config.PolicyBestEffort, now)

	// A canceled context stops the loop at the wait point, after the
	// schedule write but before any analysis runs.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Loop(ctx)

	require.Equal(t, nextMidnight(now).Format(time.RFC3339), f.nextRuns[taskDailyAnalysis])
	require.Zero(t, fa.calls)
}
