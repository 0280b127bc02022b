package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daybook.db")
	s, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEntryCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Entries().Create(ctx, &model.DiaryEntry{Date: "20250101", Text: "first day"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.Entries().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "first day", got.Text)
	require.Equal(t, "20250101", got.Date)

	got.Text = "first day, revised"
	updated, err := s.Entries().Update(ctx, got)
	require.NoError(t, err)
	require.Equal(t, "first day, revised", updated.Text)

	require.NoError(t, s.Entries().Delete(ctx, created.ID))
	_, err = s.Entries().GetByID(ctx, created.ID)
	require.True(t, errors.Is(err, model.ErrNotFound))
}

func TestEntryListSortedByDateDescending(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, d := range []string{"20250102", "20250105", "20250101", "20250103"} {
		_, err := s.Entries().Create(ctx, &model.DiaryEntry{Date: d, Text: "ok"})
		require.NoError(t, err)
	}

	entries, err := s.Entries().List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	var dates []string
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	require.Equal(t, []string{"20250105", "20250103", "20250102", "20250101"}, dates)
}

func TestEntryCreateRequiresDate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Entries().Create(ctx, &model.DiaryEntry{Text: "dateless"})
	require.True(t, errors.Is(err, model.ErrValidation))
}

func TestEntryStoresImageData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	img := []byte{0xff, 0xd8, 0xff, 0xe0}
	created, err := s.Entries().Create(ctx, &model.DiaryEntry{Date: "20250110", Text: "photo day", ImageData: img})
	require.NoError(t, err)

	got, err := s.Entries().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, img, got.ImageData)
}

func TestSnapshotPutReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Snapshots().Latest(ctx)
	require.True(t, errors.Is(err, model.ErrNotFound))

	first := &model.InsightSnapshot{
		Date:     "20250101",
		Feedback: "keep going",
		Happiness: []model.DailyHappiness{
			{Date: "20250101", Happiness: 42},
		},
		Emotions: []model.EmotionData{
			{Emotion: model.EmotionHappy, Percentage: 60},
		},
		TopWords: []model.WordCount{{Word: "work", Count: 3}},
		Complete: true,
	}
	require.NoError(t, s.Snapshots().Put(ctx, first))

	got, err := s.Snapshots().Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, "20250101", got.Date)
	require.Equal(t, first.Happiness, got.Happiness)
	require.Equal(t, first.Emotions, got.Emotions)
	require.Equal(t, first.TopWords, got.TopWords)
	require.True(t, got.Complete)

	second := &model.InsightSnapshot{Date: "20250102", Feedback: "new day"}
	require.NoError(t, s.Snapshots().Put(ctx, second))

	got, err = s.Snapshots().Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, "20250102", got.Date)
	require.Equal(t, "new day", got.Feedback)
	require.Empty(t, got.Happiness)
	require.False(t, got.Complete)
}

func TestScheduleNextRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Schedule().NextRun(ctx, "daily-analysis")
	require.True(t, errors.Is(err, model.ErrNotFound))

	require.NoError(t, s.Schedule().SetNextRun(ctx, "daily-analysis", "2025-01-02T00:00:00Z"))
	at, err := s.Schedule().NextRun(ctx, "daily-analysis")
	require.NoError(t, err)
	require.Equal(t, "2025-01-02T00:00:00Z", at)

	require.NoError(t, s.Schedule().SetNextRun(ctx, "daily-analysis", "2025-01-03T00:00:00Z"))
	at, err = s.Schedule().NextRun(ctx, "daily-analysis")
	require.NoError(t, err)
	require.Equal(t, "2025-01-03T00:00:00Z", at)
}
