// Package insight builds prompts over a window of diary entries, invokes
// the chat-completion client once per analysis kind and assembles the
// parsed results into a daily snapshot.
package insight

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/internal/model"
)

// CompletionClient is the outbound dependency of the analyzer.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// Reply-length budgets per analysis kind.
const (
	maxTokensFeedback     = 150
	maxTokensHappiness    = 150
	maxTokensEmotion      = 60
	maxTokensTopWords     = 60
	maxTokensSelection    = 30
	maxTokensDailyMessage = 50
)

// Analyzer runs the five diary analyses.
type Analyzer struct {
	client      CompletionClient
	temperature float64
	log         zerolog.Logger
}

func NewAnalyzer(client CompletionClient, temperature float64, log zerolog.Logger) *Analyzer {
	return &Analyzer{client: client, temperature: temperature, log: log}
}

// Feedback asks for the counselor-style summary over the given entries.
func (a *Analyzer) Feedback(ctx context.Context, entries []*model.DiaryEntry) (string, error) {
	return a.client.Complete(ctx, systemPrompt, feedbackPrompt(entries), maxTokensFeedback, a.temperature)
}

// WeeklyHappiness scores each day of the window 0-100. Missing days are
// the caller's concern; the result carries only the lines that parsed.
func (a *Analyzer) WeeklyHappiness(ctx context.Context, entries []*model.DiaryEntry) ([]model.DailyHappiness, error) {
	reply, err := a.client.Complete(ctx, systemPrompt, happinessPrompt(entries), maxTokensHappiness, a.temperature)
	if err != nil {
		return nil, err
	}
	return ParseHappiness(reply), nil
}

// EmotionProportion breaks the window down into the five emotion labels.
func (a *Analyzer) EmotionProportion(ctx context.Context, entries []*model.DiaryEntry) ([]model.EmotionData, error) {
	reply, err := a.client.Complete(ctx, systemPrompt, emotionPrompt(entries), maxTokensEmotion, a.temperature)
	if err != nil {
		return nil, err
	}
	return ParseEmotions(reply), nil
}

// TopWords returns the up-to-three most frequent words as judged by the
// model, not locally computed.
func (a *Analyzer) TopWords(ctx context.Context, entries []*model.DiaryEntry) ([]model.WordCount, error) {
	reply, err := a.client.Complete(ctx, systemPrompt, topWordsPrompt(entries), maxTokensTopWords, a.temperature)
	if err != nil {
		return nil, err
	}
	return ParseTopWords(reply), nil
}

// SelectHighlight picks the most positive entry of the window by date.
// An unmatched or empty reply yields nil, not an error.
func (a *Analyzer) SelectHighlight(ctx context.Context, entries []*model.DiaryEntry) (*model.DiaryEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	reply, err := a.client.Complete(ctx, systemPrompt, selectionPrompt(entries), maxTokensSelection, a.temperature)
	if err != nil {
		return nil, err
	}
	date := ParseSelectedDate(reply)
	for _, e := range entries {
		if e.Date == date {
			return e, nil
		}
	}
	return nil, nil
}

// DailyMessage returns the one-line home-screen encouragement.
func (a *Analyzer) DailyMessage(ctx context.Context) (string, error) {
	return a.client.Complete(ctx, systemPrompt, dailyMessagePrompt, maxTokensDailyMessage, a.temperature)
}

// Analyze runs all five sub-analyses concurrently and joins them into one
// snapshot for today. The barrier always completes: a failed sub-analysis
// contributes its empty value and is logged, never propagated. With no
// entries it short-circuits to a welcome snapshot without any remote call.
func (a *Analyzer) Analyze(ctx context.Context, entries []*model.DiaryEntry, today time.Time) *model.InsightSnapshot {
	snap := &model.InsightSnapshot{Date: today.Format(DateLayout)}

	if len(entries) == 0 {
		snap.Feedback = welcomeFeedback
		snap.Complete = true
		return snap
	}

	weekEntries := FilterByDates(entries, WeekDates(today))
	monthEntries := FilterByMonth(entries, today)

	var wg sync.WaitGroup
	wg.Add(5)

	var failed [5]bool

	go func() {
		defer wg.Done()
		feedback, err := a.Feedback(ctx, monthEntries)
		if err != nil {
			a.log.Warn().Err(err).Msg("feedback analysis failed")
			snap.Feedback = failedFeedback
			failed[0] = true
			return
		}
		snap.Feedback = feedback
	}()

	go func() {
		defer wg.Done()
		happiness, err := a.WeeklyHappiness(ctx, weekEntries)
		if err != nil {
			a.log.Warn().Err(err).Msg("weekly happiness analysis failed")
			failed[1] = true
			return
		}
		snap.Happiness = happiness
	}()

	go func() {
		defer wg.Done()
		emotions, err := a.EmotionProportion(ctx, weekEntries)
		if err != nil {
			a.log.Warn().Err(err).Msg("emotion proportion analysis failed")
			failed[2] = true
			return
		}
		snap.Emotions = emotions
	}()

	go func() {
		defer wg.Done()
		words, err := a.TopWords(ctx, monthEntries)
		if err != nil {
			a.log.Warn().Err(err).Msg("top words analysis failed")
			failed[3] = true
			return
		}
		snap.TopWords = words
	}()

	go func() {
		defer wg.Done()
		selected, err := a.SelectHighlight(ctx, monthEntries)
		if err != nil {
			a.log.Warn().Err(err).Msg("highlight selection failed")
			failed[4] = true
			return
		}
		if selected != nil {
			snap.SelectedEntryID = selected.ID
		}
	}()

	wg.Wait()

	snap.Complete = true
	for _, f := range failed {
		if f {
			snap.Complete = false
			break
		}
	}
	return snap
}
