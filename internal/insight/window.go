package insight

import (
	"time"

	"github.com/daybook-app/daybook/internal/model"
)

// DateLayout is the 8-digit calendar-day encoding used everywhere an entry
// date travels: storage, prompts and model replies.
const DateLayout = "20060102"

// WeekDates returns the last 7 calendar days ending at today, oldest
// first, formatted as yyyyMMdd.
func WeekDates(today time.Time) []string {
	out := make([]string, 7)
	for i := 0; i < 7; i++ {
		out[6-i] = today.AddDate(0, 0, -i).Format(DateLayout)
	}
	return out
}

// FilterByDates keeps entries whose date is a member of dates, preserving
// input order.
func FilterByDates(entries []*model.DiaryEntry, dates []string) []*model.DiaryEntry {
	member := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		member[d] = struct{}{}
	}
	var out []*model.DiaryEntry
	for _, e := range entries {
		if _, ok := member[e.Date]; ok {
			out = append(out, e)
		}
	}
	return out
}

// FilterByMonth keeps entries from the same calendar month as today.
// This is calendar-component equality, not a rolling 30-day window, so
// the set shrinks to nothing at the start of each month. Entries with
// undecodable dates are skipped.
func FilterByMonth(entries []*model.DiaryEntry, today time.Time) []*model.DiaryEntry {
	var out []*model.DiaryEntry
	for _, e := range entries {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			continue
		}
		if d.Year() == today.Year() && d.Month() == today.Month() {
			out = append(out, e)
		}
	}
	return out
}

// AlignWeek projects parsed happiness points onto the full week, filling
// days the model skipped with a zero score. Gap filling is the caller's
// job, not the parser's.
func AlignWeek(points []model.DailyHappiness, dates []string) []model.DailyHappiness {
	out := make([]model.DailyHappiness, 0, len(dates))
	for _, d := range dates {
		aligned := model.DailyHappiness{Date: d}
		for _, p := range points {
			if p.Date == d {
				aligned = p
				break
			}
		}
		out = append(out, aligned)
	}
	return out
}
