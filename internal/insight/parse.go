package insight

import (
	"strconv"
	"strings"

	"github.com/daybook-app/daybook/internal/model"
)

// The model's output format is not contractually guaranteed, so every
// parser here filters instead of failing: a malformed line is dropped and
// its siblings still parse. An empty result is success, distinct from a
// transport or credential failure upstream.

// canonicalEmotions maps the labels the prompt dictates onto the fixed
// Emotion set. Labels outside the map pass through untranslated.
var canonicalEmotions = map[string]model.Emotion{
	"快樂": model.EmotionHappy,
	"生氣": model.EmotionAngry,
	"焦慮": model.EmotionAnxious,
	"悲傷": model.EmotionSad,
	"平靜": model.EmotionCalm,
}

// ParseHappiness extracts (date, score) pairs from lines shaped like
// 日期: 20250101, 快樂指數: 42. Input order is preserved.
func ParseHappiness(reply string) []model.DailyHappiness {
	var out []model.DailyHappiness
	for _, line := range strings.Split(reply, "\n") {
		parts := strings.Split(line, "快樂指數:")
		if len(parts) != 2 {
			continue
		}
		happiness, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		date := strings.ReplaceAll(parts[0], "日期:", "")
		date = strings.TrimSpace(date)
		date = strings.Trim(date, ",，")
		date = strings.TrimSpace(date)
		out = append(out, model.DailyHappiness{Date: date, Happiness: happiness})
	}
	return out
}

// ParseEmotions extracts label/percentage pairs from lines shaped like
// 快樂: 30%. A missing colon or percent value drops the line.
func ParseEmotions(reply string) []model.EmotionData {
	var out []model.EmotionData
	for _, line := range strings.Split(reply, "\n") {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		raw := strings.TrimSpace(parts[1])
		raw = strings.ReplaceAll(raw, "%", "")
		percentage, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		label := strings.TrimSpace(parts[0])
		emotion, ok := canonicalEmotions[label]
		if !ok {
			emotion = model.Emotion(label)
		}
		out = append(out, model.EmotionData{Emotion: emotion, Percentage: percentage})
	}
	return out
}

// ParseTopWords extracts word/count pairs from lines shaped like
// 開心 12次. Exactly two whitespace-separated fields are required and the
// count must be an integer after stripping 次.
func ParseTopWords(reply string) []model.WordCount {
	var out []model.WordCount
	for _, line := range strings.Split(reply, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		count, err := strconv.Atoi(strings.ReplaceAll(fields[1], "次", ""))
		if err != nil {
			continue
		}
		out = append(out, model.WordCount{Word: fields[0], Count: count})
	}
	return out
}

// ParseSelectedDate treats the whole reply as one trimmed date token.
func ParseSelectedDate(reply string) string {
	return strings.TrimSpace(reply)
}
