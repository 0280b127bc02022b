package model

import "time"

// DiaryEntry is one dated journal record. Date is an 8-digit yyyyMMdd
// string and is not unique; several entries may share a day.
type DiaryEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Text         string    `json:"text"`
	ImageData    []byte    `json:"imageData,omitempty"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}

// Emotion is one of the fixed analysis labels. Labels the model invents
// outside this set are passed through untranslated.
type Emotion string

const (
	EmotionHappy   Emotion = "happy"
	EmotionAngry   Emotion = "angry"
	EmotionAnxious Emotion = "anxious"
	EmotionSad     Emotion = "sad"
	EmotionCalm    Emotion = "calm"
)

// DailyHappiness is one day's 0-100 happiness score as judged by the
// language model. The range is not validated locally.
type DailyHappiness struct {
	Date      string  `json:"date"`
	Happiness float64 `json:"happiness"`
}

// EmotionData is one slice of the emotion-proportion breakdown.
type EmotionData struct {
	Emotion    Emotion `json:"emotion"`
	Percentage float64 `json:"percentage"`
}

// WordCount is one row of the top-words analysis.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// InsightSnapshot is the joined result of one day's five analyses.
// Date doubles as the freshness marker: a snapshot is current only while
// Date equals the calendar day being served. Complete records whether all
// five sub-analyses produced data.
type InsightSnapshot struct {
	Date            string           `json:"date"`
	Feedback        string           `json:"feedback"`
	Happiness       []DailyHappiness `json:"happiness"`
	Emotions        []EmotionData    `json:"emotions"`
	TopWords        []WordCount      `json:"topWords"`
	SelectedEntryID string           `json:"selectedEntryId,omitempty"`
	Complete        bool             `json:"complete"`
	CreationTime    time.Time        `json:"creationTime"`
}
