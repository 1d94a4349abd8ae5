package practice

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// MaxHistory is how many practice runs are kept per session; older runs are evicted.
const MaxHistory = 20

// HistoryEntry summarises one full pass over the practice questions.
type HistoryEntry struct {
	Date               time.Time      `json:"date"`
	QuestionsAttempted int            `json:"questionsAttempted"`
	TotalQuestions     int            `json:"totalQuestions"`
	AverageRating      float64        `json:"averageRating"`
	Ratings            map[string]int `json:"ratings"`
	DurationMinutes    float64        `json:"durationMinutes"`
}

// HistoryKey is the per-viewer cache key holding a session's practice history.
func HistoryKey(sessionId string) string {
	return "practice-history-" + sessionId
}

// AppendHistory appends entry and evicts the oldest entries beyond MaxHistory.
func AppendHistory(history []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, entry)
	if len(out) > MaxHistory {
		out = out[len(out)-MaxHistory:]
	}
	return out
}

// DecodeHistory parses cached history. Unparseable content yields an empty
// history and ok=false so the caller can log the corruption.
func DecodeHistory(raw string) (history []HistoryEntry, ok bool) {
	if raw == "" {
		return []HistoryEntry{}, true
	}
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return []HistoryEntry{}, false
	}
	if history == nil {
		history = []HistoryEntry{}
	}
	return history, true
}

func buildEntry(ratings map[int]int, total int, startedAt, now time.Time) HistoryEntry {
	sum := 0
	byIndex := make(map[string]int, len(ratings))
	for idx, stars := range ratings {
		sum += stars
		byIndex[strconv.Itoa(idx)] = stars
	}

	avg := 0.0
	if len(ratings) > 0 {
		avg = round(float64(sum)/float64(len(ratings)), 2)
	}

	return HistoryEntry{
		Date:               now,
		QuestionsAttempted: len(ratings),
		TotalQuestions:     total,
		AverageRating:      avg,
		Ratings:            byIndex,
		DurationMinutes:    round(now.Sub(startedAt).Minutes(), 1),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
