package practice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(sec int) time.Time {
	return t0.Add(time.Duration(sec) * time.Second)
}

func mustApply(t *testing.T, s State, ev Event) State {
	t.Helper()
	next, err := Apply(s, ev)
	require.NoError(t, err)
	return next
}

func revealAndRate(t *testing.T, s State, stars, sec int) State {
	t.Helper()
	s = mustApply(t, s, Event{Type: EventReveal, At: at(sec)})
	return mustApply(t, s, Event{Type: EventRate, Stars: stars, At: at(sec)})
}

func TestStartRequiresQuestions(t *testing.T) {
	s := New(0)
	_, err := Apply(s, Event{Type: EventStart, At: t0})
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = Apply(s, Event{Type: EventNext, At: t0})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestWrapCommitsHistory(t *testing.T) {
	s := mustApply(t, New(3), Event{Type: EventStart, At: at(0)})
	assert.Equal(t, PhaseShowingQuestion, s.Phase)

	s = revealAndRate(t, s, 4, 30)
	s = mustApply(t, s, Event{Type: EventNext, At: at(60)})
	s = revealAndRate(t, s, 5, 90)
	s = mustApply(t, s, Event{Type: EventNext, At: at(120)})
	s = revealAndRate(t, s, 3, 150)
	assert.Nil(t, s.Committed)

	s = mustApply(t, s, Event{Type: EventNext, At: at(180)})

	require.NotNil(t, s.Committed)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 4.0, s.Committed.AverageRating)
	assert.Equal(t, 3, s.Committed.QuestionsAttempted)
	assert.Equal(t, 3, s.Committed.TotalQuestions)
	assert.Equal(t, 3.0, s.Committed.DurationMinutes)
	assert.Equal(t, map[string]int{"0": 4, "1": 5, "2": 3}, s.Committed.Ratings)
	assert.Empty(t, s.Ratings)
	assert.Equal(t, at(180), s.PracticeStartedAt)

	// the entry is reported once
	s = mustApply(t, s, Event{Type: EventNext, At: at(200)})
	assert.Nil(t, s.Committed)
}

func TestWrapWithoutRatingsDoesNotCommit(t *testing.T) {
	s := mustApply(t, New(2), Event{Type: EventStart, At: at(0)})
	s = mustApply(t, s, Event{Type: EventNext, At: at(10)})
	s = mustApply(t, s, Event{Type: EventNext, At: at(20)})

	assert.Equal(t, 0, s.Cursor)
	assert.Nil(t, s.Committed)
}

func TestAverageRoundsToTwoDecimals(t *testing.T) {
	s := mustApply(t, New(3), Event{Type: EventStart, At: at(0)})
	s = revealAndRate(t, s, 5, 1)
	s = mustApply(t, s, Event{Type: EventNext, At: at(2)})
	s = revealAndRate(t, s, 4, 3)
	s = mustApply(t, s, Event{Type: EventNext, At: at(4)})
	s = revealAndRate(t, s, 4, 5)
	s = mustApply(t, s, Event{Type: EventNext, At: at(6)})

	require.NotNil(t, s.Committed)
	assert.Equal(t, 4.33, s.Committed.AverageRating)
	assert.Equal(t, 0.1, s.Committed.DurationMinutes)
}

func TestRatingOverwritesWithinPass(t *testing.T) {
	s := mustApply(t, New(2), Event{Type: EventStart, At: at(0)})
	s = revealAndRate(t, s, 2, 5)
	s = mustApply(t, s, Event{Type: EventRate, Stars: 5, At: at(6)})

	assert.Equal(t, map[int]int{0: 5}, s.Ratings)
}

func TestRateGuards(t *testing.T) {
	s := mustApply(t, New(2), Event{Type: EventStart, At: at(0)})

	_, err := Apply(s, Event{Type: EventRate, Stars: 3})
	assert.ErrorIs(t, err, ErrNotRevealed)

	s = mustApply(t, s, Event{Type: EventReveal, At: at(1)})
	_, err = Apply(s, Event{Type: EventRate, Stars: 6})
	assert.ErrorIs(t, err, ErrInvalidStars)
	_, err = Apply(s, Event{Type: EventRate, Stars: 0})
	assert.ErrorIs(t, err, ErrInvalidStars)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := mustApply(t, New(2), Event{Type: EventStart, At: at(0)})
	s = revealAndRate(t, s, 3, 1)

	_ = mustApply(t, s, Event{Type: EventRate, Stars: 1})
	assert.Equal(t, 3, s.Ratings[0])
}

func TestQuestionTimerResetsOnNext(t *testing.T) {
	s := mustApply(t, New(2), Event{Type: EventStart, At: at(0)})
	assert.Equal(t, 95*time.Second, s.QuestionElapsed(at(95)))

	s = mustApply(t, s, Event{Type: EventNext, At: at(100)})
	assert.Equal(t, 5*time.Second, s.QuestionElapsed(at(105)))
}

func TestBand(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    TimerBand
	}{
		{0, TimerNominal},
		{90 * time.Second, TimerNominal},
		{91 * time.Second, TimerWarning},
		{120 * time.Second, TimerWarning},
		{121 * time.Second, TimerOverTime},
	}
	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Band(tt.elapsed))
		})
	}
}

func TestAppendHistoryEvictsOldest(t *testing.T) {
	var history []HistoryEntry
	for i := 0; i < 21; i++ {
		history = AppendHistory(history, HistoryEntry{QuestionsAttempted: i})
	}

	require.Len(t, history, MaxHistory)
	assert.Equal(t, 1, history[0].QuestionsAttempted)
	assert.Equal(t, 20, history[MaxHistory-1].QuestionsAttempted)
}

func TestDecodeHistoryToleratesCorruption(t *testing.T) {
	h, ok := DecodeHistory("{not json")
	assert.False(t, ok)
	assert.Empty(t, h)

	h, ok = DecodeHistory("")
	assert.True(t, ok)
	assert.NotNil(t, h)

	h, ok = DecodeHistory(`[{"questionsAttempted":2,"totalQuestions":3,"averageRating":4.5}]`)
	assert.True(t, ok)
	require.Len(t, h, 1)
	assert.Equal(t, 4.5, h[0].AverageRating)
}
