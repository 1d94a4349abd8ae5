// Package practice drives the Q&A rehearsal: a cyclic cursor over the practice
// questions, reveal and self-rating, a per-question stopwatch and the history
// commit that happens each time the cursor wraps.
package practice

import (
	"errors"
	"time"
)

type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseShowingQuestion Phase = "showing_question"
	PhaseRevealed        Phase = "revealed"
)

type EventType string

const (
	EventStart  EventType = "start"
	EventNext   EventType = "next"
	EventReveal EventType = "reveal"
	EventRate   EventType = "rate"
	EventTick   EventType = "tick"
	EventReset  EventType = "reset"
)

type Event struct {
	Type  EventType `json:"type"`
	Stars int       `json:"stars,omitempty"`
	At    time.Time `json:"-"`
}

var (
	ErrNoQuestions  = errors.New("practice: session has no practice questions")
	ErrNotRevealed  = errors.New("practice: rate requires the answer to be revealed")
	ErrInvalidStars = errors.New("practice: rating must be between 1 and 5")
	ErrUnknownEvent = errors.New("practice: unknown event")
)

// Timer thresholds for a single answer.
const (
	NominalLimit = 90 * time.Second
	WarningLimit = 120 * time.Second
)

type TimerBand string

const (
	TimerNominal  TimerBand = "nominal"
	TimerWarning  TimerBand = "warning"
	TimerOverTime TimerBand = "over_time"
)

// State is one viewer's practice run. Transitions never mutate the receiver.
type State struct {
	Phase             Phase       `json:"phase"`
	Cursor            int         `json:"cursor"`
	Total             int         `json:"total"`
	Ratings           map[int]int `json:"ratings"`
	PracticeStartedAt time.Time   `json:"practice_started_at"`
	QuestionStartedAt time.Time   `json:"question_started_at"`

	// Committed is set only by the transition that wrapped the cursor and
	// produced a history entry.
	Committed *HistoryEntry `json:"committed,omitempty"`
}

// New returns an idle run over total questions.
func New(total int) State {
	return State{Phase: PhaseIdle, Total: total, Ratings: map[int]int{}}
}

// Apply returns the state after ev.
func Apply(s State, ev Event) (State, error) {
	next := s.clone()
	next.Committed = nil

	switch ev.Type {
	case EventStart:
		if s.Total == 0 {
			return s, ErrNoQuestions
		}
		if s.Phase != PhaseIdle {
			return next, nil
		}
		next.Phase = PhaseShowingQuestion
		next.Cursor = 0
		next.PracticeStartedAt = ev.At
		next.QuestionStartedAt = ev.At

	case EventNext:
		if s.Total == 0 {
			return s, ErrNoQuestions
		}
		if s.Phase == PhaseIdle {
			return Apply(s, Event{Type: EventStart, At: ev.At})
		}
		next.Cursor = (s.Cursor + 1) % s.Total
		next.Phase = PhaseShowingQuestion
		next.QuestionStartedAt = ev.At
		if next.Cursor == 0 && len(s.Ratings) > 0 {
			entry := buildEntry(s.Ratings, s.Total, s.PracticeStartedAt, ev.At)
			next.Committed = &entry
			next.Ratings = map[int]int{}
			next.PracticeStartedAt = ev.At
		}

	case EventReveal:
		if s.Phase == PhaseIdle {
			return s, ErrNoQuestions
		}
		next.Phase = PhaseRevealed

	case EventRate:
		if s.Phase != PhaseRevealed {
			return s, ErrNotRevealed
		}
		if ev.Stars < 1 || ev.Stars > 5 {
			return s, ErrInvalidStars
		}
		next.Ratings[s.Cursor] = ev.Stars

	case EventTick:
		// clocks are derived from timestamps; nothing to advance

	case EventReset:
		return New(s.Total), nil

	default:
		return s, ErrUnknownEvent
	}

	return next, nil
}

// QuestionElapsed is the stopwatch reading for the current question, whole seconds.
func (s State) QuestionElapsed(now time.Time) time.Duration {
	if s.Phase == PhaseIdle || s.QuestionStartedAt.IsZero() {
		return 0
	}
	d := now.Sub(s.QuestionStartedAt)
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}

// Band classifies an answer duration: up to 90s nominal, up to 120s warning, then over time.
func Band(elapsed time.Duration) TimerBand {
	switch {
	case elapsed <= NominalLimit:
		return TimerNominal
	case elapsed <= WarningLimit:
		return TimerWarning
	default:
		return TimerOverTime
	}
}

func (s State) clone() State {
	c := s
	c.Ratings = make(map[int]int, len(s.Ratings))
	for k, v := range s.Ratings {
		c.Ratings[k] = v
	}
	return c
}
