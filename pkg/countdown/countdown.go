// Package countdown is the pitch timer: three fixed variants, a pausable
// one-second countdown and a terminal TIME state at zero.
package countdown

import (
	"errors"
	"fmt"
	"time"
)

// Placeholder is shown when no script is authored for the selected variant.
const Placeholder = "No script written for this variant yet."

const TimeUp = "TIME"

// Variants maps the supported durations (seconds) to their script keys.
var Variants = map[int]string{
	30:  "30sec",
	60:  "60sec",
	120: "2min",
}

type EventType string

const (
	EventSelect EventType = "select"
	EventToggle EventType = "toggle"
	EventTick   EventType = "tick"
)

type Event struct {
	Type    EventType `json:"type"`
	Seconds int       `json:"seconds,omitempty"`
	At      time.Time `json:"-"`
}

var (
	ErrUnknownVariant = errors.New("countdown: unknown variant")
	ErrUnknownEvent   = errors.New("countdown: unknown event")
)

type Band string

const (
	BandNominal  Band = "nominal"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

// State is a pitch timer. Remaining is authoritative whenever Running is false;
// while running it is derived from RemainingAtResume and ResumedAt.
type State struct {
	Duration          int               `json:"duration"`
	Remaining         int               `json:"remaining"`
	RemainingAtResume int               `json:"remaining_at_resume"`
	ResumedAt         time.Time         `json:"resumed_at"`
	Running           bool              `json:"running"`
	Finished          bool              `json:"finished"`
	Script            string            `json:"script"`
	Scripts           map[string]string `json:"scripts"`
}

// New returns a stopped timer on the 60 second variant.
func New(scripts map[string]string) State {
	s := State{Scripts: scripts}
	s, _ = selectVariant(s, 60)
	return s
}

// Apply returns the state after ev.
func Apply(s State, ev Event) (State, error) {
	s = advance(s, ev.At)

	switch ev.Type {
	case EventSelect:
		return selectVariant(s, ev.Seconds)

	case EventToggle:
		if s.Finished {
			return s, nil
		}
		if s.Running {
			s.Running = false
			return s, nil
		}
		s.Running = true
		s.ResumedAt = ev.At
		s.RemainingAtResume = s.Remaining
		return s, nil

	case EventTick:
		return s, nil
	}

	return s, ErrUnknownEvent
}

func selectVariant(s State, seconds int) (State, error) {
	key, ok := Variants[seconds]
	if !ok {
		return s, fmt.Errorf("%w: %d seconds", ErrUnknownVariant, seconds)
	}
	s.Duration = seconds
	s.Remaining = seconds
	s.RemainingAtResume = seconds
	s.Running = false
	s.Finished = false
	s.Script = scriptFor(s.Scripts, key)
	return s, nil
}

// WithScripts swaps in a fresh set of scripts and re-reads the selected one.
// The clock is left alone.
func (s State) WithScripts(scripts map[string]string) State {
	s.Scripts = scripts
	s.Script = scriptFor(scripts, Variants[s.Duration])
	return s
}

func scriptFor(scripts map[string]string, key string) string {
	if script := scripts[key]; script != "" {
		return script
	}
	return Placeholder
}

// advance brings Remaining up to date at now, stopping at zero.
func advance(s State, now time.Time) State {
	if !s.Running {
		return s
	}
	elapsed := int(now.Sub(s.ResumedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	s.Remaining = s.RemainingAtResume - elapsed
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Running = false
		s.Finished = true
	}
	return s
}

// At returns the state as observed at now, without any transition.
func (s State) At(now time.Time) State {
	return advance(s, now)
}

// Display renders M:SS, or TIME once the countdown has run out.
func (s State) Display() string {
	if s.Finished {
		return TimeUp
	}
	return fmt.Sprintf("%d:%02d", s.Remaining/60, s.Remaining%60)
}

// Progress is the elapsed fraction, which drives the circular sweep.
func (s State) Progress() float64 {
	if s.Duration == 0 {
		return 0
	}
	return 1 - float64(s.Remaining)/float64(s.Duration)
}

// Band: more than half left is nominal, 20-50% warning, under 20% critical.
func (s State) Band() Band {
	if s.Duration == 0 {
		return BandNominal
	}
	frac := float64(s.Remaining) / float64(s.Duration)
	switch {
	case frac > 0.5:
		return BandNominal
	case frac >= 0.2:
		return BandWarning
	default:
		return BandCritical
	}
}
