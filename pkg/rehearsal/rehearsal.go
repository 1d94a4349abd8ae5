// Package rehearsal is the teleprompter stepper: slide navigation with a
// visited ratchet and an independent forward stopwatch.
package rehearsal

import (
	"errors"
	"time"
)

type EventType string

const (
	EventStart EventType = "start"
	EventGoTo  EventType = "goto"
	EventNext  EventType = "next"
	EventPrev  EventType = "prev"
	EventReset EventType = "reset"
	EventTick  EventType = "tick"
)

type Event struct {
	Type  EventType `json:"type"`
	Index int       `json:"index,omitempty"`
	At    time.Time `json:"-"`
}

var ErrUnknownEvent = errors.New("rehearsal: unknown event")

type State struct {
	Total     int    `json:"total"`
	Current   int    `json:"current"`
	Visited   []bool `json:"visited"`
	Completed bool   `json:"completed"`

	Running bool `json:"running"`
	// Accumulated holds whole seconds from stopped runs; StartedAt anchors the
	// current run while Running.
	Accumulated int       `json:"accumulated"`
	StartedAt   time.Time `json:"started_at"`
}

func New(total int) State {
	return State{Total: total, Visited: make([]bool, total)}
}

// Apply returns the state after ev. Out of bounds navigation is a no-op.
func Apply(s State, ev Event) (State, error) {
	next := s
	next.Visited = append(make([]bool, 0, len(s.Visited)), s.Visited...)

	switch ev.Type {
	case EventStart:
		if next.Total > 0 {
			next.startClock(ev.At)
			next.mark(next.Current)
		}
	case EventGoTo:
		next.goTo(ev.Index, ev.At)
	case EventNext:
		if next.Total == 0 {
			break
		}
		if next.Current >= next.Total-1 {
			next.mark(next.Current)
			next.Completed = true
			next.stopClock(ev.At)
			break
		}
		next.goTo(next.Current+1, ev.At)
	case EventPrev:
		if next.Current > 0 {
			next.goTo(next.Current-1, ev.At)
		}
	case EventReset:
		next = New(s.Total)
	case EventTick:
	default:
		return s, ErrUnknownEvent
	}
	return next, nil
}

func (s *State) goTo(i int, at time.Time) {
	if i < 0 || i >= s.Total {
		return
	}
	s.Current = i
	s.mark(i)
	if !s.Completed {
		s.startClock(at)
	}
}

// mark ratchets: every slide up to and including i counts as visited.
func (s *State) mark(i int) {
	for j := 0; j <= i && j < len(s.Visited); j++ {
		s.Visited[j] = true
	}
}

func (s *State) startClock(at time.Time) {
	if s.Running {
		return
	}
	s.Running = true
	s.StartedAt = at
}

func (s *State) stopClock(at time.Time) {
	if !s.Running {
		return
	}
	s.Accumulated = s.Elapsed(at)
	s.Running = false
}

// Elapsed is the stopwatch reading in whole seconds at now.
func (s State) Elapsed(now time.Time) int {
	if !s.Running {
		return s.Accumulated
	}
	d := int(now.Sub(s.StartedAt) / time.Second)
	if d < 0 {
		d = 0
	}
	return s.Accumulated + d
}

func (s State) VisitedCount() int {
	n := 0
	for _, v := range s.Visited {
		if v {
			n++
		}
	}
	return n
}
