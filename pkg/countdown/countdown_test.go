package countdown

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

func apply(t *testing.T, s State, ev Event) State {
	t.Helper()
	next, err := Apply(s, ev)
	require.NoError(t, err)
	return next
}

func TestThirtySecondRunEndsInTime(t *testing.T) {
	s := New(map[string]string{"30sec": "Short pitch"})
	s = apply(t, s, Event{Type: EventSelect, Seconds: 30, At: at(0)})
	assert.Equal(t, "Short pitch", s.Script)
	assert.Equal(t, "0:30", s.Display())

	s = apply(t, s, Event{Type: EventToggle, At: at(0)})
	s = apply(t, s, Event{Type: EventTick, At: at(29)})
	assert.Equal(t, 1, s.Remaining)
	assert.True(t, s.Running)

	s = apply(t, s, Event{Type: EventTick, At: at(30)})
	assert.Equal(t, 0, s.Remaining)
	assert.False(t, s.Running)
	assert.True(t, s.Finished)
	assert.Equal(t, TimeUp, s.Display())

	// no negative time, no auto restart
	s = apply(t, s, Event{Type: EventTick, At: at(90)})
	assert.Equal(t, 0, s.Remaining)
	s = apply(t, s, Event{Type: EventToggle, At: at(91)})
	assert.False(t, s.Running)
	assert.Equal(t, TimeUp, s.Display())
}

func TestLateObservationClampsAtZero(t *testing.T) {
	s := apply(t, New(nil), Event{Type: EventSelect, Seconds: 30, At: at(0)})
	s = apply(t, s, Event{Type: EventToggle, At: at(0)})

	view := s.At(at(500))
	assert.Equal(t, 0, view.Remaining)
	assert.True(t, view.Finished)
}

func TestTogglePausesAndResumes(t *testing.T) {
	s := apply(t, New(nil), Event{Type: EventSelect, Seconds: 60, At: at(0)})
	s = apply(t, s, Event{Type: EventToggle, At: at(0)})
	s = apply(t, s, Event{Type: EventToggle, At: at(10)})
	assert.Equal(t, 50, s.Remaining)
	assert.False(t, s.Running)

	// paused time does not count
	s = apply(t, s, Event{Type: EventToggle, At: at(100)})
	s = apply(t, s, Event{Type: EventTick, At: at(105)})
	assert.Equal(t, 45, s.Remaining)
}

func TestSelectResetsAndSwapsScript(t *testing.T) {
	s := New(map[string]string{"2min": "Long form"})
	s = apply(t, s, Event{Type: EventToggle, At: at(0)})
	s = apply(t, s, Event{Type: EventSelect, Seconds: 120, At: at(20)})

	assert.Equal(t, 120, s.Remaining)
	assert.False(t, s.Running)
	assert.Equal(t, "Long form", s.Script)

	s = apply(t, s, Event{Type: EventSelect, Seconds: 30, At: at(21)})
	assert.Equal(t, Placeholder, s.Script)

	_, err := Apply(s, Event{Type: EventSelect, Seconds: 45})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestWithScriptsKeepsClock(t *testing.T) {
	s := New(map[string]string{"60sec": "old"})
	s = apply(t, s, Event{Type: EventToggle, At: at(0)})
	s = apply(t, s, Event{Type: EventTick, At: at(12)})

	s = s.WithScripts(map[string]string{"60sec": "new", "30sec": "short"})
	assert.Equal(t, "new", s.Script)
	assert.Equal(t, 60, s.Duration)
	assert.True(t, s.Running)
	assert.Equal(t, 48, apply(t, s, Event{Type: EventTick, At: at(12)}).Remaining)

	s = s.WithScripts(map[string]string{})
	assert.Equal(t, Placeholder, s.Script)
}

func TestBandAndProgress(t *testing.T) {
	tests := []struct {
		remaining int
		band      Band
	}{
		{100, BandNominal},
		{51, BandNominal},
		{50, BandWarning},
		{20, BandWarning},
		{19, BandCritical},
		{0, BandCritical},
	}
	for _, tt := range tests {
		s := State{Duration: 100, Remaining: tt.remaining}
		assert.Equal(t, tt.band, s.Band(), "remaining %d", tt.remaining)
	}

	s := State{Duration: 60, Remaining: 15}
	assert.InDelta(t, 0.75, s.Progress(), 1e-9)
}

func TestDisplayFormat(t *testing.T) {
	assert.Equal(t, "2:00", State{Duration: 120, Remaining: 120}.Display())
	assert.Equal(t, "1:05", State{Duration: 120, Remaining: 65}.Display())
}
