package dto

import (
	"prep-tool-be/internal/entity"
	"prep-tool-be/pkg/countdown"
	"prep-tool-be/pkg/practice"
)

type RuntimePanel string

const (
	PanelPractice  RuntimePanel = "practice"
	PanelRehearsal RuntimePanel = "rehearsal"
	PanelPitch     RuntimePanel = "pitch"
)

func (p RuntimePanel) Valid() bool {
	switch p {
	case PanelPractice, PanelRehearsal, PanelPitch:
		return true
	}
	return false
}

// RuntimeEventRequest is shared by the REST and websocket channels.
// Only the fields relevant to Type are read.
type RuntimeEventRequest struct {
	Type    string `json:"type" validate:"required"`
	Stars   int    `json:"stars,omitempty"`
	Index   int    `json:"index,omitempty"`
	Seconds int    `json:"seconds,omitempty"`
}

type RuntimeStateResponse struct {
	SessionId string       `json:"session_id"`
	Panel     RuntimePanel `json:"panel"`

	Practice  *PracticeView  `json:"practice,omitempty"`
	Rehearsal *RehearsalView `json:"rehearsal,omitempty"`
	Pitch     *PitchView     `json:"pitch,omitempty"`
}

type PracticeView struct {
	Phase          practice.Phase         `json:"phase"`
	Cursor         int                    `json:"cursor"`
	Total          int                    `json:"total"`
	Question       string                 `json:"question,omitempty"`
	Points         []string               `json:"points,omitempty"`
	Rating         int                    `json:"rating"`
	RatedCount     int                    `json:"rated_count"`
	ElapsedSeconds int                    `json:"elapsed_seconds"`
	TimerBand      practice.TimerBand     `json:"timer_band"`
	Committed      *practice.HistoryEntry `json:"committed,omitempty"`
}

type RehearsalView struct {
	Current        int           `json:"current"`
	Total          int           `json:"total"`
	Visited        []bool        `json:"visited"`
	VisitedCount   int           `json:"visited_count"`
	Completed      bool          `json:"completed"`
	Running        bool          `json:"running"`
	ElapsedSeconds int           `json:"elapsed_seconds"`
	Slide          *entity.Slide `json:"slide,omitempty"`
}

type PitchView struct {
	Duration  int            `json:"duration"`
	Remaining int            `json:"remaining"`
	Display   string         `json:"display"`
	Band      countdown.Band `json:"band"`
	Progress  float64        `json:"progress"`
	Running   bool           `json:"running"`
	Finished  bool           `json:"finished"`
	Script    string         `json:"script"`
}
