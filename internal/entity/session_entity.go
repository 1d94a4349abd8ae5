package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type SessionType string

const (
	SessionTypeInterview    SessionType = "interview"
	SessionTypePresentation SessionType = "presentation"
	SessionTypePitch        SessionType = "pitch"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeInterview, SessionTypePresentation, SessionTypePitch:
		return true
	}
	return false
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type TalkingPoint struct {
	Id       string `json:"id"`
	Label    string `json:"label"`
	Number   string `json:"number"`
	Timing   string `json:"timing"`
	Question string `json:"question"`
	Note     string `json:"note"` // trusted HTML
	TipDo    string `json:"tip_do"`
	TipDont  string `json:"tip_dont"`
	Source   string `json:"source"`
}

type PracticeQuestion struct {
	Q      string   `json:"q"`
	Points []string `json:"points"` // trusted HTML fragments
}

// CardItem is a (label, value) pair. An empty Value renders as a single column.
// On the wire it is a two element array, matching documents written by older clients.
type CardItem struct {
	Label string
	Value string
}

func (c CardItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Label, c.Value})
}

func (c *CardItem) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		*c = CardItem{}
		if len(pair) > 0 {
			c.Label = pair[0]
		}
		if len(pair) > 1 {
			c.Value = pair[1]
		}
		return nil
	}

	var obj struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*c = CardItem{Label: obj.Label, Value: obj.Value}
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = CardItem{Label: single}
		return nil
	}

	return fmt.Errorf("card item: unsupported json %s", string(data))
}

type CheatsheetCard struct {
	Icon  string     `json:"icon"`
	Title string     `json:"title"`
	Items []CardItem `json:"items"`
}

type Objection struct {
	Objection string `json:"objection"`
	Response  string `json:"response"`
}

const (
	PitchVariant30Sec = "30sec"
	PitchVariant60Sec = "60sec"
	PitchVariant2Min  = "2min"
)

type PitchVariants struct {
	ThirtySec string `json:"30sec"`
	SixtySec  string `json:"60sec"`
	TwoMin    string `json:"2min"`
}

// Script returns the script stored under one of the PitchVariant* keys.
func (p *PitchVariants) Script(key string) string {
	if p == nil {
		return ""
	}
	switch key {
	case PitchVariant30Sec:
		return p.ThirtySec
	case PitchVariant60Sec:
		return p.SixtySec
	case PitchVariant2Min:
		return p.TwoMin
	}
	return ""
}

func (p *PitchVariants) Map() map[string]string {
	return map[string]string{
		PitchVariant30Sec: p.Script(PitchVariant30Sec),
		PitchVariant60Sec: p.Script(PitchVariant60Sec),
		PitchVariant2Min:  p.Script(PitchVariant2Min),
	}
}

type Slide struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Session is the prep document for one interview, presentation or pitch.
type Session struct {
	Id       string      `json:"id"`
	Type     SessionType `json:"type"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Date     string      `json:"date"`
	Format   string      `json:"format"`

	StatsBanner       []Stat             `json:"stats_banner"`
	TalkingPoints     []TalkingPoint     `json:"talking_points"`
	PracticeQuestions []PracticeQuestion `json:"practice_questions"`
	CheatsheetCards   []CheatsheetCard   `json:"cheatsheet_cards"`
	Tips              []string           `json:"tips"`

	// Pitch only.
	PitchVariants *PitchVariants `json:"pitch_variants,omitempty"`
	KeyMessages   []string       `json:"key_messages,omitempty"`
	Objections    []Objection    `json:"objections,omitempty"`

	// Presentation only.
	Slides []Slide `json:"slides,omitempty"`

	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// MarshalJSON writes the pitch and presentation sequences whenever the type
// carries them, so an empty pitch still shows key_messages: [].
func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	out := struct {
		plain
		KeyMessages *[]string    `json:"key_messages,omitempty"`
		Objections  *[]Objection `json:"objections,omitempty"`
		Slides      *[]Slide     `json:"slides,omitempty"`
	}{plain: plain(s)}

	if s.Type == SessionTypePitch || s.KeyMessages != nil {
		km := nonNilSlice(s.KeyMessages)
		out.KeyMessages = &km
	}
	if s.Type == SessionTypePitch || s.Objections != nil {
		obj := nonNilSlice(s.Objections)
		out.Objections = &obj
	}
	if s.Type == SessionTypePresentation || s.Slides != nil {
		slides := nonNilSlice(s.Slides)
		out.Slides = &slides
	}
	return json.Marshal(out)
}

func nonNilSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// NewEmptySession returns the blank template for a session type.
func NewEmptySession(sessionType SessionType) *Session {
	s := &Session{
		Type:              sessionType,
		StatsBanner:       []Stat{},
		TalkingPoints:     []TalkingPoint{},
		PracticeQuestions: []PracticeQuestion{},
		CheatsheetCards:   []CheatsheetCard{},
		Tips:              []string{},
	}
	switch sessionType {
	case SessionTypePitch:
		s.PitchVariants = &PitchVariants{}
		s.KeyMessages = []string{}
		s.Objections = []Objection{}
	case SessionTypePresentation:
		s.Slides = []Slide{}
	}
	return s
}

// Normalize coerces loosely typed input: nil sequences become empty,
// questions without points get an empty list and blank tips are dropped.
func (s *Session) Normalize() {
	if s.StatsBanner == nil {
		s.StatsBanner = []Stat{}
	}
	if s.TalkingPoints == nil {
		s.TalkingPoints = []TalkingPoint{}
	}
	if s.PracticeQuestions == nil {
		s.PracticeQuestions = []PracticeQuestion{}
	}
	for i := range s.PracticeQuestions {
		if s.PracticeQuestions[i].Points == nil {
			s.PracticeQuestions[i].Points = []string{}
		}
	}
	if s.CheatsheetCards == nil {
		s.CheatsheetCards = []CheatsheetCard{}
	}
	for i := range s.CheatsheetCards {
		if s.CheatsheetCards[i].Items == nil {
			s.CheatsheetCards[i].Items = []CardItem{}
		}
	}
	s.Tips = DropBlank(s.Tips)

	if s.Type == SessionTypePitch {
		if s.PitchVariants == nil {
			s.PitchVariants = &PitchVariants{}
		}
		if s.KeyMessages == nil {
			s.KeyMessages = []string{}
		}
		if s.Objections == nil {
			s.Objections = []Objection{}
		}
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.StatsBanner = cloneSlice(s.StatsBanner)
	c.TalkingPoints = cloneSlice(s.TalkingPoints)
	c.PracticeQuestions = cloneSlice(s.PracticeQuestions)
	for i := range c.PracticeQuestions {
		c.PracticeQuestions[i].Points = cloneSlice(c.PracticeQuestions[i].Points)
	}
	c.CheatsheetCards = cloneSlice(s.CheatsheetCards)
	for i := range c.CheatsheetCards {
		c.CheatsheetCards[i].Items = cloneSlice(c.CheatsheetCards[i].Items)
	}
	c.Tips = cloneSlice(s.Tips)
	if s.PitchVariants != nil {
		pv := *s.PitchVariants
		c.PitchVariants = &pv
	}
	c.KeyMessages = cloneSlice(s.KeyMessages)
	c.Objections = cloneSlice(s.Objections)
	c.Slides = cloneSlice(s.Slides)
	return &c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// DropBlank returns the trimmed non-blank entries, in order.
func DropBlank(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if t := strings.TrimSpace(e); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SessionTypeInfo drives how a type is presented in listings.
type SessionTypeInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var SessionTypes = map[SessionType]SessionTypeInfo{
	SessionTypeInterview:    {Label: "Interview", Icon: "fa-microphone", Color: "#003A63"},
	SessionTypePresentation: {Label: "Presentation", Icon: "fa-chalkboard-user", Color: "#E87722"},
	SessionTypePitch:        {Label: "Pitch", Icon: "fa-rocket", Color: "#F2A900"},
}
