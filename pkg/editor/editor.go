// Package editor keeps an in-memory working copy of a session's
// sub-collections. Add and Remove only touch the draft; Save turns the submitted
// form into a single-field patch for the session store.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"prep-tool-be/internal/entity"
)

type Collection string

const (
	CollectionStats             Collection = "stats_banner"
	CollectionTalkingPoints     Collection = "talking_points"
	CollectionPracticeQuestions Collection = "practice_questions"
	CollectionCheatsheetCards   Collection = "cheatsheet_cards"
	CollectionTips              Collection = "tips"
	CollectionKeyMessages       Collection = "key_messages"
	CollectionObjections        Collection = "objections"
	CollectionSlides            Collection = "slides"
	CollectionPitchVariants     Collection = "pitch_variants"
)

var (
	ErrUnknownCollection = errors.New("editor: unknown collection")
	ErrIndexOutOfRange   = errors.New("editor: index out of range")
	ErrNotAddable        = errors.New("editor: collection has a fixed shape")
)

const DefaultCardIcon = "📋"

// Row is one submitted form row, keyed by input name.
type Row map[string]string

// Draft is the editor's working copy. Index positions are the only identity a
// row has, so removing shifts everything after it.
type Draft struct {
	SessionId string             `json:"session_id"`
	Type      entity.SessionType `json:"type"`

	StatsBanner       []entity.Stat             `json:"stats_banner"`
	TalkingPoints     []entity.TalkingPoint     `json:"talking_points"`
	PracticeQuestions []entity.PracticeQuestion `json:"practice_questions"`
	CheatsheetCards   []entity.CheatsheetCard   `json:"cheatsheet_cards"`
	Tips              []string                  `json:"tips"`
	KeyMessages       []string                  `json:"key_messages"`
	Objections        []entity.Objection        `json:"objections"`
	Slides            []entity.Slide            `json:"slides"`
	PitchVariants     entity.PitchVariants      `json:"pitch_variants"`

	Dirty map[Collection]bool `json:"dirty"`
}

// Open copies the editable collections out of a session.
func Open(s *entity.Session) *Draft {
	c := s.Clone()
	c.Normalize()
	d := &Draft{
		SessionId:         c.Id,
		Type:              c.Type,
		StatsBanner:       c.StatsBanner,
		TalkingPoints:     c.TalkingPoints,
		PracticeQuestions: c.PracticeQuestions,
		CheatsheetCards:   c.CheatsheetCards,
		Tips:              c.Tips,
		KeyMessages:       nonNil(c.KeyMessages),
		Objections:        nonNil(c.Objections),
		Slides:            nonNil(c.Slides),
		Dirty:             map[Collection]bool{},
	}
	if c.PitchVariants != nil {
		d.PitchVariants = *c.PitchVariants
	}
	return d
}

// Clone returns a deep copy that shares nothing with d.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	c := *d
	c.StatsBanner = cloneSlice(d.StatsBanner)
	c.TalkingPoints = cloneSlice(d.TalkingPoints)
	c.PracticeQuestions = cloneSlice(d.PracticeQuestions)
	for i := range c.PracticeQuestions {
		c.PracticeQuestions[i].Points = cloneSlice(c.PracticeQuestions[i].Points)
	}
	c.CheatsheetCards = cloneSlice(d.CheatsheetCards)
	for i := range c.CheatsheetCards {
		c.CheatsheetCards[i].Items = cloneSlice(c.CheatsheetCards[i].Items)
	}
	c.Tips = cloneSlice(d.Tips)
	c.KeyMessages = cloneSlice(d.KeyMessages)
	c.Objections = cloneSlice(d.Objections)
	c.Slides = cloneSlice(d.Slides)
	c.Dirty = make(map[Collection]bool, len(d.Dirty))
	for k, v := range d.Dirty {
		c.Dirty[k] = v
	}
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

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Add appends one element with default values.
func (d *Draft) Add(c Collection) error {
	switch c {
	case CollectionStats:
		d.StatsBanner = append(d.StatsBanner, entity.Stat{})
	case CollectionTalkingPoints:
		d.TalkingPoints = append(d.TalkingPoints, entity.TalkingPoint{
			Number: fmt.Sprintf("#%d", len(d.TalkingPoints)+1),
		})
	case CollectionPracticeQuestions:
		d.PracticeQuestions = append(d.PracticeQuestions, entity.PracticeQuestion{Points: []string{}})
	case CollectionCheatsheetCards:
		d.CheatsheetCards = append(d.CheatsheetCards, entity.CheatsheetCard{Icon: DefaultCardIcon, Items: []entity.CardItem{}})
	case CollectionTips:
		d.Tips = append(d.Tips, "")
	case CollectionKeyMessages:
		d.KeyMessages = append(d.KeyMessages, "")
	case CollectionObjections:
		d.Objections = append(d.Objections, entity.Objection{})
	case CollectionSlides:
		d.Slides = append(d.Slides, entity.Slide{})
	case CollectionPitchVariants:
		return ErrNotAddable
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCollection, c)
	}
	d.Dirty[c] = true
	return nil
}

// Remove deletes the element at index. An index outside the collection leaves
// the draft unchanged and reports ErrIndexOutOfRange.
func (d *Draft) Remove(c Collection, index int) error {
	var err error
	switch c {
	case CollectionStats:
		d.StatsBanner, err = removeAt(d.StatsBanner, index)
	case CollectionTalkingPoints:
		d.TalkingPoints, err = removeAt(d.TalkingPoints, index)
	case CollectionPracticeQuestions:
		d.PracticeQuestions, err = removeAt(d.PracticeQuestions, index)
	case CollectionCheatsheetCards:
		d.CheatsheetCards, err = removeAt(d.CheatsheetCards, index)
	case CollectionTips:
		d.Tips, err = removeAt(d.Tips, index)
	case CollectionKeyMessages:
		d.KeyMessages, err = removeAt(d.KeyMessages, index)
	case CollectionObjections:
		d.Objections, err = removeAt(d.Objections, index)
	case CollectionSlides:
		d.Slides, err = removeAt(d.Slides, index)
	case CollectionPitchVariants:
		return ErrNotAddable
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCollection, c)
	}
	if err != nil {
		return err
	}
	d.Dirty[c] = true
	return nil
}

func removeAt[T any](in []T, index int) ([]T, error) {
	if index < 0 || index >= len(in) {
		return in, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(in))
	}
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:index]...)
	return append(out, in[index+1:]...), nil
}

// Save rebuilds the collection from the submitted rows (a full replace) and
// returns the patch that persists it. The draft keeps the rebuilt collection
// and stays dirty until MarkSaved.
func (d *Draft) Save(c Collection, rows []Row) (entity.SessionPatch, error) {
	var value any
	switch c {
	case CollectionStats:
		out := make([]entity.Stat, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.Stat{Value: field(r, "value"), Label: field(r, "label")})
		}
		d.StatsBanner, value = out, out

	case CollectionTalkingPoints:
		out := make([]entity.TalkingPoint, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.TalkingPoint{
				Id:       field(r, "id"),
				Label:    field(r, "label"),
				Number:   field(r, "number"),
				Timing:   field(r, "timing"),
				Question: field(r, "question"),
				Note:     r["note"],
				TipDo:    field(r, "tip_do"),
				TipDont:  field(r, "tip_dont"),
				Source:   field(r, "source"),
			})
		}
		d.TalkingPoints, value = out, out

	case CollectionPracticeQuestions:
		out := make([]entity.PracticeQuestion, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.PracticeQuestion{Q: field(r, "q"), Points: ParseKeyPoints(r["points"])})
		}
		d.PracticeQuestions, value = out, out

	case CollectionCheatsheetCards:
		out := make([]entity.CheatsheetCard, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.CheatsheetCard{
				Icon:  field(r, "icon"),
				Title: field(r, "title"),
				Items: ParseCardItems(r["items"]),
			})
		}
		d.CheatsheetCards, value = out, out

	case CollectionTips:
		d.Tips = textRows(rows)
		value = d.Tips

	case CollectionKeyMessages:
		d.KeyMessages = textRows(rows)
		value = d.KeyMessages

	case CollectionObjections:
		out := make([]entity.Objection, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.Objection{Objection: field(r, "objection"), Response: field(r, "response")})
		}
		d.Objections, value = out, out

	case CollectionSlides:
		out := make([]entity.Slide, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.Slide{Title: field(r, "title"), Body: r["body"]})
		}
		d.Slides, value = out, out

	case CollectionPitchVariants:
		pv := d.PitchVariants
		for _, r := range rows {
			for key, script := range r {
				switch key {
				case entity.PitchVariant30Sec:
					pv.ThirtySec = script
				case entity.PitchVariant60Sec:
					pv.SixtySec = script
				case entity.PitchVariant2Min:
					pv.TwoMin = script
				}
			}
		}
		d.PitchVariants = pv
		value = &pv

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, c)
	}

	d.Dirty[c] = true
	return entity.NewSessionPatch(string(c), value)
}

func (d *Draft) MarkSaved(c Collection) {
	delete(d.Dirty, c)
}

func (d *Draft) IsDirty() bool {
	return len(d.Dirty) > 0
}

func field(r Row, name string) string {
	return strings.TrimSpace(r[name])
}

// textRows reads the "text" input of each row, dropping blank rows.
func textRows(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["text"])
	}
	return entity.DropBlank(out)
}
