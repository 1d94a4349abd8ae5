package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var (
	ErrEmptyPatch     = errors.New("patch carries no fields")
	ErrImmutableField = errors.New("field cannot be changed")
)

// PatchableFields are the top-level keys Apply stores.
var PatchableFields = []string{
	"title", "subtitle", "date", "format",
	"stats_banner", "talking_points", "practice_questions", "cheatsheet_cards", "tips",
	"pitch_variants", "key_messages", "objections", "slides",
}

// SessionPatch is a partial document: each top-level key present replaces that
// field wholesale. Nested sequences are never merged.
type SessionPatch map[string]json.RawMessage

// NewSessionPatch builds a single-field patch.
func NewSessionPatch(field string, value any) (SessionPatch, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return SessionPatch{field: raw}, nil
}

func (p SessionPatch) Fields() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	return out
}

// UnknownFields lists the keys Apply skips, sorted.
func (p SessionPatch) UnknownFields() []string {
	var out []string
	scratch := &Session{}
	for k := range p {
		if _, known := fieldSlot(scratch, k); !known {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Apply replaces the patched fields on s. Unknown keys are skipped and number
// or bool scalars are stored as their text. s is left untouched on error.
func (p SessionPatch) Apply(s *Session) error {
	if len(p) == 0 {
		return ErrEmptyPatch
	}

	next := s.Clone()
	for field, raw := range p {
		target, err := next.fieldFor(field, raw)
		if err != nil {
			return err
		}
		if target == nil {
			continue
		}
		loose, err := coerceScalars(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		if err := json.Unmarshal(loose, target); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
	}
	next.Normalize()
	*s = *next
	return nil
}

// fieldFor returns the destination for a patched field, or nil when the value
// is accepted but not stored.
func (s *Session) fieldFor(field string, raw json.RawMessage) (any, error) {
	switch field {
	case "id":
		var id string
		if err := json.Unmarshal(raw, &id); err != nil || id != s.Id {
			return nil, fmt.Errorf("%w: id", ErrImmutableField)
		}
		return nil, nil
	case "type":
		var t SessionType
		if err := json.Unmarshal(raw, &t); err != nil || t != s.Type {
			return nil, fmt.Errorf("%w: type", ErrImmutableField)
		}
		return nil, nil
	}
	target, _ := fieldSlot(s, field)
	return target, nil
}

// fieldSlot resets a stored field and returns a pointer to decode into.
// known is false for keys the document does not carry.
func fieldSlot(s *Session, field string) (target any, known bool) {
	switch field {
	case "id", "type", "created", "modified":
		return nil, true
	case "title":
		return &s.Title, true
	case "subtitle":
		return &s.Subtitle, true
	case "date":
		return &s.Date, true
	case "format":
		return &s.Format, true
	case "stats_banner":
		s.StatsBanner = nil
		return &s.StatsBanner, true
	case "talking_points":
		s.TalkingPoints = nil
		return &s.TalkingPoints, true
	case "practice_questions":
		s.PracticeQuestions = nil
		return &s.PracticeQuestions, true
	case "cheatsheet_cards":
		s.CheatsheetCards = nil
		return &s.CheatsheetCards, true
	case "tips":
		s.Tips = nil
		return &s.Tips, true
	case "pitch_variants":
		s.PitchVariants = nil
		return &s.PitchVariants, true
	case "key_messages":
		s.KeyMessages = nil
		return &s.KeyMessages, true
	case "objections":
		s.Objections = nil
		return &s.Objections, true
	case "slides":
		s.Slides = nil
		return &s.Slides, true
	}
	return nil, false
}

// coerceScalars rewrites every number and bool in raw as a JSON string. All
// leaves of a session document are text.
func coerceScalars(raw json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(stringifyScalars(v))
}

func stringifyScalars(v any) any {
	switch x := v.(type) {
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		for i := range x {
			x[i] = stringifyScalars(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = stringifyScalars(x[k])
		}
		return x
	}
	return v
}