package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardItemWireFormat(t *testing.T) {
	card := CheatsheetCard{Icon: "📋", Title: "Numbers", Items: []CardItem{{"Budget", "$2M"}, {"Single", ""}}}
	b, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"icon":"📋","title":"Numbers","items":[["Budget","$2M"],["Single",""]]}`, string(b))

	tests := []struct {
		name string
		in   string
		want CardItem
	}{
		{"pair", `["a","b"]`, CardItem{"a", "b"}},
		{"short array", `["a"]`, CardItem{"a", ""}},
		{"object", `{"label":"a","value":"b"}`, CardItem{"a", "b"}},
		{"string", `"a"`, CardItem{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CardItem
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCoercesMissingPoints(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"type":"interview","practice_questions":[{"q":"Why?"}],"tips":["a","  ",""]}`), &s))
	s.Normalize()

	assert.Equal(t, []string{}, s.PracticeQuestions[0].Points)
	assert.Equal(t, []string{"a"}, s.Tips)
	assert.NotNil(t, s.StatsBanner)
}

func TestEmptySessionTemplates(t *testing.T) {
	pitch := NewEmptySession(SessionTypePitch)
	require.NotNil(t, pitch.PitchVariants)
	assert.Equal(t, map[string]string{"30sec": "", "60sec": "", "2min": ""}, pitch.PitchVariants.Map())
	assert.Empty(t, pitch.KeyMessages)
	assert.NotNil(t, pitch.Objections)

	interview := NewEmptySession(SessionTypeInterview)
	assert.Nil(t, interview.PitchVariants)
	assert.Nil(t, interview.Slides)

	assert.NotNil(t, NewEmptySession(SessionTypePresentation).Slides)
}

func TestEmptyTemplateWireShape(t *testing.T) {
	tests := []struct {
		sessionType SessionType
		present     []string
		absent      []string
	}{
		{SessionTypePitch, []string{"key_messages", "objections", "pitch_variants"}, []string{"slides"}},
		{SessionTypePresentation, []string{"slides"}, []string{"key_messages", "objections", "pitch_variants"}},
		{SessionTypeInterview, nil, []string{"key_messages", "objections", "pitch_variants", "slides"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sessionType), func(t *testing.T) {
			b, err := json.Marshal(NewEmptySession(tt.sessionType))
			require.NoError(t, err)
			var doc map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(b, &doc))

			for _, k := range tt.present {
				assert.Contains(t, doc, k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, doc, k)
			}
			for _, k := range []string{"stats_banner", "talking_points", "practice_questions", "cheatsheet_cards", "tips"} {
				assert.Equal(t, "[]", string(doc[k]), k)
			}
			if tt.sessionType == SessionTypePitch {
				assert.Equal(t, "[]", string(doc["key_messages"]))
				assert.Equal(t, "[]", string(doc["objections"]))
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewEmptySession(SessionTypeInterview)
	s.PracticeQuestions = []PracticeQuestion{{Q: "q", Points: []string{"p"}}}
	c := s.Clone()
	c.PracticeQuestions[0].Points[0] = "changed"
	assert.Equal(t, "p", s.PracticeQuestions[0].Points[0])
}

func TestPatchApply(t *testing.T) {
	base := func() *Session {
		s := NewEmptySession(SessionTypeInterview)
		s.Id = "abc12345"
		s.Title = "Panel"
		s.Tips = []string{"one", "two"}
		return s
	}

	t.Run("replaces only the named field", func(t *testing.T) {
		s := base()
		err := SessionPatch{"tips": json.RawMessage(`["three"]`)}.Apply(s)
		require.NoError(t, err)
		assert.Equal(t, []string{"three"}, s.Tips)
		assert.Equal(t, "Panel", s.Title)
	})

	t.Run("round trips a sub-collection", func(t *testing.T) {
		s := base()
		stats := []Stat{{"42%", "growth"}, {"$1M", "raised"}}
		patch, err := NewSessionPatch("stats_banner", stats)
		require.NoError(t, err)
		require.NoError(t, patch.Apply(s))
		assert.Equal(t, stats, s.StatsBanner)
	})

	t.Run("rejects type change", func(t *testing.T) {
		s := base()
		err := SessionPatch{"type": json.RawMessage(`"pitch"`), "title": json.RawMessage(`"x"`)}.Apply(s)
		assert.ErrorIs(t, err, ErrImmutableField)
		assert.Equal(t, "Panel", s.Title)
	})

	t.Run("accepts unchanged type and id", func(t *testing.T) {
		s := base()
		err := SessionPatch{"type": json.RawMessage(`"interview"`), "id": json.RawMessage(`"abc12345"`)}.Apply(s)
		assert.NoError(t, err)
	})

	t.Run("skips unknown keys", func(t *testing.T) {
		s := base()
		patch := SessionPatch{"colour": json.RawMessage(`"red"`), "title": json.RawMessage(`"Final round"`), "created": json.RawMessage(`"x"`)}
		require.NoError(t, patch.Apply(s))
		assert.Equal(t, "Final round", s.Title)
		assert.Equal(t, []string{"colour"}, patch.UnknownFields())
	})

	t.Run("rejects empty", func(t *testing.T) {
		assert.ErrorIs(t, SessionPatch{}.Apply(base()), ErrEmptyPatch)
	})

	t.Run("coerces loose scalars to text", func(t *testing.T) {
		s := base()
		patch := SessionPatch{
			"stats_banner":     json.RawMessage(`[{"value":42,"label":"Clients"},{"value":true,"label":1.5}]`),
			"tips":             json.RawMessage(`["Slow down",7]`),
			"title":            json.RawMessage(`2026`),
			"cheatsheet_cards": json.RawMessage(`[{"icon":"📋","title":"Numbers","items":[["Budget",2000000]]}]`),
		}
		require.NoError(t, patch.Apply(s))
		assert.Equal(t, []Stat{{"42", "Clients"}, {"true", "1.5"}}, s.StatsBanner)
		assert.Equal(t, []string{"Slow down", "7"}, s.Tips)
		assert.Equal(t, "2026", s.Title)
		assert.Equal(t, []CardItem{{"Budget", "2000000"}}, s.CheatsheetCards[0].Items)
	})

	t.Run("coerces objection scalars on a pitch", func(t *testing.T) {
		s := NewEmptySession(SessionTypePitch)
		patch := SessionPatch{"objections": json.RawMessage(`[{"objection":"Price","response":99}]`)}
		require.NoError(t, patch.Apply(s))
		assert.Equal(t, []Objection{{"Price", "99"}}, s.Objections)
	})

	t.Run("bad json leaves session untouched", func(t *testing.T) {
		s := base()
		err := SessionPatch{"tips": json.RawMessage(`{"not":"a list"}`)}.Apply(s)
		assert.Error(t, err)
		assert.Equal(t, []string{"one", "two"}, s.Tips)
	})
}

func TestRenderSafeKeepsTrustedFragments(t *testing.T) {
	s := NewEmptySession(SessionTypePitch)
	s.Title = "Q&A <live>"
	s.TalkingPoints = []TalkingPoint{{Label: "<b>x</b>", Note: "<p>trusted</p>"}}
	s.PracticeQuestions = []PracticeQuestion{{Q: "1 < 2?", Points: []string{"<em>yes</em>"}}}
	s.CheatsheetCards = []CheatsheetCard{{Title: "A&B", Items: []CardItem{{Label: "<i>", Value: ""}}}}
	s.PitchVariants.ThirtySec = "<script>"

	safe := s.RenderSafe()

	assert.Equal(t, "Q&amp;A &lt;live&gt;", safe.Title)
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", safe.TalkingPoints[0].Label)
	assert.Equal(t, "<p>trusted</p>", safe.TalkingPoints[0].Note)
	assert.Equal(t, "1 &lt; 2?", safe.PracticeQuestions[0].Q)
	assert.Equal(t, []string{"<em>yes</em>"}, safe.PracticeQuestions[0].Points)
	assert.Equal(t, "A&amp;B", safe.CheatsheetCards[0].Title)
	assert.Equal(t, "&lt;i&gt;", safe.CheatsheetCards[0].Items[0].Label)
	assert.Equal(t, "&lt;script&gt;", safe.PitchVariants.ThirtySec)

	// source stays untouched
	assert.Equal(t, "Q&A <live>", s.Title)
	assert.Equal(t, "<script>", s.PitchVariants.ThirtySec)
}
