package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-tool-be/internal/entity"
)

func sampleSession() *entity.Session {
	s := entity.NewEmptySession(entity.SessionTypePitch)
	s.Id = "a1b2c3d4"
	s.Title = "Seed round"
	s.Tips = []string{"Breathe"}
	s.TalkingPoints = []entity.TalkingPoint{{Label: "Problem", Number: "#1"}}
	return s
}

func TestParseCardItems(t *testing.T) {
	items := ParseCardItems("Budget | $2M\nTeam\n\n  A | B | C  \n   ")

	assert.Equal(t, []entity.CardItem{
		{Label: "Budget", Value: "$2M"},
		{Label: "Team", Value: ""},
		{Label: "A", Value: "B"},
	}, items)
}

func TestParseKeyPoints(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"blank lines dropped", "one\n\n  \ntwo", []string{"one", "two"}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeyPoints(tt.in))
		})
	}
}

func TestFormatCardItemsRoundTrip(t *testing.T) {
	items := []entity.CardItem{{Label: "Budget", Value: "$2M"}, {Label: "Team", Value: ""}}
	assert.Equal(t, items, ParseCardItems(FormatCardItems(items)))
}

func TestAddUsesDefaults(t *testing.T) {
	d := Open(sampleSession())

	require.NoError(t, d.Add(CollectionTalkingPoints))
	require.NoError(t, d.Add(CollectionCheatsheetCards))
	require.NoError(t, d.Add(CollectionPracticeQuestions))
	require.NoError(t, d.Add(CollectionTips))

	assert.Equal(t, "#2", d.TalkingPoints[1].Number)
	assert.Equal(t, DefaultCardIcon, d.CheatsheetCards[0].Icon)
	assert.Equal(t, []string{}, d.PracticeQuestions[0].Points)
	assert.Equal(t, []string{"Breathe", ""}, d.Tips)
	assert.True(t, d.Dirty[CollectionTalkingPoints])

	assert.ErrorIs(t, d.Add("widgets"), ErrUnknownCollection)
	assert.ErrorIs(t, d.Add(CollectionPitchVariants), ErrNotAddable)
}

func TestRemoveOutOfRangeIsNoop(t *testing.T) {
	d := Open(sampleSession())

	for _, idx := range []int{-1, 1, 5} {
		err := d.Remove(CollectionTalkingPoints, idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Len(t, d.TalkingPoints, 1)
	assert.False(t, d.IsDirty())

	require.NoError(t, d.Remove(CollectionTalkingPoints, 0))
	assert.Empty(t, d.TalkingPoints)
}

func TestRemoveShiftsIndices(t *testing.T) {
	s := sampleSession()
	s.StatsBanner = []entity.Stat{{Value: "1", Label: "a"}, {Value: "2", Label: "b"}, {Value: "3", Label: "c"}}
	d := Open(s)

	require.NoError(t, d.Remove(CollectionStats, 1))
	assert.Equal(t, []entity.Stat{{Value: "1", Label: "a"}, {Value: "3", Label: "c"}}, d.StatsBanner)
}

func TestSaveBuildsSingleFieldPatch(t *testing.T) {
	s := sampleSession()
	d := Open(s)

	patch, err := d.Save(CollectionCheatsheetCards, []Row{
		{"icon": "💰", "title": "Money", "items": "Ask | $500k\nRunway | 18 months | ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cheatsheet_cards"}, patch.Fields())

	require.NoError(t, patch.Apply(s))
	assert.Equal(t, []entity.CheatsheetCard{{
		Icon:  "💰",
		Title: "Money",
		Items: []entity.CardItem{{Label: "Ask", Value: "$500k"}, {Label: "Runway", Value: "18 months"}},
	}}, s.CheatsheetCards)
	assert.Equal(t, "Seed round", s.Title)

	assert.True(t, d.Dirty[CollectionCheatsheetCards])
	d.MarkSaved(CollectionCheatsheetCards)
	assert.False(t, d.IsDirty())
}

func TestSaveDropsBlankTips(t *testing.T) {
	d := Open(sampleSession())

	patch, err := d.Save(CollectionTips, []Row{{"text": " Slow down "}, {"text": ""}, {"text": "   "}})
	require.NoError(t, err)

	var tips []string
	require.NoError(t, json.Unmarshal(patch["tips"], &tips))
	assert.Equal(t, []string{"Slow down"}, tips)
}

func TestSavePracticeQuestionsParsesPoints(t *testing.T) {
	d := Open(sampleSession())

	patch, err := d.Save(CollectionPracticeQuestions, []Row{{"q": "Why now?", "points": "Market shift\n\n<b>Timing</b>"}})
	require.NoError(t, err)

	var qs []entity.PracticeQuestion
	require.NoError(t, json.Unmarshal(patch["practice_questions"], &qs))
	assert.Equal(t, []entity.PracticeQuestion{{Q: "Why now?", Points: []string{"Market shift", "<b>Timing</b>"}}}, qs)
}

func TestSavePitchVariantsKeepsUnsubmittedScripts(t *testing.T) {
	s := sampleSession()
	s.PitchVariants.TwoMin = "long"
	d := Open(s)

	patch, err := d.Save(CollectionPitchVariants, []Row{{"30sec": "short"}})
	require.NoError(t, err)
	require.NoError(t, patch.Apply(s))

	assert.Equal(t, "short", s.PitchVariants.ThirtySec)
	assert.Equal(t, "long", s.PitchVariants.TwoMin)
}

func TestOpenDoesNotAliasSession(t *testing.T) {
	s := sampleSession()
	d := Open(s)
	d.TalkingPoints[0].Label = "changed"
	assert.Equal(t, "Problem", s.TalkingPoints[0].Label)
}

func TestCloneSharesNothing(t *testing.T) {
	d := Open(sampleSession())
	d.PracticeQuestions = []entity.PracticeQuestion{{Q: "Why now?", Points: []string{"timing"}}}
	require.NoError(t, d.Add(CollectionTips))

	c := d.Clone()
	require.NoError(t, d.Add(CollectionKeyMessages))
	d.Tips[0] = "changed"
	d.PracticeQuestions[0].Points[0] = "changed"

	assert.Equal(t, []string{"Breathe", ""}, c.Tips)
	assert.Equal(t, "timing", c.PracticeQuestions[0].Points[0])
	assert.Empty(t, c.KeyMessages)
	assert.Equal(t, map[Collection]bool{CollectionTips: true}, c.Dirty)
}
