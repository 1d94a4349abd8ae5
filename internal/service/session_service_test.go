package service

import (
	"context"
	"errors"
	"testing"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/pkg/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_CreateAndGet(t *testing.T) {
	svc, pub := newTestSessionService(t)
	ctx := context.Background()

	t.Run("blank title falls back to default", func(t *testing.T) {
		s := createSession(t, svc, entity.SessionTypeInterview, "   ")
		assert.Equal(t, DefaultSessionTitle, s.Title)
		assert.Len(t, s.Id, 8)
		assert.False(t, s.Created.IsZero())
	})

	t.Run("pitch template carries pitch fields", func(t *testing.T) {
		s := createSession(t, svc, entity.SessionTypePitch, "Demo day")

		got, err := svc.Get(ctx, s.Id)
		require.NoError(t, err)
		assert.Equal(t, "Demo day", got.Title)
		require.NotNil(t, got.PitchVariants)
		assert.Equal(t, entity.PitchVariants{}, *got.PitchVariants)
		assert.NotNil(t, got.KeyMessages)
		assert.NotNil(t, got.Objections)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, "deadbeef")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	assert.Contains(t, pub.types(), EventSessionCreated)
}

func TestSessionService_Update(t *testing.T) {
	svc, pub := newTestSessionService(t)
	ctx := context.Background()
	s := createSession(t, svc, entity.SessionTypeInterview, "Panel")

	t.Run("replaces only the given field", func(t *testing.T) {
		tips := mustPatch(t, "tips", []string{"Breathe", "  ", "Smile"})
		got, err := svc.Update(ctx, s.Id, tips)
		require.NoError(t, err)
		assert.Equal(t, []string{"Breathe", "Smile"}, got.Tips)
		assert.Equal(t, "Panel", got.Title)
		assert.False(t, got.Modified.Before(s.Modified))

		stored, err := svc.Get(ctx, s.Id)
		require.NoError(t, err)
		assert.Equal(t, []string{"Breathe", "Smile"}, stored.Tips)
	})

	t.Run("type change is rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, s.Id, mustPatch(t, "type", "pitch"))
		assert.True(t, errors.Is(err, apperror.ErrValidation))

		stored, err := svc.Get(ctx, s.Id)
		require.NoError(t, err)
		assert.Equal(t, entity.SessionTypeInterview, stored.Type)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, s.Id, entity.SessionPatch{})
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := svc.Update(ctx, "00000000", mustPatch(t, "title", "x"))
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	assert.Contains(t, pub.types(), EventSessionUpdated)
}

func TestSessionService_ListDeleteDuplicate(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	a := createSession(t, svc, entity.SessionTypeInterview, "Alpha interview")
	b := createSession(t, svc, entity.SessionTypePitch, "Beta pitch")

	// touching a makes it the most recent
	_, err := svc.Update(ctx, a.Id, mustPatch(t, "subtitle", "round two"))
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.Id, all[0].Id)
	assert.Equal(t, "Interview", all[0].TypeLabel)

	pitches, err := svc.List(ctx, &dto.ListSessionsQuery{Type: "pitch"})
	require.NoError(t, err)
	require.Len(t, pitches, 1)
	assert.Equal(t, b.Id, pitches[0].Id)

	found, err := svc.List(ctx, &dto.ListSessionsQuery{Search: "ALPHA"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	dup, err := svc.Duplicate(ctx, b.Id)
	require.NoError(t, err)
	assert.NotEqual(t, b.Id, dup.Id)
	assert.Equal(t, "Beta pitch (Copy)", dup.Title)

	require.NoError(t, svc.Delete(ctx, a.Id))
	_, err = svc.Get(ctx, a.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	all, err = svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.True(t, errors.Is(svc.Delete(ctx, a.Id), apperror.ErrNotFound))
}

func TestSessionService_ItemOperations(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()
	s := createSession(t, svc, entity.SessionTypePresentation, "Review")

	require.NoError(t, svc.AddTalkingPoint(ctx, s.Id, entity.TalkingPoint{Label: "One"}))
	require.NoError(t, svc.AddTalkingPoint(ctx, s.Id, entity.TalkingPoint{Label: "Two"}))
	require.NoError(t, svc.AddPracticeQuestion(ctx, s.Id, entity.PracticeQuestion{Q: "Why?"}))
	require.NoError(t, svc.AddCheatsheetCard(ctx, s.Id, entity.CheatsheetCard{Title: "Facts"}))

	t.Run("out of range delete is a no-op", func(t *testing.T) {
		require.NoError(t, svc.DeleteTalkingPoint(ctx, s.Id, 7))
		require.NoError(t, svc.DeleteTalkingPoint(ctx, s.Id, -1))
		got, err := svc.Get(ctx, s.Id)
		require.NoError(t, err)
		assert.Len(t, got.TalkingPoints, 2)
	})

	t.Run("delete shifts later items", func(t *testing.T) {
		require.NoError(t, svc.DeleteTalkingPoint(ctx, s.Id, 0))
		got, err := svc.Get(ctx, s.Id)
		require.NoError(t, err)
		require.Len(t, got.TalkingPoints, 1)
		assert.Equal(t, "Two", got.TalkingPoints[0].Label)
		require.Len(t, got.PracticeQuestions, 1)
		assert.Equal(t, []string{}, got.PracticeQuestions[0].Points)
		require.Len(t, got.CheatsheetCards, 1)
		assert.Equal(t, []entity.CardItem{}, got.CheatsheetCards[0].Items)
	})
}

func TestSessionService_CreateFromImport(t *testing.T) {
	svc, pub := newTestSessionService(t)

	res := importer.Parse("# Opening\nWhy this matters\n\n# Plan\nThree steps", importer.Hints{
		Filename: "notes.md",
		Type:     entity.SessionTypeInterview,
	})

	s, err := svc.CreateFromImport(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionTypeInterview, s.Type)
	assert.NotEmpty(t, s.TalkingPoints)
	assert.Nil(t, s.PitchVariants)
	assert.Contains(t, pub.types(), EventSessionImported)
}
