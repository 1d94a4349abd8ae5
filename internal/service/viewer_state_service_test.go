package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/pkg/confidence"
	"prep-tool-be/pkg/practice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerStateService_Confidence(t *testing.T) {
	repo := memory.NewViewerStateRepository()
	svc := NewViewerStateService(repo, logger.NewNopLogger())
	ctx := context.Background()

	res, err := svc.GetConfidence(ctx, "alice", "s1")
	require.NoError(t, err)
	assert.Empty(t, res.Ratings)
	assert.Equal(t, confidence.BandNone, res.Summary.Band)

	_, err = svc.RateConfidence(ctx, "alice", "s1", 0, 5)
	require.NoError(t, err)
	res, err = svc.RateConfidence(ctx, "alice", "s1", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.Rated)
	assert.Equal(t, 4.0, res.Summary.Average)
	assert.Equal(t, confidence.BandHigh, res.Summary.Band)

	_, err = svc.RateConfidence(ctx, "alice", "s1", 1, 9)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	res, err = svc.GetConfidence(ctx, "bob", "s1")
	require.NoError(t, err)
	assert.Empty(t, res.Ratings)

	require.NoError(t, svc.ResetConfidence(ctx, "alice", "s1"))
	res, err = svc.GetConfidence(ctx, "alice", "s1")
	require.NoError(t, err)
	assert.Empty(t, res.Ratings)
}

func TestViewerStateService_CorruptedDataIsEmpty(t *testing.T) {
	repo := memory.NewViewerStateRepository()
	svc := NewViewerStateService(repo, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "alice", confidence.Key("s1"), "{not json"))
	require.NoError(t, repo.Set(ctx, "alice", practice.HistoryKey("s1"), "[1,2"))

	conf, err := svc.GetConfidence(ctx, "alice", "s1")
	require.NoError(t, err)
	assert.Empty(t, conf.Ratings)

	hist, err := svc.GetHistory(ctx, "alice", "s1")
	require.NoError(t, err)
	assert.Empty(t, hist.History)

	// writing over corrupted data starts fresh
	conf, err = svc.RateConfidence(ctx, "alice", "s1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, confidence.Ratings{"1": 2}, conf.Ratings)
}

func TestViewerStateService_HistoryEviction(t *testing.T) {
	svc := NewViewerStateService(memory.NewViewerStateRepository(), logger.NewNopLogger())
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < practice.MaxHistory+3; i++ {
		require.NoError(t, svc.AppendHistory(ctx, "alice", "s1", practice.HistoryEntry{
			Date:               start.Add(time.Duration(i) * time.Hour),
			QuestionsAttempted: i,
		}))
	}

	res, err := svc.GetHistory(ctx, "alice", "s1")
	require.NoError(t, err)
	require.Len(t, res.History, practice.MaxHistory)
	assert.Equal(t, 3, res.History[0].QuestionsAttempted)
	assert.Equal(t, practice.MaxHistory+2, res.History[len(res.History)-1].QuestionsAttempted)
}
