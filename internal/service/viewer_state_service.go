package service

import (
	"context"
	"encoding/json"
	"fmt"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/contract"
	"prep-tool-be/pkg/confidence"
	"prep-tool-be/pkg/practice"
)

// IViewerStateService owns what each viewer keeps about a session outside the
// shared document: confidence ratings and practice history.
type IViewerStateService interface {
	GetConfidence(ctx context.Context, viewerId, sessionId string) (*dto.ConfidenceResponse, error)
	RateConfidence(ctx context.Context, viewerId, sessionId string, index, level int) (*dto.ConfidenceResponse, error)
	ResetConfidence(ctx context.Context, viewerId, sessionId string) error

	GetHistory(ctx context.Context, viewerId, sessionId string) (*dto.PracticeHistoryResponse, error)
	AppendHistory(ctx context.Context, viewerId, sessionId string, entry practice.HistoryEntry) error
}

type viewerStateService struct {
	repo   contract.ViewerStateRepository
	logger logger.ILogger
}

func NewViewerStateService(repo contract.ViewerStateRepository, log logger.ILogger) IViewerStateService {
	return &viewerStateService{repo: repo, logger: log}
}

func (s *viewerStateService) loadRatings(ctx context.Context, viewerId, sessionId string) (confidence.Ratings, error) {
	raw, _, err := s.repo.Get(ctx, viewerId, confidence.Key(sessionId))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	ratings, ok := confidence.Decode(raw)
	if !ok {
		s.logger.Warn("VIEWER_STATE", "Discarded corrupted confidence ratings", map[string]interface{}{
			"viewer":     viewerId,
			"session_id": sessionId,
		})
	}
	return ratings, nil
}

func (s *viewerStateService) GetConfidence(ctx context.Context, viewerId, sessionId string) (*dto.ConfidenceResponse, error) {
	ratings, err := s.loadRatings(ctx, viewerId, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.ConfidenceResponse{Ratings: ratings, Summary: ratings.Summarize()}, nil
}

func (s *viewerStateService) RateConfidence(ctx context.Context, viewerId, sessionId string, index, level int) (*dto.ConfidenceResponse, error) {
	ratings, err := s.loadRatings(ctx, viewerId, sessionId)
	if err != nil {
		return nil, err
	}

	next, err := ratings.Rate(index, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	if err := s.repo.Set(ctx, viewerId, confidence.Key(sessionId), next.Encode()); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	return &dto.ConfidenceResponse{Ratings: next, Summary: next.Summarize()}, nil
}

func (s *viewerStateService) ResetConfidence(ctx context.Context, viewerId, sessionId string) error {
	if err := s.repo.Delete(ctx, viewerId, confidence.Key(sessionId)); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	return nil
}

func (s *viewerStateService) loadHistory(ctx context.Context, viewerId, sessionId string) ([]practice.HistoryEntry, error) {
	raw, _, err := s.repo.Get(ctx, viewerId, practice.HistoryKey(sessionId))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	history, ok := practice.DecodeHistory(raw)
	if !ok {
		s.logger.Warn("VIEWER_STATE", "Discarded corrupted practice history", map[string]interface{}{
			"viewer":     viewerId,
			"session_id": sessionId,
		})
	}
	return history, nil
}

func (s *viewerStateService) GetHistory(ctx context.Context, viewerId, sessionId string) (*dto.PracticeHistoryResponse, error) {
	history, err := s.loadHistory(ctx, viewerId, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.PracticeHistoryResponse{History: history}, nil
}

func (s *viewerStateService) AppendHistory(ctx context.Context, viewerId, sessionId string, entry practice.HistoryEntry) error {
	history, err := s.loadHistory(ctx, viewerId, sessionId)
	if err != nil {
		return err
	}

	b, err := json.Marshal(practice.AppendHistory(history, entry))
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, viewerId, practice.HistoryKey(sessionId), string(b)); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	return nil
}
