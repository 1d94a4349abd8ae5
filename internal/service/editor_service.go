package service

import (
	"context"
	"errors"
	"fmt"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/pkg/editor"
)

const (
	ToastSuccess        = "success"
	ToastError          = "error"
	toastDismissAfterMs = 2000
)

var errDraftNotOpen = errors.New("editor is not open for this session")

type IEditorService interface {
	Open(ctx context.Context, viewerId, sessionId string) (*dto.EditorDraftResponse, error)
	Get(ctx context.Context, viewerId, sessionId string) (*dto.EditorDraftResponse, error)
	Add(ctx context.Context, viewerId, sessionId string, collection editor.Collection) (*dto.EditorDraftResponse, error)
	Remove(ctx context.Context, viewerId, sessionId string, collection editor.Collection, index int) (*dto.EditorDraftResponse, error)
	// Save persists one collection. On a failed write the response still
	// carries the draft and an error toast alongside the returned error.
	Save(ctx context.Context, viewerId, sessionId string, collection editor.Collection, req *dto.SaveCollectionRequest) (*dto.SaveCollectionResponse, error)
	Discard(ctx context.Context, viewerId, sessionId string)
}

type editorService struct {
	sessions ISessionService
	drafts   *memory.RuntimeRepository
	logger   logger.ILogger
}

func NewEditorService(sessions ISessionService, drafts *memory.RuntimeRepository, log logger.ILogger) IEditorService {
	return &editorService{sessions: sessions, drafts: drafts, logger: log}
}

func draftKey(viewerId, sessionId string) string {
	return fmt.Sprintf("editor:%s:%s", viewerId, sessionId)
}

// Open always starts from the stored document, replacing any earlier draft.
func (s *editorService) Open(ctx context.Context, viewerId, sessionId string) (*dto.EditorDraftResponse, error) {
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	key := draftKey(viewerId, sessionId)
	unlock := s.drafts.Lock(key)
	defer unlock()

	draft := editor.Open(session)
	s.drafts.Save(key, draft)
	return &dto.EditorDraftResponse{Draft: draft.Clone()}, nil
}

func (s *editorService) load(key string) (*editor.Draft, error) {
	x, ok := s.drafts.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %v", apperror.ErrNotFound, errDraftNotOpen)
	}
	draft, ok := x.(*editor.Draft)
	if !ok {
		return nil, fmt.Errorf("%w: %v", apperror.ErrNotFound, errDraftNotOpen)
	}
	return draft, nil
}

// Responses carry a copy of the draft; the cached one is only touched under its lock.
func (s *editorService) Get(ctx context.Context, viewerId, sessionId string) (*dto.EditorDraftResponse, error) {
	key := draftKey(viewerId, sessionId)
	unlock := s.drafts.Lock(key)
	defer unlock()

	draft, err := s.load(key)
	if err != nil {
		return nil, err
	}
	return &dto.EditorDraftResponse{Draft: draft.Clone()}, nil
}

func (s *editorService) Add(ctx context.Context, viewerId, sessionId string, collection editor.Collection) (*dto.EditorDraftResponse, error) {
	key := draftKey(viewerId, sessionId)
	unlock := s.drafts.Lock(key)
	defer unlock()

	draft, err := s.load(key)
	if err != nil {
		return nil, err
	}
	if err := draft.Add(collection); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	s.drafts.Save(key, draft)
	return &dto.EditorDraftResponse{Draft: draft.Clone()}, nil
}

// Remove treats an index outside the collection as a no-op.
func (s *editorService) Remove(ctx context.Context, viewerId, sessionId string, collection editor.Collection, index int) (*dto.EditorDraftResponse, error) {
	key := draftKey(viewerId, sessionId)
	unlock := s.drafts.Lock(key)
	defer unlock()

	draft, err := s.load(key)
	if err != nil {
		return nil, err
	}
	err = draft.Remove(collection, index)
	switch {
	case errors.Is(err, editor.ErrIndexOutOfRange):
		s.logger.Debug("EDITOR", "Ignored remove outside collection", map[string]interface{}{
			"session_id": sessionId,
			"collection": string(collection),
			"index":      index,
		})
	case err != nil:
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	s.drafts.Save(key, draft)
	return &dto.EditorDraftResponse{Draft: draft.Clone()}, nil
}

func (s *editorService) Save(ctx context.Context, viewerId, sessionId string, collection editor.Collection, req *dto.SaveCollectionRequest) (*dto.SaveCollectionResponse, error) {
	key := draftKey(viewerId, sessionId)
	unlock := s.drafts.Lock(key)
	defer unlock()

	draft, err := s.load(key)
	if err != nil {
		return nil, err
	}

	patch, err := draft.Save(collection, req.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	// the draft keeps the submitted rows whether or not the write lands
	s.drafts.Save(key, draft)

	if _, err := s.sessions.Update(ctx, sessionId, patch); err != nil {
		s.logger.Error("EDITOR", "Failed to save collection", map[string]interface{}{
			"session_id": sessionId,
			"collection": string(collection),
			"error":      err.Error(),
		})
		return &dto.SaveCollectionResponse{
			Draft: draft.Clone(),
			Toast: dto.Toast{Kind: ToastError, Message: "Save failed: " + err.Error()},
		}, err
	}

	draft.MarkSaved(collection)
	return &dto.SaveCollectionResponse{
		Draft: draft.Clone(),
		Toast: dto.Toast{Kind: ToastSuccess, Message: "Saved!", DismissAfterMs: toastDismissAfterMs},
	}, nil
}

func (s *editorService) Discard(ctx context.Context, viewerId, sessionId string) {
	s.drafts.Delete(draftKey(viewerId, sessionId))
}
