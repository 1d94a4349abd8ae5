package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/internal/repository/specification"
	"prep-tool-be/internal/repository/unitofwork"
	"prep-tool-be/pkg/events"
	"prep-tool-be/pkg/importer"

	"github.com/google/uuid"
)

const (
	DefaultSessionTitle  = "Untitled Session"
	DefaultImportedTitle = "Imported Session"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*entity.Session, error)
	CreateFromImport(ctx context.Context, res *importer.Result) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	List(ctx context.Context, query *dto.ListSessionsQuery) ([]*dto.SessionSummary, error)
	Update(ctx context.Context, id string, patch entity.SessionPatch) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*entity.Session, error)

	AddTalkingPoint(ctx context.Context, id string, tp entity.TalkingPoint) error
	DeleteTalkingPoint(ctx context.Context, id string, index int) error
	AddPracticeQuestion(ctx context.Context, id string, q entity.PracticeQuestion) error
	AddCheatsheetCard(ctx context.Context, id string, card entity.CheatsheetCard) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	summaries  *memory.SummaryCache
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	summaries *memory.SummaryCache,
	publisher IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		summaries:  summaries,
		publisher:  publisher,
		logger:     log,
	}
}

// newSessionId returns 8 hex characters taken from a random UUID.
func newSessionId() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*entity.Session, error) {
	session := entity.NewEmptySession(req.Type)
	session.Title = strings.TrimSpace(req.Title)
	if session.Title == "" {
		session.Title = DefaultSessionTitle
	}
	session.Subtitle = req.Subtitle
	session.Date = req.Date
	session.Format = req.Format

	if err := s.insert(ctx, session); err != nil {
		return nil, err
	}
	s.emit(ctx, EventSessionCreated, session, nil)
	return session, nil
}

func (s *sessionService) CreateFromImport(ctx context.Context, res *importer.Result) (*entity.Session, error) {
	session := res.Session.Clone()
	if !session.Type.Valid() {
		session.Type = entity.SessionTypePresentation
	}
	if strings.TrimSpace(session.Title) == "" {
		session.Title = DefaultImportedTitle
	}
	session.Normalize()

	if err := s.insert(ctx, session); err != nil {
		return nil, err
	}
	s.emit(ctx, EventSessionImported, session, map[string]interface{}{
		"source_type": string(res.SourceType),
		"confidence":  res.Confidence,
	})
	return session, nil
}

func (s *sessionService) insert(ctx context.Context, session *entity.Session) error {
	now := time.Now()
	session.Id = newSessionId()
	session.Created = now
	session.Modified = now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		s.logger.Error("SESSION", "Failed to create session", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	s.summaries.Invalidate()
	return nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*entity.Session, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperror.ErrNotFound, id)
	}
	return session, nil
}

// List serves from the summary cache and filters in memory.
func (s *sessionService) List(ctx context.Context, query *dto.ListSessionsQuery) ([]*dto.SessionSummary, error) {
	sessions, ok := s.summaries.Get()
	if !ok {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		all, err := uow.SessionRepository().FindAll(ctx, specification.RecentlyModified{})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
		}
		sortByRecent(all)
		s.summaries.Set(all)
		sessions = all
	}

	search := ""
	sessionType := ""
	if query != nil {
		search = strings.ToLower(strings.TrimSpace(query.Search))
		sessionType = query.Type
	}

	res := make([]*dto.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		if sessionType != "" && string(session.Type) != sessionType {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(session.Title), search) {
			continue
		}
		res = append(res, dto.NewSessionSummary(session))
	}
	return res, nil
}

// sortByRecent orders by modified time, falling back to created, newest first.
func sortByRecent(sessions []*entity.Session) {
	key := func(s *entity.Session) time.Time {
		if s.Modified.IsZero() {
			return s.Created
		}
		return s.Modified
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return key(sessions[i]).After(key(sessions[j]))
	})
}

func (s *sessionService) Update(ctx context.Context, id string, patch entity.SessionPatch) (*entity.Session, error) {
	if unknown := patch.UnknownFields(); len(unknown) > 0 {
		s.logger.Warn("SESSION", "Ignored unknown fields in update", map[string]interface{}{
			"session_id": id,
			"fields":     unknown,
			"accepted":   entity.PatchableFields,
		})
	}
	session, err := s.mutate(ctx, id, func(session *entity.Session) (bool, error) {
		if err := patch.Apply(session); err != nil {
			return false, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, EventSessionUpdated, session, map[string]interface{}{"fields": patch.Fields()})
	return session, nil
}

// mutate loads, changes and saves one session inside a transaction.
// fn reports whether anything changed; nothing is written when it did not.
func (s *sessionService) mutate(ctx context.Context, id string, fn func(*entity.Session) (bool, error)) (*entity.Session, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	defer uow.Rollback()

	repo := uow.SessionRepository()
	session, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperror.ErrNotFound, id)
	}

	changed, err := fn(session)
	if err != nil {
		return nil, err
	}
	if !changed {
		return session, nil
	}

	session.Modified = time.Now()
	if err := repo.Update(ctx, session); err != nil {
		s.logger.Error("SESSION", "Failed to save session", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}

	s.summaries.Invalidate()
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrPersistence, err)
	}
	s.summaries.Invalidate()
	s.emit(ctx, EventSessionDeleted, session, nil)
	return nil
}

func (s *sessionService) Duplicate(ctx context.Context, id string) (*entity.Session, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := src.Clone()
	dup.Title = src.Title + " (Copy)"
	if err := s.insert(ctx, dup); err != nil {
		return nil, err
	}
	s.emit(ctx, EventSessionCreated, dup, map[string]interface{}{"duplicated_from": id})
	return dup, nil
}

func (s *sessionService) AddTalkingPoint(ctx context.Context, id string, tp entity.TalkingPoint) error {
	_, err := s.mutate(ctx, id, func(session *entity.Session) (bool, error) {
		session.TalkingPoints = append(session.TalkingPoints, tp)
		return true, nil
	})
	return err
}

// DeleteTalkingPoint ignores an index outside the list.
func (s *sessionService) DeleteTalkingPoint(ctx context.Context, id string, index int) error {
	_, err := s.mutate(ctx, id, func(session *entity.Session) (bool, error) {
		if index < 0 || index >= len(session.TalkingPoints) {
			return false, nil
		}
		session.TalkingPoints = append(session.TalkingPoints[:index], session.TalkingPoints[index+1:]...)
		return true, nil
	})
	return err
}

func (s *sessionService) AddPracticeQuestion(ctx context.Context, id string, q entity.PracticeQuestion) error {
	if q.Points == nil {
		q.Points = []string{}
	}
	_, err := s.mutate(ctx, id, func(session *entity.Session) (bool, error) {
		session.PracticeQuestions = append(session.PracticeQuestions, q)
		return true, nil
	})
	return err
}

func (s *sessionService) AddCheatsheetCard(ctx context.Context, id string, card entity.CheatsheetCard) error {
	if card.Items == nil {
		card.Items = []entity.CardItem{}
	}
	_, err := s.mutate(ctx, id, func(session *entity.Session) (bool, error) {
		session.CheatsheetCards = append(session.CheatsheetCards, card)
		return true, nil
	})
	return err
}

// emit publishes a domain event. Failures are logged only.
func (s *sessionService) emit(ctx context.Context, eventType string, session *entity.Session, extra map[string]interface{}) {
	data := map[string]interface{}{
		"session_id": session.Id,
		"type":       string(session.Type),
		"title":      session.Title,
	}
	for k, v := range extra {
		data[k] = v
	}
	if err := s.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("SESSION", "Failed to publish "+eventType, map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}
