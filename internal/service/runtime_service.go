package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/pkg/countdown"
	"prep-tool-be/pkg/events"
	"prep-tool-be/pkg/practice"
	"prep-tool-be/pkg/rehearsal"
)

var errPanelNotOpen = errors.New("runtime panel is not open")

// IRuntimeService runs the practice, rehearsal and pitch panels. There is one
// live instance per (viewer, session, panel); REST and websocket callers share it.
type IRuntimeService interface {
	Open(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel) (*dto.RuntimeStateResponse, error)
	Apply(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel, req *dto.RuntimeEventRequest) (*dto.RuntimeStateResponse, error)
	State(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel) (*dto.RuntimeStateResponse, error)
	Close(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel)
}

// runtimeInstance is what the runtime cache holds. Only the machine matching
// panel is meaningful.
type runtimeInstance struct {
	panel     dto.RuntimePanel
	questions []entity.PracticeQuestion
	slides    []entity.Slide

	practice  practice.State
	rehearsal rehearsal.State
	pitch     countdown.State
}

// RuntimeBroadcaster pushes a new panel state to live watchers of key.
type RuntimeBroadcaster interface {
	Publish(key string, message interface{})
}

type runtimeService struct {
	sessions    ISessionService
	viewerState IViewerStateService
	instances   *memory.RuntimeRepository
	publisher   IPublisherService
	broadcaster RuntimeBroadcaster
	logger      logger.ILogger
	now         func() time.Time
}

// NewRuntimeService uses clock for every event timestamp; nil means time.Now.
// broadcaster may be nil.
func NewRuntimeService(
	sessions ISessionService,
	viewerState IViewerStateService,
	instances *memory.RuntimeRepository,
	publisher IPublisherService,
	broadcaster RuntimeBroadcaster,
	log logger.ILogger,
	clock func() time.Time,
) IRuntimeService {
	if clock == nil {
		clock = time.Now
	}
	return &runtimeService{
		sessions:    sessions,
		viewerState: viewerState,
		instances:   instances,
		publisher:   publisher,
		broadcaster: broadcaster,
		logger:      log,
		now:         clock,
	}
}

// RuntimeKey names one panel instance. Websocket watchers subscribe by it.
func RuntimeKey(viewerId, sessionId string, panel dto.RuntimePanel) string {
	return fmt.Sprintf("runtime:%s:%s:%s", viewerId, sessionId, panel)
}

func checkPanel(panel dto.RuntimePanel) error {
	if !panel.Valid() {
		return fmt.Errorf("%w: unknown panel %q", apperror.ErrValidation, panel)
	}
	return nil
}

// Open activates a panel. An instance that is already live keeps its clocks
// unless the session's content changed size underneath it.
func (s *runtimeService) Open(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel) (*dto.RuntimeStateResponse, error) {
	if err := checkPanel(panel); err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	key := RuntimeKey(viewerId, sessionId, panel)
	unlock := s.instances.Lock(key)
	defer unlock()

	inst := &runtimeInstance{
		panel:     panel,
		questions: session.Clone().PracticeQuestions,
		slides:    rehearsalSlides(session),
	}
	prev := s.loadInstance(key)

	switch panel {
	case dto.PanelPractice:
		if prev != nil && prev.practice.Total == len(inst.questions) {
			inst.practice = prev.practice
		} else {
			inst.practice = practice.New(len(inst.questions))
		}
	case dto.PanelRehearsal:
		if prev != nil && prev.rehearsal.Total == len(inst.slides) {
			inst.rehearsal = prev.rehearsal
		} else {
			inst.rehearsal = rehearsal.New(len(inst.slides))
		}
	case dto.PanelPitch:
		if prev != nil {
			inst.pitch = prev.pitch.WithScripts(session.PitchVariants.Map())
		} else {
			inst.pitch = countdown.New(session.PitchVariants.Map())
		}
	}

	s.instances.Save(key, inst)
	s.logger.Debug("RUNTIME", "Panel opened", map[string]interface{}{
		"viewer":     viewerId,
		"session_id": sessionId,
		"panel":      string(panel),
		"resumed":    prev != nil,
	})
	return s.view(sessionId, inst), nil
}

// rehearsalSlides uses the authored slides, or one slide per talking point when
// there are none.
func rehearsalSlides(session *entity.Session) []entity.Slide {
	if len(session.Slides) > 0 {
		out := make([]entity.Slide, len(session.Slides))
		copy(out, session.Slides)
		return out
	}
	out := make([]entity.Slide, 0, len(session.TalkingPoints))
	for _, tp := range session.TalkingPoints {
		out = append(out, entity.Slide{Title: tp.Label, Body: tp.Note})
	}
	return out
}

func (s *runtimeService) loadInstance(key string) *runtimeInstance {
	x, ok := s.instances.Get(key)
	if !ok {
		return nil
	}
	inst, _ := x.(*runtimeInstance)
	return inst
}

func (s *runtimeService) Apply(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel, req *dto.RuntimeEventRequest) (*dto.RuntimeStateResponse, error) {
	if err := checkPanel(panel); err != nil {
		return nil, err
	}

	key := RuntimeKey(viewerId, sessionId, panel)
	unlock := s.instances.Lock(key)
	defer unlock()

	inst := s.loadInstance(key)
	if inst == nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrNotFound, errPanelNotOpen)
	}

	at := s.now()
	next := *inst
	var err error
	switch panel {
	case dto.PanelPractice:
		next.practice, err = practice.Apply(inst.practice, practice.Event{
			Type:  practice.EventType(req.Type),
			Stars: req.Stars,
			At:    at,
		})
	case dto.PanelRehearsal:
		next.rehearsal, err = rehearsal.Apply(inst.rehearsal, rehearsal.Event{
			Type:  rehearsal.EventType(req.Type),
			Index: req.Index,
			At:    at,
		})
	case dto.PanelPitch:
		next.pitch, err = countdown.Apply(inst.pitch, countdown.Event{
			Type:    countdown.EventType(req.Type),
			Seconds: req.Seconds,
			At:      at,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	s.instances.Save(key, &next)
	if panel == dto.PanelPractice && next.practice.Committed != nil {
		s.commitHistory(ctx, viewerId, sessionId, *next.practice.Committed)
	}

	res := s.view(sessionId, &next)
	if s.broadcaster != nil {
		s.broadcaster.Publish(key, res)
	}
	return res, nil
}

// commitHistory persists a finished practice pass. A storage failure is logged
// and does not undo the transition.
func (s *runtimeService) commitHistory(ctx context.Context, viewerId, sessionId string, entry practice.HistoryEntry) {
	if err := s.viewerState.AppendHistory(ctx, viewerId, sessionId, entry); err != nil {
		s.logger.Error("RUNTIME", "Failed to save practice history", map[string]interface{}{
			"viewer":     viewerId,
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}

	event := events.New(EventPracticeCommitted, map[string]interface{}{
		"viewer":              viewerId,
		"session_id":          sessionId,
		"questions_attempted": entry.QuestionsAttempted,
		"average_rating":      entry.AverageRating,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("RUNTIME", "Failed to publish "+EventPracticeCommitted, map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *runtimeService) State(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel) (*dto.RuntimeStateResponse, error) {
	if err := checkPanel(panel); err != nil {
		return nil, err
	}
	key := RuntimeKey(viewerId, sessionId, panel)
	unlock := s.instances.Lock(key)
	defer unlock()

	inst := s.loadInstance(key)
	if inst == nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrNotFound, errPanelNotOpen)
	}
	return s.view(sessionId, inst), nil
}

func (s *runtimeService) Close(ctx context.Context, viewerId, sessionId string, panel dto.RuntimePanel) {
	s.instances.Delete(RuntimeKey(viewerId, sessionId, panel))
}

func (s *runtimeService) view(sessionId string, inst *runtimeInstance) *dto.RuntimeStateResponse {
	now := s.now()
	res := &dto.RuntimeStateResponse{SessionId: sessionId, Panel: inst.panel}

	switch inst.panel {
	case dto.PanelPractice:
		st := inst.practice
		elapsed := st.QuestionElapsed(now)
		v := &dto.PracticeView{
			Phase:          st.Phase,
			Cursor:         st.Cursor,
			Total:          st.Total,
			Rating:         st.Ratings[st.Cursor],
			RatedCount:     len(st.Ratings),
			ElapsedSeconds: int(elapsed / time.Second),
			TimerBand:      practice.Band(elapsed),
			Committed:      st.Committed,
		}
		if st.Phase != practice.PhaseIdle && st.Cursor < len(inst.questions) {
			q := inst.questions[st.Cursor]
			v.Question = q.Q
			if st.Phase == practice.PhaseRevealed {
				v.Points = q.Points
			}
		}
		res.Practice = v

	case dto.PanelRehearsal:
		st := inst.rehearsal
		v := &dto.RehearsalView{
			Current:        st.Current,
			Total:          st.Total,
			Visited:        st.Visited,
			VisitedCount:   st.VisitedCount(),
			Completed:      st.Completed,
			Running:        st.Running,
			ElapsedSeconds: st.Elapsed(now),
		}
		if st.Current < len(inst.slides) {
			slide := inst.slides[st.Current]
			v.Slide = &slide
		}
		res.Rehearsal = v

	case dto.PanelPitch:
		st := inst.pitch.At(now)
		res.Pitch = &dto.PitchView{
			Duration:  st.Duration,
			Remaining: st.Remaining,
			Display:   st.Display(),
			Band:      st.Band(),
			Progress:  st.Progress(),
			Running:   st.Running,
			Finished:  st.Finished,
			Script:    st.Script,
		}
	}
	return res
}
