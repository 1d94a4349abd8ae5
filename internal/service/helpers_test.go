package service

import (
	"context"
	"testing"
	"time"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/entity"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/repository/memory"
	"prep-tool-be/internal/repository/unitofwork"
	"prep-tool-be/pkg/database"
	"prep-tool-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps published events for assertions.
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// fakeClock is advanced by hand.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSessionService(t *testing.T) (ISessionService, *recordingPublisher) {
	t.Helper()
	db, err := database.NewInMemoryDB()
	require.NoError(t, err)

	pub := &recordingPublisher{}
	svc := NewSessionService(
		unitofwork.NewRepositoryFactory(db),
		memory.NewSummaryCache(time.Minute),
		pub,
		logger.NewNopLogger(),
	)
	return svc, pub
}

func newGoChannel() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
}

func createSession(t *testing.T, svc ISessionService, sessionType entity.SessionType, title string) *entity.Session {
	t.Helper()
	s, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Type: sessionType, Title: title})
	require.NoError(t, err)
	return s
}

func mustPatch(t *testing.T, field string, value any) entity.SessionPatch {
	t.Helper()
	p, err := entity.NewSessionPatch(field, value)
	require.NoError(t, err)
	return p
}
