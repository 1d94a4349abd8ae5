package service

import (
	"context"
	"encoding/json"
	"time"

	"prep-tool-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Domain event codes.
const (
	EventSessionCreated    = "SESSION_CREATED"
	EventSessionUpdated    = "SESSION_UPDATED"
	EventSessionDeleted    = "SESSION_DELETED"
	EventSessionImported   = "SESSION_IMPORTED"
	EventPracticeCommitted = "PRACTICE_COMMITTED"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// eventEnvelope is the wire shape of a domain event on the in-process bus.
type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(eventEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	// the request context ends with the request; delivery is asynchronous
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}
