package service

import (
	"context"
	"encoding/json"
	"time"

	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventRelay forwards domain events off the process, e.g. to NATS JetStream.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

const relayTimeout = 5 * time.Second

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	relay     EventRelay
	logger    logger.ILogger
}

// NewConsumerService drains the in-process bus into the audit log and, when
// relay is non-nil, onward to the relay.
func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, relay EventRelay, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		relay:     relay,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var env eventEnvelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		cs.logger.Error("EVENTS", "Dropping unreadable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("EVENTS", env.Type, env.Data)

	if cs.relay != nil {
		evt := events.BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}
		ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
		err := cs.relay.Publish(ctx, evt)
		cancel()
		// Relay failures are logged; session writes never depend on them.
		if err != nil {
			cs.logger.Warn("EVENTS", "Failed to relay event", map[string]interface{}{
				"type":  env.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
