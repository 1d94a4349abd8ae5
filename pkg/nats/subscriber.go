package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"prep-tool-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc   *nats.Conn
	js   jetstream.JetStream
	cctx []jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers handler for subject. An empty durableName creates an
// ephemeral consumer that only sees events published from now on, so every
// process running it receives every event.
func (s *Subscriber) Subscribe(subject string, durableName string, handler EventHandler) error {
	ctx := context.Background()

	cfg := jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if durableName == "" {
		cfg.DeliverPolicy = jetstream.DeliverNewPolicy
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, cfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		var ev wireEvent
		if err := json.Unmarshal(msg.Data(), &ev); err != nil {
			log.Printf("Error unmarshalling event data: %v", err)
			// unreadable forever; redelivery cannot help
			msg.Term()
			return
		}

		event := events.BaseEvent{Type: ev.Type, Data: ev.Data, OccurredAt: ev.OccurredAt}
		if err := handler(context.Background(), event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			msg.Nak()
			return
		}

		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.cctx = append(s.cctx, cc)

	log.Printf("Subscribed to %s", subject)
	return nil
}

// Close stops every consumer and closes the connection.
func (s *Subscriber) Close() {
	for _, cc := range s.cctx {
		cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
