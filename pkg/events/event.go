// Package events defines the domain event contract shared by the in-process
// bus and the NATS relay.
package events

import "time"

type Event interface {
	// EventType is the event code, e.g. "SESSION_UPDATED".
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New stamps an event with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// SessionId returns the "session_id" payload field, or "" when absent.
func SessionId(e Event) string {
	id, _ := e.Payload()["session_id"].(string)
	return id
}
