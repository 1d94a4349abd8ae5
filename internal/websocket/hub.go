package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"prep-tool-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel carries runtime state between instances sharing a Redis.
const clusterChannel = "prep_runtime_events"

// Hub fans runtime state out to every socket watching the same panel instance.
type Hub struct {
	// runtime key -> clients (one viewer may have several tabs open)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// nil keeps delivery local to this process
	rdb *redis.Client

	// origin tags this instance's Redis messages so they are not delivered twice
	origin string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		origin:     uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Key] = append(h.clients[client.Key], client)
			h.mu.Unlock()
			h.logger.Info("WS", "Client registered", map[string]interface{}{"key": client.Key})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.Key]
			for i, c := range clients {
				if c == client {
					h.clients[client.Key] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.Key]) == 0 {
				delete(h.clients, client.Key)
			}
			h.mu.Unlock()
			h.logger.Info("WS", "Client unregistered", map[string]interface{}{"key": client.Key})
		}
	}
}

// Publish delivers a message to local watchers of key and, with Redis, to
// watchers on other instances.
func (h *Hub) Publish(key string, message interface{}) {
	data, err := json.Marshal(Frame{Type: FrameState, Data: message})
	if err != nil {
		h.logger.Error("WS", "Failed to encode message", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}

	h.deliver(key, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.origin, Key: key, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("WS", "Failed to publish to Redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

type clusterMessage struct {
	Origin  string          `json:"origin"`
	Key     string          `json:"key"`
	Message json.RawMessage `json:"message"`
}

// deliver never blocks: a client whose buffer is full misses this frame and
// catches up with the next one.
func (h *Hub) deliver(key string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[key] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("WS", "Client send buffer full, dropping frame", map[string]interface{}{"key": key})
		}
	}
}

// Watchers reports how many local sockets watch key.
func (h *Hub) Watchers(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key])
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("WS", "Unreadable cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.origin {
			continue
		}
		h.deliver(payload.Key, payload.Message)
	}
}
