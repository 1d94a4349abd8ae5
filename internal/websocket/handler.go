package websocket

import (
	"context"
	"encoding/json"
	"time"

	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/logger"
	"prep-tool-be/internal/pkg/serverutils"
	"prep-tool-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	FrameState = "state"
	FrameError = "error"

	// stateInterval is how often a connected socket gets a fresh snapshot.
	stateInterval = time.Second
)

// Frame is every message the server writes to a runtime socket.
type Frame struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RuntimeHandler serves /ws/session/:id/runtime/:panel. Inbound frames use the
// same JSON as the REST event endpoint; every resulting state is pushed to all
// sockets on the same panel instance.
type RuntimeHandler struct {
	hub     *Hub
	runtime service.IRuntimeService
	logger  logger.ILogger
}

func NewRuntimeHandler(hub *Hub, runtime service.IRuntimeService, log logger.ILogger) *RuntimeHandler {
	return &RuntimeHandler{hub: hub, runtime: runtime, logger: log}
}

func (h *RuntimeHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/session/:id/runtime/:panel", h.Upgrade, websocket.New(h.Serve))
}

// Upgrade rejects plain HTTP requests on the socket route.
func (h *RuntimeHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func encodeFrame(f Frame) []byte {
	data, _ := json.Marshal(f)
	return data
}

func errorFrame(err error) []byte {
	return encodeFrame(Frame{Type: FrameError, Code: serverutils.StatusFor(err), Message: err.Error()})
}

func (h *RuntimeHandler) Serve(c *websocket.Conn) {
	viewer, _ := c.Locals(serverutils.ViewerIdLocal).(string)
	if viewer == "" {
		viewer = serverutils.DefaultViewer
	}
	sessionId := c.Params("id")
	panel := dto.RuntimePanel(c.Params("panel"))
	ctx := context.Background()

	state, err := h.runtime.Open(ctx, viewer, sessionId, panel)
	if err != nil {
		c.WriteMessage(websocket.TextMessage, errorFrame(err))
		c.Close()
		return
	}

	client := &Client{
		Hub:  h.hub,
		Conn: c,
		Key:  service.RuntimeKey(viewer, sessionId, panel),
		Send: make(chan []byte, 64),
	}
	client.onMessage = func(data []byte) {
		var req dto.RuntimeEventRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.trySend(client, errorFrame(err))
			return
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			h.trySend(client, errorFrame(err))
			return
		}
		// on success the new state arrives through the hub like on every other socket
		if _, err := h.runtime.Apply(ctx, viewer, sessionId, panel, &req); err != nil {
			h.trySend(client, errorFrame(err))
		}
	}

	client.Send <- encodeFrame(Frame{Type: FrameState, Data: state})
	h.hub.register <- client

	snapshot := func() []byte {
		st, err := h.runtime.State(ctx, viewer, sessionId, panel)
		if err != nil {
			return errorFrame(err)
		}
		return encodeFrame(Frame{Type: FrameState, Data: st})
	}

	go client.writePump(stateInterval, snapshot)
	client.readPump()
}

func (h *RuntimeHandler) trySend(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.logger.Warn("WS", "Client send buffer full, dropping frame", map[string]interface{}{"key": c.Key})
	}
}
