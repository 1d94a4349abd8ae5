package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one socket attached to a runtime panel instance.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn

	// Key identifies the panel instance, see service runtime keys.
	Key string

	// Send is written by the hub and drained by writePump.
	Send chan []byte

	// onMessage handles one inbound frame.
	onMessage func(data []byte)
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WS", "Unexpected close", map[string]interface{}{"key": c.Key, "error": err.Error()})
			}
			return
		}
		if c.onMessage != nil {
			c.onMessage(data)
		}
	}
}

// writePump drains Send. Every stateEvery it also writes a fresh snapshot so a
// running clock keeps moving on screen without any inbound event.
func (c *Client) writePump(stateEvery time.Duration, snapshot func() []byte) {
	ping := time.NewTicker(pingPeriod)
	state := time.NewTicker(stateEvery)
	defer func() {
		ping.Stop()
		state.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-state.C:
			if snapshot == nil {
				continue
			}
			if data := snapshot(); data != nil {
				c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		case <-ping.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
