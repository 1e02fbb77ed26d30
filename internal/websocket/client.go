package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"digital-twin-be/internal/dto"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

var ErrClientClosed = errors.New("websocket client closed")

// TurnHandler runs one inbound chat frame. Turns on a socket run one at a
// time, in arrival order.
type TurnHandler func(ctx context.Context, client *Client, raw []byte)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// guarded by hub.mu
	sessionID string

	// Buffered channel of outbound frames.
	send chan []byte
	// closed when writePump exits
	done chan struct{}
}

// Emit queues frame for the peer. It fails once the writer has gone away.
func (c *Client) Emit(frame dto.ChatStreamFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	}
}

func (c *Client) SessionID() string {
	return c.hub.SessionOf(c)
}

// readPump reads chat frames and hands each to handle.
func (c *Client) readPump(ctx context.Context, handle TurnHandler) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("WebSocket", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID(),
					"error":      err.Error(),
				})
			}
			return
		}
		handle(ctx, c, raw)
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// writePump pumps queued frames to the websocket connection.
func (c *Client) writePump(cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		cancel()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// one frame per message; clients parse each as JSON
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-c.hub.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
