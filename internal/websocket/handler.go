package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs runs a chat socket until the peer goes away. sessionID may be
// empty; the first turn then binds the socket to a fresh session.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string, handle TurnHandler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &Client{
		hub:       hub,
		conn:      c,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
		done:      make(chan struct{}),
	}
	if !hub.join(client) {
		return
	}

	go client.writePump(cancel)
	client.readPump(ctx, handle) // the fiber handler must not return early
}
