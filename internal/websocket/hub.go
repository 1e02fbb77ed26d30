package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"digital-twin-be/internal/dto"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_session_events"

// Hub tracks open chat sockets by session so that session-level events
// (a reset from another tab, say) reach every socket bound to it.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// optional; fans session events out to other instances
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

type clusterMessage struct {
	Origin    string          `json:"origin"`
	SessionID string          `json:"session_id"`
	Frame     json.RawMessage `json:"frame"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run owns registration until ctx is done. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			sessionID := client.sessionID
			h.mu.Unlock()
			h.logger.Debug("Hub", "Client registered", map[string]interface{}{"session_id": sessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			sessionID := client.sessionID
			h.mu.Unlock()
			h.logger.Debug("Hub", "Client unregistered", map[string]interface{}{"session_id": sessionID})
		}
	}
}

// join registers client. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave unregisters client; a stopped hub has nothing left to release.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Bind attaches client to sessionID. A socket follows the session of its
// latest turn.
func (h *Hub) Bind(client *Client, sessionID string) {
	h.mu.Lock()
	client.sessionID = sessionID
	h.mu.Unlock()
}

// SessionOf returns the session the client is currently bound to.
func (h *Hub) SessionOf(client *Client) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return client.sessionID
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish pushes session resets to bound sockets. Other event types are
// ignored. It satisfies the consumer's forwarder contract.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	if event.EventType() != events.TypeSessionReset {
		return nil
	}
	sessionID, _ := event.Payload()["session_id"].(string)
	if sessionID == "" {
		return nil
	}

	frame, err := json.Marshal(dto.ChatStreamFrame{Type: dto.FrameReset, SessionId: sessionID})
	if err != nil {
		return err
	}
	h.deliverLocal(sessionID, frame)

	if h.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(clusterMessage{Origin: h.instanceID, SessionID: sessionID, Frame: frame})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, clusterChannel, payload).Err()
}

func (h *Hub) deliverLocal(sessionID string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.sessionID != sessionID {
			continue
		}
		select {
		case client.send <- frame:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping frame", map[string]interface{}{"session_id": sessionID})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Dropping malformed cluster message", map[string]interface{}{"error": err.Error()})
				continue
			}
			// own publishes were already delivered locally
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliverLocal(payload.SessionID, payload.Frame)
		}
	}
}
