package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"digital-twin-be/internal/dto"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	c := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 4),
		done:      make(chan struct{}),
	}
	hub.join(c)
	return c
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)
	return hub
}

func TestHub_ResetReachesBoundSockets(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(hub, "s1")
	b := newTestClient(hub, "s2")
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	err := hub.Publish(context.Background(), events.New(events.TypeSessionReset, map[string]interface{}{"session_id": "s1"}))
	require.NoError(t, err)

	select {
	case raw := <-a.send:
		var frame dto.ChatStreamFrame
		require.NoError(t, json.Unmarshal(raw, &frame))
		assert.Equal(t, dto.FrameReset, frame.Type)
		assert.Equal(t, "s1", frame.SessionId)
	default:
		t.Fatal("expected a reset frame")
	}
	assert.Empty(t, b.send)
}

func TestHub_IgnoresOtherEvents(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(hub, "s1")
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), events.New(events.TypeChatReplied, map[string]interface{}{"session_id": "s1"})))
	require.NoError(t, hub.Publish(context.Background(), events.New(events.TypeSessionReset, nil)))
	assert.Empty(t, a.send)
}

func TestHub_BindMovesSocket(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(hub, "")
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	hub.Bind(a, "s9")
	assert.Equal(t, "s9", a.SessionID())

	require.NoError(t, hub.Publish(context.Background(), events.New(events.TypeSessionReset, map[string]interface{}{"session_id": "s9"})))
	assert.Len(t, a.send, 1)
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(hub, "s1")
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	hub.leave(a)
	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-a.send
	assert.False(t, open)
}

func TestHub_StoppedHubReleasesCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	a := newTestClient(hub, "s1")
	cancel()
	<-stopped

	finished := make(chan bool, 1)
	go func() {
		hub.leave(a)
		finished <- hub.join(&Client{hub: hub, send: make(chan []byte, 1), done: make(chan struct{})})
	}()

	select {
	case joined := <-finished:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked on a stopped hub")
	}
}

func TestClient_EmitAfterClose(t *testing.T) {
	c := &Client{send: make(chan []byte), done: make(chan struct{})}
	close(c.done)
	assert.ErrorIs(t, c.Emit(dto.ChatStreamFrame{Type: dto.FrameToken}), ErrClientClosed)
}
