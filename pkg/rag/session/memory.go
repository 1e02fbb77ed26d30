package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/kvstore"
	"digital-twin-be/pkg/rag/feedback"
)

const (
	DefaultShortWindow = 16
	DefaultTTL         = time.Hour

	contextKeyPrefix = "chat_session:"
	historyKeyPrefix = "chat_history:"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood,omitempty"`
}

// Data is the short-context view: the recent window plus the
// per-session mood and learned preferences.
type Data struct {
	SessionID   string                `json:"session_id"`
	Messages    []Message             `json:"messages"`
	CreatedAt   time.Time             `json:"created_at"`
	LastActive  time.Time             `json:"last_active"`
	Mood        string                `json:"mood"`
	Preferences *feedback.Preferences `json:"feedback_preferences,omitempty"`
}

// PreferencesOrDefault never returns nil preferences.
func (d Data) PreferencesOrDefault() feedback.Preferences {
	if d.Preferences == nil {
		return feedback.NewPreferences()
	}
	return *d.Preferences
}

type historyData struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

type Config struct {
	TTL         time.Duration
	ShortWindow int
}

// Memory keeps two independent views per session over one store: a
// trimmed short-context blob for prompting and the full history for display.
type Memory struct {
	store  kvstore.Store
	logger logger.ILogger
	ttl    time.Duration
	window int
	now    func() time.Time
}

func NewMemory(store kvstore.Store, log logger.ILogger, cfg Config) *Memory {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = DefaultShortWindow
	}
	return &Memory{
		store:  store,
		logger: log,
		ttl:    cfg.TTL,
		window: cfg.ShortWindow,
		now:    time.Now,
	}
}

func contextKey(sessionID string) string { return contextKeyPrefix + sessionID }
func historyKey(sessionID string) string { return historyKeyPrefix + sessionID }

// LoadContext returns the short view. Store or decode failures yield an
// empty view.
func (m *Memory) LoadContext(ctx context.Context, sessionID string) Data {
	data, err := m.readContext(ctx, sessionID)
	if err != nil {
		m.logger.Warn("SessionMemory", "Failed to load session context", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return Data{SessionID: sessionID, Messages: []Message{}}
	}
	return data
}

// LoadHistory returns the full view, or an empty slice on any failure.
func (m *Memory) LoadHistory(ctx context.Context, sessionID string) []Message {
	messages, err := m.readHistory(ctx, sessionID)
	if err != nil {
		m.logger.Warn("SessionMemory", "Failed to load session history", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return []Message{}
	}
	return messages
}

// readContext reports a miss as an empty view and a failed read or an
// unreadable blob as an error.
func (m *Memory) readContext(ctx context.Context, sessionID string) (Data, error) {
	data := Data{SessionID: sessionID, Messages: []Message{}}

	raw, found, err := m.store.Get(ctx, contextKey(sessionID))
	if err != nil {
		return data, fmt.Errorf("read session context: %w", err)
	}
	if !found {
		return data, nil
	}

	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Data{SessionID: sessionID, Messages: []Message{}}, fmt.Errorf("decode session context: %w", err)
	}
	if data.Messages == nil {
		data.Messages = []Message{}
	}
	data.SessionID = sessionID
	return data, nil
}

func (m *Memory) readHistory(ctx context.Context, sessionID string) ([]Message, error) {
	raw, found, err := m.store.Get(ctx, historyKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("read session history: %w", err)
	}
	if !found {
		return []Message{}, nil
	}

	var h historyData
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, fmt.Errorf("decode session history: %w", err)
	}
	if h.Messages == nil {
		return []Message{}, nil
	}
	return h.Messages, nil
}

// SaveContext writes the short view, keeping only the last window messages.
func (m *Memory) SaveContext(ctx context.Context, data Data) error {
	if len(data.Messages) > m.window {
		data.Messages = data.Messages[len(data.Messages)-m.window:]
	}
	now := m.now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.LastActive = now

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session context: %w", err)
	}
	return m.store.SetWithTTL(ctx, contextKey(data.SessionID), string(payload), m.ttl)
}

// SaveHistory writes the full view untrimmed.
func (m *Memory) SaveHistory(ctx context.Context, sessionID string, messages []Message) error {
	payload, err := json.Marshal(historyData{SessionID: sessionID, Messages: messages})
	if err != nil {
		return fmt.Errorf("encode session history: %w", err)
	}
	return m.store.SetWithTTL(ctx, historyKey(sessionID), string(payload), m.ttl)
}

// AppendExchange appends one user/assistant turn to both views and stores
// the session mood and preferences. A view whose current value could not
// be read is left untouched rather than overwritten with just this turn;
// an unreadable blob then ages out with its TTL.
func (m *Memory) AppendExchange(ctx context.Context, sessionID, mood string, prefs feedback.Preferences, user, assistant Message) error {
	var errs []error

	data, err := m.readContext(ctx, sessionID)
	if err != nil {
		errs = append(errs, err)
	} else {
		data.Messages = append(data.Messages, user, assistant)
		data.Mood = mood
		data.Preferences = &prefs
		errs = append(errs, m.SaveContext(ctx, data))
	}

	history, err := m.readHistory(ctx, sessionID)
	if err != nil {
		errs = append(errs, err)
	} else {
		history = append(history, user, assistant)
		errs = append(errs, m.SaveHistory(ctx, sessionID, history))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	m.logger.Debug("SessionMemory", "Saved exchange", map[string]interface{}{
		"session_id":   sessionID,
		"context_size": min(len(data.Messages), m.window),
		"history_size": len(history),
	})
	return nil
}

// Clear deletes both views.
func (m *Memory) Clear(ctx context.Context, sessionID string) error {
	return errors.Join(
		m.store.Delete(ctx, contextKey(sessionID)),
		m.store.Delete(ctx, historyKey(sessionID)),
	)
}
