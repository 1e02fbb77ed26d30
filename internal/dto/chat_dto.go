package dto

import "time"

type SendChatRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=1000"`
	Mood      string `json:"mood,omitempty" validate:"omitempty,oneof=professional genz"`
	SessionId string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

type ChatRAGInfo struct {
	ChunksUsed int     `json:"chunks_used"`
	Score      float64 `json:"score"`
	Relevant   *bool   `json:"relevant,omitempty"`
}

type SendChatResponse struct {
	SessionId  string       `json:"session_id"`
	Content    string       `json:"content"`
	Mood       string       `json:"mood"`
	Stage      string       `json:"stage"`
	Category   string       `json:"category,omitempty"`
	ErrorType  string       `json:"error_type,omitempty"`
	RAG        *ChatRAGInfo `json:"rag,omitempty"`
	MoodScore  *int         `json:"mood_score,omitempty"`
	WordCount  int          `json:"word_count,omitempty"`
	IsFeedback bool         `json:"is_feedback,omitempty"`
}

type ChatHistoryRequest struct {
	SessionId string `json:"session_id" validate:"required,max=128"`
}

type ChatHistoryMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood,omitempty"`
}

type ChatHistoryResponse struct {
	SessionId string               `json:"session_id"`
	Messages  []ChatHistoryMessage `json:"messages"`
}

type MoodResponse struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
}

// ChatStreamFrame is one SSE or websocket frame of a streamed reply.
type ChatStreamFrame struct {
	Type      string `json:"type"` // "start" | "token" | "done" | "error" | "reset"
	SessionId string `json:"session_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Stage     string `json:"stage,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

const (
	FrameStart = "start"
	FrameToken = "token"
	FrameDone  = "done"
	FrameError = "error"
	FrameReset = "reset"
)
