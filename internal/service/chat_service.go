package service

import (
	"context"
	"errors"
	"strings"

	"digital-twin-be/internal/dto"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/events"
	"digital-twin-be/pkg/rag/persona"
	"digital-twin-be/pkg/rag/pipeline"
	"digital-twin-be/pkg/rag/session"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const sessionIdPrefix = "session_"

// ChatError is a failure the client should see with a stable code.
type ChatError struct {
	Status  int
	Code    string
	Message string
}

func (e *ChatError) Error() string {
	return e.Code + ": " + e.Message
}

// Executor is the RAG pipeline as used by the service.
type Executor interface {
	Execute(ctx context.Context, req pipeline.Request) (*pipeline.ExecutionResult, error)
	ExecuteStream(ctx context.Context, req pipeline.Request, emit func(fragment string) error) (*pipeline.ExecutionResult, error)
}

// HistoryStore is the display side of session memory.
type HistoryStore interface {
	LoadHistory(ctx context.Context, sessionID string) []session.Message
	Clear(ctx context.Context, sessionID string) error
}

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	StreamChat(ctx context.Context, request *dto.SendChatRequest, emit func(frame dto.ChatStreamFrame) error) error
	GetChatHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error)
	ClearSession(ctx context.Context, sessionId string) error
	GetMoods() []*dto.MoodResponse
	RateLimitMessage(mood string) string
}

type chatService struct {
	executor  Executor
	history   HistoryStore
	catalog   *persona.Catalog
	responder *persona.Responder
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewChatService(
	executor Executor,
	history HistoryStore,
	catalog *persona.Catalog,
	responder *persona.Responder,
	publisher message.Publisher,
	topic string,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		executor:  executor,
		history:   history,
		catalog:   catalog,
		responder: responder,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// NewSessionId mints an id for callers that did not send one.
func NewSessionId() string {
	return sessionIdPrefix + uuid.NewString()
}

func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	req := s.toPipelineRequest(request)

	result, err := s.executor.Execute(ctx, req)
	if err != nil {
		return nil, s.failure(ctx, req, err)
	}

	s.publishResult(ctx, result)
	return toSendChatResponse(result), nil
}

func (s *chatService) StreamChat(ctx context.Context, request *dto.SendChatRequest, emit func(frame dto.ChatStreamFrame) error) error {
	req := s.toPipelineRequest(request)

	if err := emit(dto.ChatStreamFrame{Type: dto.FrameStart, SessionId: req.SessionID}); err != nil {
		return err
	}

	result, err := s.executor.ExecuteStream(ctx, req, func(fragment string) error {
		return emit(dto.ChatStreamFrame{Type: dto.FrameToken, Content: fragment})
	})
	if err != nil {
		failure := s.failure(ctx, req, err)
		var chatErr *ChatError
		if errors.As(failure, &chatErr) {
			return emit(dto.ChatStreamFrame{Type: dto.FrameError, Content: chatErr.Message, ErrorCode: chatErr.Code})
		}
		return failure
	}

	s.publishResult(ctx, result)
	frame := dto.ChatStreamFrame{Type: dto.FrameDone, SessionId: result.SessionID, Stage: string(result.Stage)}
	if result.Rejected() {
		frame.ErrorCode = string(result.Validation.ErrorType)
	}
	return emit(frame)
}

func (s *chatService) GetChatHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	messages := s.history.LoadHistory(ctx, sessionId)

	res := &dto.ChatHistoryResponse{
		SessionId: sessionId,
		Messages:  make([]dto.ChatHistoryMessage, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatHistoryMessage{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Mood:      m.Mood,
		})
	}
	return res, nil
}

func (s *chatService) ClearSession(ctx context.Context, sessionId string) error {
	if err := s.history.Clear(ctx, sessionId); err != nil {
		s.logger.Warn("ChatService", "Failed to clear session", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return err
	}
	s.publish(ctx, events.New(events.TypeSessionReset, map[string]interface{}{
		"session_id": sessionId,
	}))
	return nil
}

func (s *chatService) GetMoods() []*dto.MoodResponse {
	moods := s.catalog.All()
	res := make([]*dto.MoodResponse, 0, len(moods))
	for _, m := range moods {
		res = append(res, &dto.MoodResponse{
			Id:          string(m.ID),
			Name:        m.Name,
			Icon:        m.Icon,
			Description: m.Description,
			Temperature: m.Temperature,
		})
	}
	return res
}

func (s *chatService) RateLimitMessage(mood string) string {
	m, _ := persona.ParseMood(mood)
	return s.responder.Response(persona.KindRateLimit, m)
}

func (s *chatService) toPipelineRequest(request *dto.SendChatRequest) pipeline.Request {
	sessionId := strings.TrimSpace(request.SessionId)
	if sessionId == "" {
		sessionId = NewSessionId()
	}
	return pipeline.Request{
		Message:   request.Message,
		SessionID: sessionId,
		Mood:      request.Mood,
	}
}

// failure maps pipeline errors to client-facing errors and records them.
func (s *chatService) failure(ctx context.Context, req pipeline.Request, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrGeneration):
		s.publish(ctx, events.New(events.TypeChatFailed, map[string]interface{}{
			"session_id": req.SessionID,
			"mood":       req.Mood,
		}))
		return &ChatError{Status: 502, Code: pipeline.GenerationFailedCode, Message: pipeline.GenerationFailedMessage}
	case errors.Is(err, pipeline.ErrEmptyMessage):
		return &ChatError{Status: 400, Code: "empty_message", Message: "Message is required"}
	default:
		return err
	}
}

func (s *chatService) publishResult(ctx context.Context, result *pipeline.ExecutionResult) {
	data := map[string]interface{}{
		"session_id":  result.SessionID,
		"mood":        string(result.Mood),
		"stage":       string(result.Stage),
		"category":    result.Validation.Category,
		"chunks_used": result.ChunksUsed,
		"rag_score":   result.RAGScore,
	}

	eventType := events.TypeChatReplied
	switch result.Stage {
	case pipeline.StageRejected:
		eventType = events.TypeChatRejected
		data["error_type"] = string(result.Validation.ErrorType)
		data["specific_type"] = result.Validation.SpecificType
	case pipeline.StageFallback:
		eventType = events.TypeChatFallback
	}
	if result.MoodCheck != nil {
		data["mood_score"] = result.MoodCheck.Score
		data["mood_compliant"] = result.MoodCheck.Compliant
	}
	if result.Feedback != nil {
		data["feedback_type"] = string(result.Feedback.Type)
	}

	s.publish(ctx, events.New(eventType, data))
}

// publish is fire-and-forget; the bus never fails a chat turn.
func (s *chatService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	payload, err := events.Marshal(event)
	if err != nil {
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Warn("ChatService", "Failed to publish chat event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func toSendChatResponse(result *pipeline.ExecutionResult) *dto.SendChatResponse {
	res := &dto.SendChatResponse{
		SessionId:  result.SessionID,
		Content:    result.Content,
		Mood:       string(result.Mood),
		Stage:      string(result.Stage),
		Category:   result.Validation.Category,
		ErrorType:  string(result.Validation.ErrorType),
		IsFeedback: result.Feedback != nil && result.Feedback.IsProfessional,
	}
	if !result.Rejected() {
		res.RAG = &dto.ChatRAGInfo{ChunksUsed: result.ChunksUsed, Score: result.RAGScore}
		if result.Relevance != nil {
			relevant := result.Relevance.IsRelevant
			res.RAG.Relevant = &relevant
		}
	}
	if result.MoodCheck != nil {
		score := result.MoodCheck.Score
		res.MoodScore = &score
	}
	if result.Length != nil {
		res.WordCount = result.Length.WordCount
	}
	return res
}
