package handler

import (
	"context"
	"encoding/json"
	"errors"

	"digital-twin-be/internal/dto"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/internal/pkg/serverutils"
	"digital-twin-be/internal/service"
	internalWS "digital-twin-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatSocketHandler serves the streaming chat over a websocket. Each inbound
// text frame is a SendChatRequest; replies use the same frames as SSE.
type ChatSocketHandler struct {
	service service.IChatService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewChatSocketHandler(service service.IChatService, hub *internalWS.Hub, log logger.ILogger) *ChatSocketHandler {
	return &ChatSocketHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

func (h *ChatSocketHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/chat/v1/ws", h.ServeWs)
}

func (h *ChatSocketHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionID := c.Query("session_id")
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatSocketHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID, h.handleTurn)
		h.logger.Info("ChatSocketHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}

func (h *ChatSocketHandler) handleTurn(ctx context.Context, client *internalWS.Client, raw []byte) {
	var req dto.SendChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		_ = client.Emit(dto.ChatStreamFrame{Type: dto.FrameError, ErrorCode: "invalid_request", Content: "Invalid request body"})
		return
	}
	if req.SessionId == "" {
		req.SessionId = client.SessionID()
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		_ = client.Emit(dto.ChatStreamFrame{Type: dto.FrameError, ErrorCode: "validation_error", Content: err.Error()})
		return
	}

	err := h.service.StreamChat(ctx, &req, func(frame dto.ChatStreamFrame) error {
		if frame.Type == dto.FrameStart {
			h.hub.Bind(client, frame.SessionId)
		}
		return client.Emit(frame)
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, internalWS.ErrClientClosed) {
		h.logger.Warn("ChatSocketHandler", "Turn ended with error", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}
}
