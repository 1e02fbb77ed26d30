package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital-twin-be/internal/dto"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/internal/pkg/serverutils"
	"digital-twin-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	StreamChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	GetMoods(ctx *fiber.Ctx) error
}

type chatController struct {
	service   service.IChatService
	logger    logger.ILogger
	rateLimit int
}

func NewChatController(service service.IChatService, logger logger.ILogger, rateLimitPerMinute int) IChatController {
	return &chatController{
		service:   service,
		logger:    logger,
		rateLimit: rateLimitPerMinute,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")

	limited := c.limiter()
	h.Post("", limited, c.SendChat)
	h.Post("/stream", limited, c.StreamChat)
	h.Post("/history", c.GetChatHistory)
	h.Delete("/session/:id", c.ClearSession)
	h.Get("/moods", c.GetMoods)
}

// limiter answers in the persona's voice once a client exceeds the
// per-minute budget.
func (c *chatController) limiter() fiber.Handler {
	if c.rateLimit <= 0 {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        c.rateLimit,
		Expiration: time.Minute,
		LimitReached: func(ctx *fiber.Ctx) error {
			var req struct {
				Mood string `json:"mood"`
			}
			_ = ctx.BodyParser(&req)
			msg := c.service.RateLimitMessage(req.Mood)
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(serverutils.CodedErrorResponse(fiber.StatusTooManyRequests, "rate_limit", msg))
		},
	})
}

func (c *chatController) parseSendRequest(ctx *fiber.Ctx) (*dto.SendChatRequest, error) {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	req, err := c.parseSendRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.UserContext(), req)
	if err != nil {
		return c.writeChatError(ctx, err)
	}

	if res.ErrorType != "" {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.Response[*dto.SendChatResponse]{
			Success: false,
			Code:    fiber.StatusUnprocessableEntity,
			Message: res.Content,
			Data:    res,
			Error:   &serverutils.ErrorBody{Code: res.ErrorType, Message: res.Content},
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Reply generated", res))
}

// StreamChat answers with server-sent events, one JSON frame per event.
func (c *chatController) StreamChat(ctx *fiber.Ctx) error {
	req, err := c.parseSendRequest(ctx)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// the fiber ctx is recycled once the handler returns
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx.UserContext()))

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		err := c.service.StreamChat(streamCtx, req, func(frame dto.ChatStreamFrame) error {
			if err := writeSSE(w, frame); err != nil {
				cancel()
				return err
			}
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Warn("ChatController", "Stream ended with error", map[string]interface{}{
				"session_id": req.SessionId,
				"error":      err.Error(),
			})
		}
	})
	return nil
}

func writeSSE(w *bufio.Writer, frame dto.ChatStreamFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	var req dto.ChatHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GetChatHistory(ctx.UserContext(), req.SessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing session id")
	}

	if err := c.service.ClearSession(ctx.UserContext(), sessionId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "Failed to clear session"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}

func (c *chatController) GetMoods(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Available moods", c.service.GetMoods()))
}

func (c *chatController) writeChatError(ctx *fiber.Ctx, err error) error {
	var chatErr *service.ChatError
	if errors.As(err, &chatErr) {
		return ctx.Status(chatErr.Status).JSON(serverutils.CodedErrorResponse(chatErr.Status, chatErr.Code, chatErr.Message))
	}
	return err
}
