package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"backstage-brain-backend/internal/chat"
	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/ratelimit"
	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const chatTimeout = 60 * time.Second

type ChatHandler struct {
	events  repo.EventRepoInterface
	chats   repo.ChatRepoInterface
	engine  *chat.Engine
	limiter *ratelimit.FixedWindowLimiter
}

func NewChatHandler(events repo.EventRepoInterface, chats repo.ChatRepoInterface, engine *chat.Engine, limiter *ratelimit.FixedWindowLimiter) *ChatHandler {
	return &ChatHandler{events: events, chats: chats, engine: engine, limiter: limiter}
}

// GetHistory returns the caller's conversation for the event, oldest first.
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff); !ok {
		return nil
	}

	messages, err := h.chats.ListForUserEvent(userID, eventID)
	if err != nil {
		log.Println(err, "Error fetching chat history")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch chat history",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"messages": messages,
	})
}

// PostMessage runs one chat turn grounded in the event's documents. With
// ?stream=1 the response is newline-delimited JSON envelopes; otherwise a
// single JSON body with the full answer.
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	userID, ok := requireCaller(c)
	if !ok {
		return nil
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return nil
	}
	if _, ok := requireRole(c, h.events, userID, eventID, models.RoleStaff); !ok {
		return nil
	}

	if !h.limiter.Allow(userID.String()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests. Please try again later.",
		})
	}

	var dto struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Validated here so the streaming variant can reject with a real 400;
	// once the stream writer is registered the status is already committed.
	if strings.TrimSpace(dto.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	if c.Query("stream") == "1" {
		return h.streamMessage(c, userID, eventID, dto.Message)
	}

	ctx, cancel := context.WithTimeout(c.Context(), chatTimeout)
	defer cancel()

	turn, err := h.engine.Answer(ctx, userID, eventID, dto.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}
	if err != nil {
		log.Println(err, "Error generating chat response")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate a response",
		})
	}

	return c.Status(fiber.StatusOK).JSON(turn)
}

// streamMessage writes the chat turn as NDJSON envelopes. The body stream
// writer runs after this handler returns, so everything it needs is
// captured up front and it carries its own timeout instead of the
// request's context.
func (h *ChatHandler) streamMessage(c *fiber.Ctx, userID, eventID uuid.UUID, message string) error {
	engine := h.engine

	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		enc := json.NewEncoder(w)
		emit := func(env chat.Envelope) error {
			if err := enc.Encode(env); err != nil {
				return err
			}
			return w.Flush()
		}

		err := engine.AnswerStream(ctx, userID, eventID, message, emit)
		if errors.Is(err, chat.ErrEmptyMessage) {
			emit(chat.Envelope{Type: chat.EnvelopeError, Error: "Message is required"})
			return
		}
		if err != nil {
			log.Println(err, "Error streaming chat response")
			emit(chat.Envelope{Type: chat.EnvelopeError, Error: "Failed to generate a response"})
		}
	})
	return nil
}
