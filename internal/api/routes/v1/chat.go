package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerChat(r fiber.Router, deps *Deps) {
	// Initialize handler
	chatHandler := handlers.NewChatHandler(deps.Events, deps.Chats, deps.Chat, deps.Limiter)

	// Register routes
	r.Get("/events/:id/chat", chatHandler.GetHistory)
	r.Post("/events/:id/chat", chatHandler.PostMessage)
}
