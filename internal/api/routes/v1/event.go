package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerEvents(r fiber.Router, deps *Deps) {
	// Initialize handler
	eventHandler := handlers.NewEventHandler(deps.Events)

	// Register routes
	r.Get("/events", eventHandler.ListEvents)
	r.Post("/events", eventHandler.CreateEvent)
	r.Get("/events/:id", eventHandler.GetEvent)
	r.Put("/events/:id", eventHandler.UpdateEvent)
	r.Delete("/events/:id", eventHandler.ArchiveEvent)
}
