package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerTimeline(r fiber.Router, deps *Deps) {
	// Initialize handler
	timelineHandler := handlers.NewTimelineHandler(deps.Events, deps.Timelines, deps.Timeline, deps.Limiter)

	// Register routes
	r.Get("/events/:id/timeline", timelineHandler.ListEntries)
	r.Post("/events/:id/timeline", timelineHandler.CreateEntry)
	r.Post("/events/:id/timeline/generate", timelineHandler.GenerateTimeline)
	r.Get("/events/:id/timeline/cache", timelineHandler.GetCachedTimeline)
}
