package v1

import (
	"backstage-brain-backend/internal/auth"
	"backstage-brain-backend/internal/chat"
	"backstage-brain-backend/internal/ratelimit"
	"backstage-brain-backend/internal/repo"
	"backstage-brain-backend/internal/storage"
	"backstage-brain-backend/internal/timeline"

	"github.com/gofiber/fiber/v2"
)

// Deps carries everything the route registrars need, wired up once in main.
type Deps struct {
	Users      repo.UserRepoInterface
	Events     repo.EventRepoInterface
	Files      repo.FileRepoInterface
	Chats      repo.ChatRepoInterface
	Timelines  repo.TimelineRepoInterface
	Categories repo.CategoryRepoInterface

	Tokens *auth.TokenManager
	Store  storage.ObjectStore

	Chat     *chat.Engine
	Timeline *timeline.Engine

	// Limiter may be nil; chat then runs unthrottled.
	Limiter *ratelimit.FixedWindowLimiter
}

func RegisterRoutes(r fiber.Router, deps *Deps) {
	registerHealth(r)
	registerAuth(r, deps)
	registerEvents(r, deps)
	registerFiles(r, deps)
	registerChat(r, deps)
	registerTimeline(r, deps)
	registerDashboard(r, deps)
	registerCategories(r, deps)
}

func registerHealth(r fiber.Router) {
	r.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})
}
