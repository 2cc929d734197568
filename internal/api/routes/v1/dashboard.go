package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerDashboard(r fiber.Router, deps *Deps) {
	// Initialize handler
	dashboardHandler := handlers.NewDashboardHandler(deps.Events, deps.Files, deps.Timelines)

	// Register routes
	r.Get("/dashboard/stats", dashboardHandler.GetStats)
}
