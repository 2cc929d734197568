package routes

import (
	v1 "backstage-brain-backend/internal/api/routes/v1"
	"backstage-brain-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Register(app *fiber.App, deps *v1.Deps) {
	// API v1 group. Token resolution runs for every API route; handlers
	// decide whether an anonymous caller is acceptable.
	api := app.Group("/api", middleware.ResolveUser(deps.Tokens))
	v1Group := api.Group("/v1")

	// Register v1 routes
	v1.RegisterRoutes(v1Group, deps)
}
