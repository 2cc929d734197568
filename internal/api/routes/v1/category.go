package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerCategories(r fiber.Router, deps *Deps) {
	// Initialize handler
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)

	// Register routes
	r.Get("/categories", categoryHandler.ListCategories)
}
