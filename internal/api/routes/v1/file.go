package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerFiles(r fiber.Router, deps *Deps) {
	// Initialize handler
	fileHandler := handlers.NewFileHandler(deps.Events, deps.Files, deps.Categories, deps.Store)

	// Register routes
	r.Get("/events/:id/files", fileHandler.ListFiles)
	r.Post("/events/:id/upload", fileHandler.UploadFile)
	r.Delete("/events/:id/upload", fileHandler.DeleteFile)
}
