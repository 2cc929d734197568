package v1

import (
	"backstage-brain-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerAuth(r fiber.Router, deps *Deps) {
	// Initialize handler
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens)

	// Register routes
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)
}
