package handlers

import (
	"log"

	"backstage-brain-backend/internal/middleware"
	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// requireCaller resolves the authenticated user or writes a 401.
func requireCaller(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
		return uuid.Nil, false
	}
	return userID, true
}

// eventIDParam parses the :id route param or writes a 400.
func eventIDParam(c *fiber.Ctx) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event ID",
		})
		return uuid.Nil, false
	}
	return eventID, true
}

// requireRole checks the caller's role on the event against a threshold.
// A missing role and an insufficient role are both 403, never 404: an
// authorization failure must not leak event existence.
func requireRole(c *fiber.Ctx, events repo.EventRepoInterface, userID, eventID uuid.UUID, threshold models.UserRole) (models.UserRole, bool) {
	role, found, err := events.RoleFor(userID, eventID)
	if err != nil {
		log.Println(err, "Error resolving event role")
		c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify event access",
		})
		return "", false
	}
	if !found {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
		return "", false
	}
	if !role.HasAtLeast(threshold) {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
		return "", false
	}
	return role, true
}
