package middleware

import (
	"strings"

	"backstage-brain-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const callerIDKey = "callerID"

// ResolveUser extracts the bearer token and, when it verifies, stores the
// caller's user id in the request locals. A missing or invalid token never
// aborts the request; handlers decide whether an identity is required.
func ResolveUser(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if userID, err := tokens.Verify(token); err == nil {
				c.Locals(callerIDKey, userID)
			}
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user's id, when one resolved.
func CallerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(callerIDKey).(uuid.UUID)
	return id, ok
}
