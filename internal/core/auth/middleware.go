package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// Protect returns middleware that rejects requests without a valid Bearer
// token and stashes the authenticated user id in request locals.
func Protect(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return unauthorized(c)
		}
		userID, err := service.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			return unauthorized(c)
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by Protect.
func UserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Not authorized",
	})
}
