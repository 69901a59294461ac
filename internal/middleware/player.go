package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const maxPlayerIDLength = 64

// EnsurePlayerID stores the caller's id in c.Locals("playerID"), taken from the
// X-Player-ID header or the playerId query parameter. Surrounding whitespace is
// dropped; ids must be at most 64 letters, digits, '-', '_' or '.'.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get("X-Player-ID"))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query("playerId"))
		}

		if playerID == "" {
			log.Debugf("%s %s: missing player id", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if !validPlayerID(playerID) {
			log.Debugf("%s %s: rejected player id %q", c.Method(), c.Path(), playerID)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Player ID must be at most 64 letters, digits, '-', '_' or '.'.",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}

func validPlayerID(id string) bool {
	if len(id) > maxPlayerIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
