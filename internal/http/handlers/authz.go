package handlers

import (
	"stockroom/internal/domain"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AttachUser puts the logged-in operator, if any, into Locals.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) string {
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		return u.ID
	}
	return ""
}
