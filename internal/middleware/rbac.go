package middleware

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
)

// RequireRole admits users holding any of roles. Admins are always admitted.
func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasAnyRole(roles...) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
