package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/service/auth"
)

const (
	UserContextKey     = "user"
	IdentityContextKey = "identity"
)

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}

func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}

// IdentityRequired only verifies the token. Signup routes use it because the caller has
// no local account yet.
func IdentityRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, problem := bearerToken(c)
		if problem != "" {
			return unauthorized(c, problem)
		}

		identity, err := authService.VerifyToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(IdentityContextKey, identity)
		return c.Next()
	}
}

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, problem := bearerToken(c)
		if problem != "" {
			return unauthorized(c, problem)
		}

		identity, err := authService.VerifyToken(token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		user, err := authService.ResolveUser(c.Context(), identity)
		if err != nil {
			if errors.Is(err, auth.ErrNotRegistered) {
				return unauthorized(c, "User not found, complete signup first")
			}
			return err
		}

		c.Locals(IdentityContextKey, identity)
		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

// OptionalAuth resolves the viewer when a usable token is present and never rejects.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, problem := bearerToken(c)
		if problem != "" {
			return c.Next()
		}

		identity, err := authService.VerifyToken(token)
		if err != nil {
			return c.Next()
		}

		if user, err := authService.ResolveUser(c.Context(), identity); err == nil {
			c.Locals(IdentityContextKey, identity)
			c.Locals(UserContextKey, user)
		}
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetIdentity(c *fiber.Ctx) *auth.Identity {
	identity, ok := c.Locals(IdentityContextKey).(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
