package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates the local account for a verified identity under the given role.
func (h *AuthHandler) Signup(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := middleware.GetIdentity(c)
		if identity == nil {
			return middleware.Unauthorized("Authentication required")
		}

		var input domain.SignupInput
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
		if input.Name == "" {
			input.Name = identity.Name
		}
		if input.Email == "" {
			input.Email = identity.Email
		}
		if err := validateInput(&input); err != nil {
			return err
		}

		created, err := h.authService.Signup(c.Context(), identity, role, input)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"user":    created,
		})
	}
}

func (h *AuthHandler) Profile(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}

		profile, err := h.authService.Profile(c.Context(), user, role)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": profile})
	}
}
