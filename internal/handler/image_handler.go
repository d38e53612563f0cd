package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/service/image"
)

type ImageHandler struct {
	imageService image.Service
}

func NewImageHandler(imageService image.Service) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) ListByUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	userID, err := paramUUID(c, "userId", "user")
	if err != nil {
		return err
	}

	if actor.ID != userID && !actor.HasAnyRole(domain.RoleAdmin) {
		return domain.Forbidden("You can only list your own images")
	}

	images, err := h.imageService.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"images": images})
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "imageId", "image")
	if err != nil {
		return err
	}

	if err := h.imageService.Delete(c.Context(), actor, id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Image deleted successfully"})
}
