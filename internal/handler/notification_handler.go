package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryBool("unread", false)

	result, err := h.notificationService.List(c.Context(), user.ID, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.GetUnreadCount(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "notification")
	if err != nil {
		return err
	}

	updated, err := h.notificationService.MarkAsRead(c.Context(), user.ID, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Notification marked as read",
		"notification": updated,
	})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.MarkAllAsRead(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
		"count":   count,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notificationService.Delete(c.Context(), user.ID, id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification deleted successfully"})
}
