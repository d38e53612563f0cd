package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.commentService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment created successfully",
		"comment": created,
	})
}

func (h *CommentHandler) ListByIssue(c *fiber.Ctx) error {
	issueID, err := paramUUID(c, "issueId", "issue")
	if err != nil {
		return err
	}

	result, err := h.commentService.ListByIssue(c.Context(), issueID, getPaginationParams(c), middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "comment")
	if err != nil {
		return err
	}

	var input domain.UpdateCommentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.commentService.Update(c.Context(), id, user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment updated successfully",
		"comment": updated,
	})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "comment")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Context(), id, user); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Comment deleted successfully"})
}
