package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/service/vote"
)

type VoteHandler struct {
	voteService vote.Service
}

func NewVoteHandler(voteService vote.Service) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Toggle records a vote, flips its type, or removes it when the same type is sent twice.
func (h *VoteHandler) Toggle(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.VoteInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	recorded, err := h.voteService.Toggle(c.Context(), user, input)
	if err != nil {
		return err
	}

	if recorded == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Vote removed successfully",
			"vote":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Vote recorded successfully",
		"vote":    recorded,
	})
}

func (h *VoteHandler) Summary(c *fiber.Ctx) error {
	var (
		target domain.VoteTarget
		err    error
	)
	if target.IssueID, err = queryUUID(c, "issue_id"); err != nil {
		return err
	}
	if target.CommentID, err = queryUUID(c, "comment_id"); err != nil {
		return err
	}

	summary, err := h.voteService.Summary(c.Context(), target, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"votes": summary})
}
