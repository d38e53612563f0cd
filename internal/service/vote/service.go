package vote

import (
	"context"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
)

type Service interface {
	Toggle(ctx context.Context, actor *domain.User, input domain.VoteInput) (*domain.Vote, error)
	Summary(ctx context.Context, target domain.VoteTarget, viewer *domain.User) (*domain.VoteSummary, error)
}

type service struct {
	tx       repository.Transactor
	voteRepo repository.VoteRepository
}

func NewService(tx repository.Transactor, voteRepo repository.VoteRepository) Service {
	return &service{tx: tx, voteRepo: voteRepo}
}

func ensureTarget(ctx context.Context, repos *repository.Repositories, target domain.VoteTarget) error {
	if target.IssueID != nil {
		issue, err := repos.Issue.GetByID(ctx, *target.IssueID)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.NotFound("Issue not found")
		}
		return nil
	}

	comment, err := repos.Comment.GetByID(ctx, *target.CommentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.NotFound("Comment not found")
	}
	return nil
}

// Toggle applies the vote rules: the same type twice removes the vote, the other type
// replaces it. A nil vote means the user no longer has a vote on the target.
func (s *service) Toggle(ctx context.Context, actor *domain.User, input domain.VoteInput) (*domain.Vote, error) {
	if !input.Type.IsValid() {
		return nil, domain.InvalidInput("Vote type must be UPVOTE or DOWNVOTE")
	}
	if err := input.VoteTarget.Validate(); err != nil {
		return nil, err
	}

	var result *domain.Vote
	err := s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := ensureTarget(ctx, repos, input.VoteTarget); err != nil {
			return err
		}

		removed, err := repos.Vote.DeleteIfType(ctx, actor.ID, input.VoteTarget, input.Type)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}

		vote := &domain.Vote{
			ID:        uuid.New(),
			Type:      input.Type,
			UserID:    actor.ID,
			IssueID:   input.IssueID,
			CommentID: input.CommentID,
		}
		if err := repos.Vote.Upsert(ctx, vote); err != nil {
			return err
		}
		result = vote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Summary(ctx context.Context, target domain.VoteTarget, viewer *domain.User) (*domain.VoteSummary, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	var viewerID *uuid.UUID
	if viewer != nil {
		viewerID = &viewer.ID
	}

	summary, err := s.voteRepo.Summary(ctx, target, viewerID)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
