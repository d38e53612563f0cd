package comment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
	"public-pulse/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateCommentInput) (*domain.Comment, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID, params domain.PaginationParams, viewer *domain.User) (*domain.CommentThreadPage, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
}

type service struct {
	tx          repository.Transactor
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
	voteRepo    repository.VoteRepository
}

func NewService(tx repository.Transactor, commentRepo repository.CommentRepository, issueRepo repository.IssueRepository, voteRepo repository.VoteRepository) Service {
	return &service{
		tx:          tx,
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
		voteRepo:    voteRepo,
	}
}

func summaryOf(user *domain.User) *domain.UserSummary {
	return &domain.UserSummary{ID: user.ID, Name: user.Name, Role: user.Role, ProfileURL: user.ProfileURL}
}

// Create stores a top-level comment or a reply and notifies the issue author or the
// parent comment's author in the same transaction. Nobody is notified about their own
// comment.
func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateCommentInput) (*domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.InvalidInput("Content is required")
	}
	if input.IssueID == nil && input.ParentID == nil {
		return nil, domain.InvalidInput("Either issue_id or parent_id is required")
	}
	if input.IssueID != nil && input.ParentID != nil {
		return nil, domain.InvalidInput("A comment belongs to either an issue or a parent comment, not both")
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		Content:  content,
		AuthorID: actor.ID,
		IssueID:  input.IssueID,
		ParentID: input.ParentID,
	}

	err := s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		var notif *domain.Notification

		if input.IssueID != nil {
			issue, err := repos.Issue.GetByID(ctx, *input.IssueID)
			if err != nil {
				return err
			}
			if issue == nil {
				return domain.NotFound("Issue not found")
			}
			if issue.AuthorID != actor.ID {
				notif = notification.NewComment(issue)
			}
		} else {
			parent, err := repos.Comment.GetByID(ctx, *input.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.NotFound("Parent comment not found")
			}
			if parent.AuthorID != actor.ID {
				rootID, err := repos.Comment.RootIssueID(ctx, parent.ID)
				if err != nil {
					return err
				}
				if rootID == nil {
					return domain.NotFound("Issue not found")
				}
				issue, err := repos.Issue.GetByID(ctx, *rootID)
				if err != nil {
					return err
				}
				if issue == nil {
					return domain.NotFound("Issue not found")
				}
				notif = notification.NewReply(parent, issue)
			}
		}

		if err := repos.Comment.Create(ctx, comment); err != nil {
			return err
		}
		if notif != nil {
			return repos.Notification.Create(ctx, notif)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var replies int64
	comment.Author = summaryOf(actor)
	comment.ReplyCount = &replies
	return comment, nil
}

func (s *service) ListByIssue(ctx context.Context, issueID uuid.UUID, params domain.PaginationParams, viewer *domain.User) (*domain.CommentThreadPage, error) {
	params.Validate()

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.NotFound("Issue not found")
	}

	comments, total, err := s.commentRepo.ListTopLevel(ctx, issueID, params)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]uuid.UUID, len(comments))
	for i := range comments {
		parentIDs[i] = comments[i].ID
	}
	replies, err := s.commentRepo.ListReplies(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	allIDs := append([]uuid.UUID{}, parentIDs...)
	for _, reply := range replies {
		allIDs = append(allIDs, reply.ID)
	}

	var viewerID *uuid.UUID
	if viewer != nil {
		viewerID = &viewer.ID
	}
	votes, err := s.voteRepo.SummariesByComment(ctx, allIDs, viewerID)
	if err != nil {
		return nil, err
	}

	repliesByParent := make(map[uuid.UUID][]domain.Comment, len(comments))
	for _, reply := range replies {
		summary := votes[reply.ID]
		reply.Votes = &summary
		repliesByParent[*reply.ParentID] = append(repliesByParent[*reply.ParentID], reply)
	}

	for i := range comments {
		summary := votes[comments[i].ID]
		comments[i].Votes = &summary
		comments[i].Replies = repliesByParent[comments[i].ID]
		if comments[i].Replies == nil {
			comments[i].Replies = []domain.Comment{}
		}
	}

	totalComments, err := s.commentRepo.CountThread(ctx, issueID)
	if err != nil {
		return nil, err
	}

	return &domain.CommentThreadPage{
		PaginatedResponse: domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total),
		TotalComments:     totalComments,
	}, nil
}

func (s *service) authored(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.NotFound("Comment not found")
	}
	if comment.AuthorID != actor.ID && !actor.IsAdmin() {
		return nil, domain.Forbidden("You can only modify your own comments")
	}
	return comment, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateCommentInput) (*domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.InvalidInput("Content is required")
	}

	comment, err := s.authored(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the comment together with every reply beneath it and their votes.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	if _, err := s.authored(ctx, id, actor); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		ids, err := repos.Comment.SubtreeIDs(ctx, id)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return domain.NotFound("Comment not found")
		}
		if err := repos.Vote.DeleteByComments(ctx, ids); err != nil {
			return err
		}
		return repos.Comment.DeleteMany(ctx, ids)
	})
}
