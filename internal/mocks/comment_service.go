package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type CommentService struct {
	mock.Mock
}

func (m *CommentService) Create(ctx context.Context, actor *domain.User, input domain.CreateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) ListByIssue(ctx context.Context, issueID uuid.UUID, params domain.PaginationParams, viewer *domain.User) (*domain.CommentThreadPage, error) {
	args := m.Called(ctx, issueID, params, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentThreadPage), args.Error(1)
}

func (m *CommentService) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, id, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}
