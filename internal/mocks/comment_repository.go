package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) ListTopLevel(ctx context.Context, issueID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, issueID, params)
	return args.Get(0).([]domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *CommentRepository) ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, parentIDs)
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) CountThread(ctx context.Context, issueID uuid.UUID) (int64, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) RootIssueID(ctx context.Context, commentID uuid.UUID) (*uuid.UUID, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *CommentRepository) SubtreeIDs(ctx context.Context, commentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *CommentRepository) ThreadIDs(ctx context.Context, issueID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *CommentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
