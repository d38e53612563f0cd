package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type ImageRepository struct {
	mock.Mock
}

func (m *ImageRepository) Create(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *ImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *ImageRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.Image, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *ImageRepository) ListByIssues(ctx context.Context, issueIDs []uuid.UUID) ([]domain.Image, error) {
	args := m.Called(ctx, issueIDs)
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *ImageRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Image, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.Image), args.Error(1)
}

func (m *ImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ImageRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}
