package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type ImageService struct {
	mock.Mock
}

func (m *ImageService) Sign(ctx context.Context, images []domain.Image) {
	m.Called(ctx, images)
}

func (m *ImageService) AttachToIssues(ctx context.Context, issues []domain.Issue, firstOnly bool) error {
	args := m.Called(ctx, issues, firstOnly)
	return args.Error(0)
}

func (m *ImageService) Delete(ctx context.Context, actor *domain.User, imageID uuid.UUID) error {
	args := m.Called(ctx, actor, imageID)
	return args.Error(0)
}

func (m *ImageService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Image, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Image), args.Error(1)
}
