package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type StatusHistoryRepository struct {
	mock.Mock
}

func (m *StatusHistoryRepository) Create(ctx context.Context, entry *domain.StatusHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *StatusHistoryRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.StatusHistory, error) {
	args := m.Called(ctx, issueID)
	return args.Get(0).([]domain.StatusHistory), args.Error(1)
}

func (m *StatusHistoryRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}
