package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type AnalysisService struct {
	mock.Mock
}

func (m *AnalysisService) Severity(ctx context.Context, title, description string) (int, error) {
	args := m.Called(ctx, title, description)
	return args.Int(0), args.Error(1)
}

func (m *AnalysisService) Department(ctx context.Context, title, description string) (*uuid.UUID, error) {
	args := m.Called(ctx, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *AnalysisService) Analyze(ctx context.Context, title, description string) domain.Analysis {
	args := m.Called(ctx, title, description)
	return args.Get(0).(domain.Analysis)
}
