package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type DashboardService struct {
	mock.Mock
}

func (m *DashboardService) GetStats(ctx context.Context) (*domain.IssueStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueStats), args.Error(1)
}
