package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type VoteService struct {
	mock.Mock
}

func (m *VoteService) Toggle(ctx context.Context, actor *domain.User, input domain.VoteInput) (*domain.Vote, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *VoteService) Summary(ctx context.Context, target domain.VoteTarget, viewer *domain.User) (*domain.VoteSummary, error) {
	args := m.Called(ctx, target, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteSummary), args.Error(1)
}
