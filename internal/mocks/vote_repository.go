package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type VoteRepository struct {
	mock.Mock
}

func (m *VoteRepository) DeleteIfType(ctx context.Context, userID uuid.UUID, target domain.VoteTarget, voteType domain.VoteType) (bool, error) {
	args := m.Called(ctx, userID, target, voteType)
	return args.Bool(0), args.Error(1)
}

func (m *VoteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *VoteRepository) Summary(ctx context.Context, target domain.VoteTarget, viewerID *uuid.UUID) (domain.VoteSummary, error) {
	args := m.Called(ctx, target, viewerID)
	return args.Get(0).(domain.VoteSummary), args.Error(1)
}

func (m *VoteRepository) SummariesByIssue(ctx context.Context, issueIDs []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error) {
	args := m.Called(ctx, issueIDs, viewerID)
	return args.Get(0).(map[uuid.UUID]domain.VoteSummary), args.Error(1)
}

func (m *VoteRepository) SummariesByComment(ctx context.Context, commentIDs []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error) {
	args := m.Called(ctx, commentIDs, viewerID)
	return args.Get(0).(map[uuid.UUID]domain.VoteSummary), args.Error(1)
}

func (m *VoteRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}

func (m *VoteRepository) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	args := m.Called(ctx, commentIDs)
	return args.Error(0)
}

func (m *VoteRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
