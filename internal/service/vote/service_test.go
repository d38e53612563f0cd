package vote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"public-pulse/internal/domain"
	"public-pulse/internal/mocks"
	"public-pulse/internal/repository"
	"public-pulse/internal/service/vote"
)

type fixture struct {
	issues   *mocks.IssueRepository
	comments *mocks.CommentRepository
	votes    *mocks.VoteRepository
	tx       *mocks.Transactor
	svc      vote.Service
}

func newFixture() *fixture {
	f := &fixture{
		issues:   new(mocks.IssueRepository),
		comments: new(mocks.CommentRepository),
		votes:    new(mocks.VoteRepository),
	}
	f.tx = &mocks.Transactor{Repos: &repository.Repositories{
		Issue:   f.issues,
		Comment: f.comments,
		Vote:    f.votes,
	}}
	f.svc = vote.NewService(f.tx, f.votes)
	return f
}

func TestVoteService_Toggle(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: uuid.New(), Role: domain.RoleCitizen}
	issueID := uuid.New()
	target := domain.VoteTarget{IssueID: &issueID}

	t.Run("First vote is created", func(t *testing.T) {
		f := newFixture()
		f.issues.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID}, nil).Once()
		f.votes.On("DeleteIfType", ctx, actor.ID, target, domain.VoteUp).Return(false, nil).Once()
		f.votes.On("Upsert", ctx, mock.MatchedBy(func(v *domain.Vote) bool {
			return v.Type == domain.VoteUp && v.UserID == actor.ID && *v.IssueID == issueID && v.CommentID == nil
		})).Return(nil).Once()

		v, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: domain.VoteUp, VoteTarget: target})

		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, domain.VoteUp, v.Type)
		assert.Equal(t, 1, f.tx.Calls)
		f.votes.AssertExpectations(t)
	})

	t.Run("Same type again removes the vote", func(t *testing.T) {
		f := newFixture()
		f.issues.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID}, nil).Once()
		f.votes.On("DeleteIfType", ctx, actor.ID, target, domain.VoteUp).Return(true, nil).Once()

		v, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: domain.VoteUp, VoteTarget: target})

		require.NoError(t, err)
		assert.Nil(t, v)
		f.votes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Opposite type flips the vote", func(t *testing.T) {
		f := newFixture()
		f.issues.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID}, nil).Once()
		f.votes.On("DeleteIfType", ctx, actor.ID, target, domain.VoteDown).Return(false, nil).Once()
		f.votes.On("Upsert", ctx, mock.AnythingOfType("*domain.Vote")).Return(nil).Once()

		v, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: domain.VoteDown, VoteTarget: target})

		require.NoError(t, err)
		assert.Equal(t, domain.VoteDown, v.Type)
	})

	t.Run("Comment target must exist", func(t *testing.T) {
		f := newFixture()
		commentID := uuid.New()
		f.comments.On("GetByID", ctx, commentID).Return(nil, nil).Once()

		_, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: domain.VoteUp, VoteTarget: domain.VoteTarget{CommentID: &commentID}})

		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.votes.AssertNotCalled(t, "DeleteIfType", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Both targets rejected before the transaction", func(t *testing.T) {
		f := newFixture()
		commentID := uuid.New()

		_, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: domain.VoteUp, VoteTarget: domain.VoteTarget{IssueID: &issueID, CommentID: &commentID}})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("Unknown type", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: "SIDEWAYS", VoteTarget: target})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Upsert failure surfaces", func(t *testing.T) {
		f := newFixture()
		f.issues.On("GetByID", ctx, issueID).Return(&domain.Issue{ID: issueID}, nil).Once()
		f.votes.On("DeleteIfType", ctx, actor.ID, target, domain.VoteUp).Return(false, nil).Once()
		f.votes.On("Upsert", ctx, mock.Anything).Return(errors.New("db down")).Once()

		v, err := f.svc.Toggle(ctx, actor, domain.VoteInput{Type: domain.VoteUp, VoteTarget: target})

		assert.Error(t, err)
		assert.Nil(t, v)
	})
}

func TestVoteService_Summary(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()
	target := domain.VoteTarget{IssueID: &issueID}
	viewer := &domain.User{ID: uuid.New()}
	up := domain.VoteUp

	f := newFixture()
	f.votes.On("Summary", ctx, target, &viewer.ID).Return(domain.VoteSummary{Upvotes: 3, Downvotes: 1, UserVote: &up}, nil).Once()
	f.votes.On("Summary", ctx, target, (*uuid.UUID)(nil)).Return(domain.VoteSummary{Upvotes: 3, Downvotes: 1}, nil).Once()

	mine, err := f.svc.Summary(ctx, target, viewer)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteUp, *mine.UserVote)

	anon, err := f.svc.Summary(ctx, target, nil)
	require.NoError(t, err)
	assert.Nil(t, anon.UserVote)
	assert.Equal(t, int64(3), anon.Upvotes)
}
