package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"public-pulse/internal/domain"
)

type VoteRepository interface {
	DeleteIfType(ctx context.Context, userID uuid.UUID, target domain.VoteTarget, voteType domain.VoteType) (bool, error)
	Upsert(ctx context.Context, vote *domain.Vote) error
	Summary(ctx context.Context, target domain.VoteTarget, viewerID *uuid.UUID) (domain.VoteSummary, error)
	SummariesByIssue(ctx context.Context, issueIDs []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error)
	SummariesByComment(ctx context.Context, commentIDs []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error)
	DeleteByIssue(ctx context.Context, issueID uuid.UUID) error
	DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type voteRepository struct {
	db DBTX
}

func NewVoteRepository(db DBTX) VoteRepository {
	return &voteRepository{db: db}
}

func targetColumn(target domain.VoteTarget) (string, uuid.UUID) {
	if target.IssueID != nil {
		return "issue_id", *target.IssueID
	}
	return "comment_id", *target.CommentID
}

// DeleteIfType removes the user's vote on target only when it has the given type.
// It reports whether a row was removed.
func (r *voteRepository) DeleteIfType(ctx context.Context, userID uuid.UUID, target domain.VoteTarget, voteType domain.VoteType) (bool, error) {
	column, targetID := targetColumn(target)
	query := `DELETE FROM votes WHERE user_id = $1 AND ` + column + ` = $2 AND type = $3`

	result, err := r.db.ExecContext(ctx, query, userID, targetID, voteType)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Upsert inserts the vote or flips the type of the user's existing vote on the same
// target. The partial unique indexes make this safe under concurrent submissions.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	column, targetID := targetColumn(domain.VoteTarget{IssueID: vote.IssueID, CommentID: vote.CommentID})
	query := `
		INSERT INTO votes (vote_id, type, user_id, ` + column + `)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, ` + column + `) WHERE ` + column + ` IS NOT NULL
		DO UPDATE SET type = EXCLUDED.type, updated_at = NOW()
		RETURNING vote_id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query, vote.ID, vote.Type, vote.UserID, targetID).
		Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
}

type voteSummaryRow struct {
	TargetID  uuid.UUID        `db:"target_id"`
	Upvotes   int64            `db:"upvotes"`
	Downvotes int64            `db:"downvotes"`
	UserVote  *domain.VoteType `db:"user_vote"`
}

func (r *voteRepository) summaries(ctx context.Context, column string, ids []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error) {
	out := make(map[uuid.UUID]domain.VoteSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `
		SELECT ` + column + ` AS target_id,
			COUNT(*) FILTER (WHERE type = 'UPVOTE') AS upvotes,
			COUNT(*) FILTER (WHERE type = 'DOWNVOTE') AS downvotes,
			MAX(CASE WHEN user_id = $2::uuid THEN type END) AS user_vote
		FROM votes
		WHERE ` + column + ` = ANY($1)
		GROUP BY ` + column

	var rows []voteSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(ids)), viewerID); err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.TargetID] = domain.VoteSummary{Upvotes: row.Upvotes, Downvotes: row.Downvotes, UserVote: row.UserVote}
	}
	return out, nil
}

func (r *voteRepository) Summary(ctx context.Context, target domain.VoteTarget, viewerID *uuid.UUID) (domain.VoteSummary, error) {
	column, targetID := targetColumn(target)
	summaries, err := r.summaries(ctx, column, []uuid.UUID{targetID}, viewerID)
	if err != nil {
		return domain.VoteSummary{}, err
	}
	return summaries[targetID], nil
}

func (r *voteRepository) SummariesByIssue(ctx context.Context, issueIDs []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error) {
	return r.summaries(ctx, "issue_id", issueIDs, viewerID)
}

func (r *voteRepository) SummariesByComment(ctx context.Context, commentIDs []uuid.UUID, viewerID *uuid.UUID) (map[uuid.UUID]domain.VoteSummary, error) {
	return r.summaries(ctx, "comment_id", commentIDs, viewerID)
}

func (r *voteRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE issue_id = $1`, issueID)
	return err
}

func (r *voteRepository) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE comment_id = ANY($1)`, pq.Array(uuidStrings(commentIDs)))
	return err
}

func (r *voteRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE user_id = $1`, userID)
	return err
}
