package repository

import (
	"context"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
)

type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *domain.StatusHistory) error
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.StatusHistory, error)
	DeleteByIssue(ctx context.Context, issueID uuid.UUID) error
}

type statusHistoryRepository struct {
	db DBTX
}

func NewStatusHistoryRepository(db DBTX) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) Create(ctx context.Context, entry *domain.StatusHistory) error {
	query := `
		INSERT INTO issue_status_history (history_id, status, issue_id, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING changed_at`

	return r.db.QueryRowxContext(ctx, query, entry.ID, entry.Status, entry.IssueID, entry.ChangedByID).
		Scan(&entry.ChangedAt)
}

type statusHistoryRow struct {
	domain.StatusHistory
	ActorName *string          `db:"actor_name"`
	ActorRole *domain.UserRole `db:"actor_role"`
}

// ListByIssue returns the log newest first with the acting user attached.
func (r *statusHistoryRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.StatusHistory, error) {
	query := `
		SELECT h.history_id, h.status, h.changed_at, h.issue_id, h.changed_by,
			u.name AS actor_name, u.role AS actor_role
		FROM issue_status_history h
		JOIN users u ON u.user_id = h.changed_by
		WHERE h.issue_id = $1
		ORDER BY h.changed_at DESC`

	var rows []statusHistoryRow
	if err := r.db.SelectContext(ctx, &rows, query, issueID); err != nil {
		return nil, err
	}

	entries := make([]domain.StatusHistory, 0, len(rows))
	for _, row := range rows {
		entry := row.StatusHistory
		actor := &domain.UserSummary{ID: entry.ChangedByID, Name: row.ActorName}
		if row.ActorRole != nil {
			actor.Role = *row.ActorRole
		}
		entry.ChangedBy = actor
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *statusHistoryRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM issue_status_history WHERE issue_id = $1`, issueID)
	return err
}
