package repository

import (
	"context"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIssue(ctx context.Context, issueID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, message, user_id, issue_id)
		VALUES ($1, $2, $3, $4)
		RETURNING is_read, created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.Message, notif.UserID, notif.IssueID,
	).Scan(&notif.IsRead, &notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	query := `
		SELECT n.notification_id, n.message, n.is_read, n.user_id, n.issue_id, n.created_at, i.title AS issue_title
		FROM notifications n
		LEFT JOIN issues i ON i.issue_id = n.issue_id
		WHERE n.notification_id = $1`
	return getOne[domain.Notification](ctx, r.db, query, id)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := ` WHERE n.user_id = $1`
	if unreadOnly {
		where += ` AND n.is_read = false`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications n`+where, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT n.notification_id, n.message, n.is_read, n.user_id, n.issue_id, n.created_at, i.title AS issue_title
		FROM notifications n
		LEFT JOIN issues i ON i.issue_id = n.issue_id` + where + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3`

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE notification_id = $1`, id)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE notification_id = $1`, id)
	return err
}

func (r *notificationRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE issue_id = $1`, issueID)
	return err
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}
