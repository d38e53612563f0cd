package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"public-pulse/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	ListTopLevel(ctx context.Context, issueID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error)
	ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Comment, error)
	CountThread(ctx context.Context, issueID uuid.UUID) (int64, error)
	RootIssueID(ctx context.Context, commentID uuid.UUID) (*uuid.UUID, error)
	SubtreeIDs(ctx context.Context, commentID uuid.UUID) ([]uuid.UUID, error)
	ThreadIDs(ctx context.Context, issueID uuid.UUID) ([]uuid.UUID, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

type commentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) CommentRepository {
	return &commentRepository{db: db}
}

const commentSelect = `
	SELECT c.comment_id, c.content, c.author_id, c.issue_id, c.parent_id, c.created_at, c.updated_at,
		u.name AS author_name, u.role AS author_role, u.profile_url AS author_profile_url,
		(SELECT COUNT(*) FROM comments r WHERE r.parent_id = c.comment_id) AS reply_count
	FROM comments c
	JOIN users u ON u.user_id = c.author_id`

type commentRow struct {
	domain.Comment
	AuthorName       *string          `db:"author_name"`
	AuthorRole       *domain.UserRole `db:"author_role"`
	AuthorProfileURL *string          `db:"author_profile_url"`
	ReplyCount       int64            `db:"reply_count"`
}

func toComments(rows []commentRow) []domain.Comment {
	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comment := row.Comment
		author := &domain.UserSummary{ID: comment.AuthorID, Name: row.AuthorName, ProfileURL: row.AuthorProfileURL}
		if row.AuthorRole != nil {
			author.Role = *row.AuthorRole
		}
		comment.Author = author
		replies := row.ReplyCount
		comment.ReplyCount = &replies
		comments = append(comments, comment)
	}
	return comments
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, content, author_id, issue_id, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.Content, comment.AuthorID, comment.IssueID, comment.ParentID,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	row, err := getOne[commentRow](ctx, r.db, commentSelect+` WHERE c.comment_id = $1`, id)
	if err != nil || row == nil {
		return nil, err
	}
	return &toComments([]commentRow{*row})[0], nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `
		UPDATE comments SET content = $2, updated_at = NOW()
		WHERE comment_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
}

// ListTopLevel pages through the comments attached directly to an issue, newest first.
func (r *commentRepository) ListTopLevel(ctx context.Context, issueID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments WHERE issue_id = $1`, issueID); err != nil {
		return nil, 0, err
	}

	query := commentSelect + `
		WHERE c.issue_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, issueID, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	return toComments(rows), total, nil
}

// ListReplies returns the direct replies of every parent, oldest first.
func (r *commentRepository) ListReplies(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	query := commentSelect + `
		WHERE c.parent_id = ANY($1)
		ORDER BY c.created_at ASC`

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(parentIDs))); err != nil {
		return nil, err
	}
	return toComments(rows), nil
}

const threadCTE = `
	WITH RECURSIVE thread AS (
		SELECT comment_id FROM comments WHERE issue_id = $1
		UNION ALL
		SELECT c.comment_id FROM comments c JOIN thread t ON c.parent_id = t.comment_id
	)`

// CountThread counts every comment under an issue, replies at any depth included.
func (r *commentRepository) CountThread(ctx context.Context, issueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, threadCTE+` SELECT COUNT(*) FROM thread`, issueID)
	return count, err
}

func (r *commentRepository) ThreadIDs(ctx context.Context, issueID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, threadCTE+` SELECT comment_id FROM thread`, issueID)
	return ids, err
}

// RootIssueID walks parent links up to the top-level comment and returns its issue.
func (r *commentRepository) RootIssueID(ctx context.Context, commentID uuid.UUID) (*uuid.UUID, error) {
	query := `
		WITH RECURSIVE ancestors AS (
			SELECT comment_id, parent_id, issue_id FROM comments WHERE comment_id = $1
			UNION ALL
			SELECT c.comment_id, c.parent_id, c.issue_id FROM comments c JOIN ancestors a ON c.comment_id = a.parent_id
		)
		SELECT issue_id FROM ancestors WHERE parent_id IS NULL LIMIT 1`

	issueID, err := getOne[uuid.UUID](ctx, r.db, query, commentID)
	return issueID, err
}

// SubtreeIDs returns the comment and every reply beneath it.
func (r *commentRepository) SubtreeIDs(ctx context.Context, commentID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT comment_id FROM comments WHERE comment_id = $1
			UNION ALL
			SELECT c.comment_id FROM comments c JOIN subtree s ON c.parent_id = s.comment_id
		)
		SELECT comment_id FROM subtree`

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, commentID)
	return ids, err
}

// DeleteMany removes a set of comments in one statement so parent links inside the set
// never block the delete.
func (r *commentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = ANY($1)`, pq.Array(uuidStrings(ids)))
	return err
}
