package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"public-pulse/internal/domain"
)

type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.Image, error)
	ListByIssues(ctx context.Context, issueIDs []uuid.UUID) ([]domain.Image, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIssue(ctx context.Context, issueID uuid.UUID) error
}

type imageRepository struct {
	db DBTX
}

func NewImageRepository(db DBTX) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	query := `
		INSERT INTO images (image_id, url, issue_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query, image.ID, image.URL, image.IssueID).Scan(&image.CreatedAt)
}

func (r *imageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	query := `SELECT image_id, url, issue_id, created_at FROM images WHERE image_id = $1`
	return getOne[domain.Image](ctx, r.db, query, id)
}

func (r *imageRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.Image, error) {
	query := `SELECT image_id, url, issue_id, created_at FROM images WHERE issue_id = $1 ORDER BY created_at, image_id`

	var images []domain.Image
	err := r.db.SelectContext(ctx, &images, query, issueID)
	return images, err
}

func (r *imageRepository) ListByIssues(ctx context.Context, issueIDs []uuid.UUID) ([]domain.Image, error) {
	if len(issueIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT image_id, url, issue_id, created_at FROM images
		WHERE issue_id = ANY($1)
		ORDER BY created_at, image_id`

	var images []domain.Image
	err := r.db.SelectContext(ctx, &images, query, pq.Array(uuidStrings(issueIDs)))
	return images, err
}

func (r *imageRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Image, error) {
	query := `
		SELECT im.image_id, im.url, im.issue_id, im.created_at
		FROM images im
		JOIN issues i ON i.issue_id = im.issue_id
		WHERE i.author_id = $1
		ORDER BY im.created_at DESC`

	var images []domain.Image
	err := r.db.SelectContext(ctx, &images, query, authorID)
	return images, err
}

func (r *imageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE image_id = $1`, id)
	return err
}

func (r *imageRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE issue_id = $1`, issueID)
	return err
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
