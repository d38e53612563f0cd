package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/pkg/geo"
)

type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error)
	ListInBox(ctx context.Context, box geo.BoundingBox) ([]domain.Issue, error)
	ListRecentByDepartment(ctx context.Context, departmentID uuid.UUID, limit int) ([]domain.Issue, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	Update(ctx context.Context, issue *domain.Issue) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IssueStatus) error
	SetDepartment(ctx context.Context, id uuid.UUID, departmentID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*domain.IssueStats, error)
}

type issueRepository struct {
	db DBTX
}

func NewIssueRepository(db DBTX) IssueRepository {
	return &issueRepository{db: db}
}

const issueSelect = `
	SELECT i.issue_id, i.title, i.description, i.latitude, i.longitude, i.severity, i.status,
		i.department_id, i.author_id, i.created_at, i.updated_at,
		u.name AS author_name, u.role AS author_role, u.profile_url AS author_profile_url,
		d.name AS department_name, d.created_at AS department_created_at, d.updated_at AS department_updated_at,
		(SELECT COUNT(*) FROM comments c WHERE c.issue_id = i.issue_id) AS comment_count,
		(SELECT COUNT(*) FROM votes v WHERE v.issue_id = i.issue_id) AS vote_count
	FROM issues i
	JOIN users u ON u.user_id = i.author_id
	LEFT JOIN departments d ON d.department_id = i.department_id`

type issueRow struct {
	domain.Issue
	AuthorName       *string          `db:"author_name"`
	AuthorRole       *domain.UserRole `db:"author_role"`
	AuthorProfileURL *string          `db:"author_profile_url"`
	DeptName         *string          `db:"department_name"`
	DeptCreatedAt    *time.Time       `db:"department_created_at"`
	DeptUpdatedAt    *time.Time       `db:"department_updated_at"`
	CommentCount     int64            `db:"comment_count"`
	VoteCount        int64            `db:"vote_count"`
}

func (row issueRow) toIssue() domain.Issue {
	issue := row.Issue

	author := &domain.UserSummary{ID: issue.AuthorID, Name: row.AuthorName, ProfileURL: row.AuthorProfileURL}
	if row.AuthorRole != nil {
		author.Role = *row.AuthorRole
	}
	issue.Author = author

	if issue.DepartmentID != nil && row.DeptName != nil {
		dept := &domain.Department{ID: *issue.DepartmentID, Name: *row.DeptName}
		if row.DeptCreatedAt != nil {
			dept.CreatedAt = *row.DeptCreatedAt
		}
		if row.DeptUpdatedAt != nil {
			dept.UpdatedAt = *row.DeptUpdatedAt
		}
		issue.Department = dept
	}

	issue.Count = &domain.IssueCounts{Comments: row.CommentCount, Votes: row.VoteCount}
	issue.Images = []domain.Image{}
	return issue
}

func toIssues(rows []issueRow) []domain.Issue {
	issues := make([]domain.Issue, 0, len(rows))
	for _, row := range rows {
		issues = append(issues, row.toIssue())
	}
	return issues
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	query := `
		INSERT INTO issues (issue_id, title, description, latitude, longitude, severity, status, department_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		issue.ID, issue.Title, issue.Description, issue.Latitude, issue.Longitude,
		issue.Severity, issue.Status, issue.DepartmentID, issue.AuthorID,
	).Scan(&issue.CreatedAt, &issue.UpdatedAt)
}

func (r *issueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	row, err := getOne[issueRow](ctx, r.db, issueSelect+` WHERE i.issue_id = $1`, id)
	if err != nil || row == nil {
		return nil, err
	}
	issue := row.toIssue()
	return &issue, nil
}

func issueConditions(filter domain.IssueFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, fmt.Sprintf("i.department_id = $%d", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("i.author_id = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(i.title ILIKE $%d OR i.description ILIKE $%d)", len(args), len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *issueRepository) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	params.Validate()

	where, args := issueConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM issues i`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s%s ORDER BY i.created_at DESC LIMIT $%d OFFSET $%d`,
		issueSelect, where, len(args)+1, len(args)+2)

	var rows []issueRow
	if err := r.db.SelectContext(ctx, &rows, query, append(args, params.PageSize, params.Offset())...); err != nil {
		return nil, 0, err
	}
	return toIssues(rows), total, nil
}

// ListInBox is the coarse prefilter for the nearby query; callers apply the exact
// great-circle distance themselves.
func (r *issueRepository) ListInBox(ctx context.Context, box geo.BoundingBox) ([]domain.Issue, error) {
	query := issueSelect + `
		WHERE i.latitude BETWEEN $1 AND $2
		AND i.longitude BETWEEN $3 AND $4`

	var rows []issueRow
	if err := r.db.SelectContext(ctx, &rows, query, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng); err != nil {
		return nil, err
	}
	return toIssues(rows), nil
}

func (r *issueRepository) ListRecentByDepartment(ctx context.Context, departmentID uuid.UUID, limit int) ([]domain.Issue, error) {
	query := issueSelect + ` WHERE i.department_id = $1 ORDER BY i.created_at DESC LIMIT $2`

	var rows []issueRow
	if err := r.db.SelectContext(ctx, &rows, query, departmentID, limit); err != nil {
		return nil, err
	}
	return toIssues(rows), nil
}

func (r *issueRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM issues WHERE department_id = $1`, departmentID)
	return count, err
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	query := `
		UPDATE issues
		SET title = $2, description = $3, latitude = $4, longitude = $5, severity = $6, updated_at = NOW()
		WHERE issue_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		issue.ID, issue.Title, issue.Description, issue.Latitude, issue.Longitude, issue.Severity,
	).Scan(&issue.UpdatedAt)
}

func (r *issueRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IssueStatus) error {
	query := `UPDATE issues SET status = $2, updated_at = NOW() WHERE issue_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *issueRepository) SetDepartment(ctx context.Context, id uuid.UUID, departmentID *uuid.UUID) error {
	query := `UPDATE issues SET department_id = $2, updated_at = NOW() WHERE issue_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, departmentID)
	return err
}

func (r *issueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE issue_id = $1`, id)
	return err
}

func (r *issueRepository) Stats(ctx context.Context) (*domain.IssueStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE status = 'ONGOING') AS ongoing,
			COUNT(*) FILTER (WHERE status = 'PAUSED') AS paused,
			COUNT(*) FILTER (WHERE status = 'CLOSED') AS closed,
			COUNT(*) FILTER (WHERE department_id IS NULL) AS unclassified,
			AVG(severity)::float8 AS average_severity
		FROM issues`

	var stats domain.IssueStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
