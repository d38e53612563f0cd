package repository

import (
	"context"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *domain.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	ListInStoredOrder(ctx context.Context) ([]domain.Department, error)
	ListWithCounts(ctx context.Context) ([]domain.DepartmentWithCounts, error)
	Update(ctx context.Context, department *domain.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentRepository struct {
	db DBTX
}

func NewDepartmentRepository(db DBTX) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *domain.Department) error {
	query := `
		INSERT INTO departments (department_id, name)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query, department.ID, department.Name).
		Scan(&department.CreatedAt, &department.UpdatedAt)
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	query := `SELECT department_id, name, created_at, updated_at FROM departments WHERE department_id = $1`
	return getOne[domain.Department](ctx, r.db, query, id)
}

// GetByName matches case-insensitively, mirroring how names are compared for uniqueness.
func (r *departmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	query := `SELECT department_id, name, created_at, updated_at FROM departments WHERE LOWER(name) = LOWER($1)`
	return getOne[domain.Department](ctx, r.db, query, name)
}

// ListInStoredOrder returns departments in creation order, the order the classifier
// uses to break ties between several matching names.
func (r *departmentRepository) ListInStoredOrder(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT department_id, name, created_at, updated_at FROM departments ORDER BY created_at, department_id`

	var departments []domain.Department
	err := r.db.SelectContext(ctx, &departments, query)
	return departments, err
}

type departmentCountRow struct {
	domain.Department
	UserCount  int64 `db:"user_count"`
	IssueCount int64 `db:"issue_count"`
}

func (r *departmentRepository) ListWithCounts(ctx context.Context) ([]domain.DepartmentWithCounts, error) {
	query := `
		SELECT d.department_id, d.name, d.created_at, d.updated_at,
			(SELECT COUNT(*) FROM users u WHERE u.department_id = d.department_id AND u.deleted_at IS NULL) AS user_count,
			(SELECT COUNT(*) FROM issues i WHERE i.department_id = d.department_id) AS issue_count
		FROM departments d
		ORDER BY d.name`

	var rows []departmentCountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	departments := make([]domain.DepartmentWithCounts, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, domain.DepartmentWithCounts{
			Department: row.Department,
			Count:      domain.DepartmentCounts{Users: row.UserCount, Issues: row.IssueCount},
		})
	}
	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *domain.Department) error {
	query := `
		UPDATE departments SET name = $2, updated_at = NOW()
		WHERE department_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, department.ID, department.Name).Scan(&department.UpdatedAt)
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE department_id = $1`, id)
	return err
}
