package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
	ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.UserSummary, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	SetDepartment(ctx context.Context, userID uuid.UUID, departmentID *uuid.UUID) error
	Anonymize(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, external_id, name, email, profile_url, role, department_id, created_at, updated_at, deleted_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, external_id, name, email, profile_url, role, department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.ExternalID, user.Name, user.Email, user.ProfileURL, user.Role, user.DepartmentID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL`
	return getOne[domain.User](ctx, r.db, query, id)
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1 AND deleted_at IS NULL`
	return getOne[domain.User](ctx, r.db, query, externalID)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, profile_url = $4, role = $5, department_id = $6, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Email, user.ProfileURL, user.Role, user.DepartmentID,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	conditions := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)

	var users []domain.User
	err := r.db.SelectContext(ctx, &users, query, append(args, params.PageSize, params.Offset())...)
	return users, total, err
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, role)
	return count, err
}

func (r *userRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.UserSummary, error) {
	query := `
		SELECT user_id, name, role, profile_url
		FROM users
		WHERE department_id = $1 AND deleted_at IS NULL
		ORDER BY name`

	var users []domain.UserSummary
	err := r.db.SelectContext(ctx, &users, query, departmentID)
	return users, err
}

func (r *userRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE department_id = $1 AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, departmentID)
	return count, err
}

func (r *userRepository) SetDepartment(ctx context.Context, userID uuid.UUID, departmentID *uuid.UUID) error {
	query := `UPDATE users SET department_id = $2, updated_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID, departmentID)
	return err
}

// Anonymize clears personal data and soft-deletes the row. Authored issues, comments and
// status history keep pointing at it.
func (r *userRepository) Anonymize(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET external_id = NULL, name = 'Deleted User', email = NULL, profile_url = NULL,
			department_id = NULL, updated_at = NOW(), deleted_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
