package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
)

type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (*domain.PaginatedResponse[domain.User], error)
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
}

type service struct {
	tx             repository.Transactor
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
}

func NewService(tx repository.Transactor, userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository) Service {
	return &service{
		tx:             tx,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

func (s *service) department(ctx context.Context, id *uuid.UUID) (*domain.Department, error) {
	if id == nil {
		return nil, nil
	}
	department, err := s.departmentRepo.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.NotFound("Department not found")
	}
	return department, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	if user.DepartmentID != nil {
		department, err := s.departmentRepo.GetByID(ctx, *user.DepartmentID)
		if err != nil {
			return nil, err
		}
		user.Department = department
	}
	return user, nil
}

func (s *service) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (*domain.PaginatedResponse[domain.User], error) {
	params.Validate()

	if filter.Role != nil && !filter.Role.IsValid() {
		return nil, domain.InvalidInput("Invalid role filter")
	}
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(users, params.Page, params.PageSize, total)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	externalID := strings.TrimSpace(input.ExternalID)
	if name == "" || email == "" || externalID == "" {
		return nil, domain.InvalidInput("External ID, name and email are required")
	}
	if !input.Role.IsValid() {
		return nil, domain.InvalidInput("Invalid role")
	}

	existing, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("User already exists")
	}

	department, err := s.department(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		ExternalID:   &externalID,
		Name:         &name,
		Email:        &email,
		Role:         input.Role,
		DepartmentID: input.DepartmentID,
		Department:   department,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update lets users edit their own profile. Only admins may edit someone else or change a
// role or department assignment.
func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateUserInput) (*domain.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, domain.Forbidden("You can only update your own profile")
	}
	if (input.Role != nil || input.DepartmentID.Set) && !actor.IsAdmin() {
		return nil, domain.Forbidden("Only admins can change roles or departments")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.InvalidInput("Name cannot be empty")
		}
		user.Name = &name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, domain.InvalidInput("Email cannot be empty")
		}
		user.Email = &email
	}
	if input.ProfileURL != nil {
		user.ProfileURL = input.ProfileURL
	}

	if input.Role != nil && *input.Role != user.Role {
		if !input.Role.IsValid() {
			return nil, domain.InvalidInput("Invalid role")
		}
		if user.Role == domain.RoleAdmin {
			if err := s.ensureAnotherAdmin(ctx); err != nil {
				return nil, err
			}
		}
		user.Role = *input.Role
	}

	if input.DepartmentID.Set {
		department, err := s.department(ctx, input.DepartmentID.Value)
		if err != nil {
			return nil, err
		}
		user.DepartmentID = input.DepartmentID.Value
		user.Department = department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := s.userRepo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return domain.InvalidInput("Cannot remove the last admin")
	}
	return nil
}

// Delete removes the user's votes and notifications and anonymises the account. Issues and
// comments stay, attributed to a deleted user.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	if !actor.IsAdmin() {
		return domain.Forbidden("Only admins can delete users")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("User not found")
	}
	if user.Role == domain.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}

	return s.tx.WithinTx(ctx, func(repos *repository.Repositories) error {
		if err := repos.Vote.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := repos.Notification.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return repos.User.Anonymize(ctx, id)
	})
}
