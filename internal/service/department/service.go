package department

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"public-pulse/internal/domain"
	"public-pulse/internal/repository"
)

const (
	namesCacheKey = "departments:names"
	namesCacheTTL = 10 * time.Minute
	recentIssues  = 10
)

type Service interface {
	Create(ctx context.Context, input domain.DepartmentInput) (*domain.Department, error)
	List(ctx context.Context) ([]domain.DepartmentWithCounts, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.DepartmentDetail, error)
	Update(ctx context.Context, id uuid.UUID, input domain.DepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignUser(ctx context.Context, input domain.AssignUserInput) (*domain.User, error)
	Names(ctx context.Context) ([]domain.Department, error)
}

type service struct {
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	issueRepo      repository.IssueRepository
	redis          *redis.Client
}

func NewService(departmentRepo repository.DepartmentRepository, userRepo repository.UserRepository, issueRepo repository.IssueRepository, redis *redis.Client) Service {
	return &service{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		issueRepo:      issueRepo,
		redis:          redis,
	}
}

func (s *service) ensureUniqueName(ctx context.Context, name string, except *uuid.UUID) error {
	existing, err := s.departmentRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && (except == nil || existing.ID != *except) {
		return domain.Conflict("Department with this name already exists")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input domain.DepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("Department name is required")
	}
	if err := s.ensureUniqueName(ctx, name, nil); err != nil {
		return nil, err
	}

	department := &domain.Department{ID: uuid.New(), Name: name}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	s.invalidateNames(ctx)
	return department, nil
}

func (s *service) List(ctx context.Context) ([]domain.DepartmentWithCounts, error) {
	departments, err := s.departmentRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []domain.DepartmentWithCounts{}
	}
	return departments, nil
}

func (s *service) counts(ctx context.Context, id uuid.UUID) (domain.DepartmentCounts, error) {
	users, err := s.userRepo.CountByDepartment(ctx, id)
	if err != nil {
		return domain.DepartmentCounts{}, err
	}
	issues, err := s.issueRepo.CountByDepartment(ctx, id)
	if err != nil {
		return domain.DepartmentCounts{}, err
	}
	return domain.DepartmentCounts{Users: users, Issues: issues}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.DepartmentDetail, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.NotFound("Department not found")
	}

	users, err := s.userRepo.ListByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	issues, err := s.issueRepo.ListRecentByDepartment(ctx, id, recentIssues)
	if err != nil {
		return nil, err
	}
	counts, err := s.counts(ctx, id)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []domain.UserSummary{}
	}
	if issues == nil {
		issues = []domain.Issue{}
	}

	return &domain.DepartmentDetail{
		Department: *department,
		Users:      users,
		Issues:     issues,
		Count:      counts,
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.DepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("Department name is required")
	}

	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, domain.NotFound("Department not found")
	}
	if err := s.ensureUniqueName(ctx, name, &id); err != nil {
		return nil, err
	}

	department.Name = name
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	s.invalidateNames(ctx)
	return department, nil
}

// Delete refuses while any user or issue still references the department.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if department == nil {
		return domain.NotFound("Department not found")
	}

	counts, err := s.counts(ctx, id)
	if err != nil {
		return err
	}
	if counts.Users > 0 || counts.Issues > 0 {
		return domain.InvalidInput("Cannot delete department with associated users or issues")
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateNames(ctx)
	return nil
}

func (s *service) AssignUser(ctx context.Context, input domain.AssignUserInput) (*domain.User, error) {
	if input.UserID == nil {
		return nil, domain.InvalidInput("User ID is required")
	}

	user, err := s.userRepo.GetByID(ctx, *input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	if input.DepartmentID != nil {
		department, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, domain.NotFound("Department not found")
		}
		user.Department = department
	}

	if err := s.userRepo.SetDepartment(ctx, user.ID, input.DepartmentID); err != nil {
		return nil, err
	}
	user.DepartmentID = input.DepartmentID
	return user, nil
}

// Names lists departments in stored order for the classifier, through a short-lived cache.
func (s *service) Names(ctx context.Context) ([]domain.Department, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, namesCacheKey).Result(); err == nil {
			var departments []domain.Department
			if json.Unmarshal([]byte(cached), &departments) == nil {
				return departments, nil
			}
		}
	}

	departments, err := s.departmentRepo.ListInStoredOrder(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(departments); err == nil {
			_ = s.redis.Set(ctx, namesCacheKey, data, namesCacheTTL).Err()
		}
	}

	return departments, nil
}

func (s *service) invalidateNames(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, namesCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate department cache: %v", err)
	}
}
