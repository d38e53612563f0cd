package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
	"public-pulse/internal/pkg/geo"
)

type IssueRepository struct {
	mock.Mock
}

func (m *IssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueRepository) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Issue), args.Get(1).(int64), args.Error(2)
}

func (m *IssueRepository) ListInBox(ctx context.Context, box geo.BoundingBox) ([]domain.Issue, error) {
	args := m.Called(ctx, box)
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *IssueRepository) ListRecentByDepartment(ctx context.Context, departmentID uuid.UUID, limit int) ([]domain.Issue, error) {
	args := m.Called(ctx, departmentID, limit)
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *IssueRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IssueStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *IssueRepository) SetDepartment(ctx context.Context, id uuid.UUID, departmentID *uuid.UUID) error {
	args := m.Called(ctx, id, departmentID)
	return args.Error(0)
}

func (m *IssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *IssueRepository) Stats(ctx context.Context) (*domain.IssueStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueStats), args.Error(1)
}
