package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type DepartmentRepository struct {
	mock.Mock
}

func (m *DepartmentRepository) Create(ctx context.Context, department *domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *DepartmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *DepartmentRepository) ListInStoredOrder(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *DepartmentRepository) ListWithCounts(ctx context.Context) ([]domain.DepartmentWithCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DepartmentWithCounts), args.Error(1)
}

func (m *DepartmentRepository) Update(ctx context.Context, department *domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
