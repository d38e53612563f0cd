package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type DepartmentService struct {
	mock.Mock
}

func (m *DepartmentService) Create(ctx context.Context, input domain.DepartmentInput) (*domain.Department, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *DepartmentService) List(ctx context.Context) ([]domain.DepartmentWithCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentWithCounts), args.Error(1)
}

func (m *DepartmentService) Get(ctx context.Context, id uuid.UUID) (*domain.DepartmentDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentDetail), args.Error(1)
}

func (m *DepartmentService) Update(ctx context.Context, id uuid.UUID, input domain.DepartmentInput) (*domain.Department, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DepartmentService) AssignUser(ctx context.Context, input domain.AssignUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *DepartmentService) Names(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}
