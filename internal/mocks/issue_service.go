package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type IssueService struct {
	mock.Mock
}

func (m *IssueService) Create(ctx context.Context, actor *domain.User, input domain.CreateIssueInput, files []domain.Upload) (*domain.Issue, error) {
	args := m.Called(ctx, actor, input, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueService) Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Issue, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueService) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams, viewer *domain.User) (*domain.PaginatedResponse[domain.Issue], error) {
	args := m.Called(ctx, filter, params, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResponse[domain.Issue]), args.Error(1)
}

func (m *IssueService) Nearby(ctx context.Context, query domain.NearbyQuery) (*domain.NearbyResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NearbyResult), args.Error(1)
}

func (m *IssueService) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateIssueInput, files []domain.Upload) (*domain.Issue, error) {
	args := m.Called(ctx, id, actor, input, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueService) UpdateStatus(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.UpdateStatusInput) (*domain.Issue, error) {
	args := m.Called(ctx, id, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueService) AssignDepartment(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.AssignDepartmentInput) (*domain.Issue, error) {
	args := m.Called(ctx, id, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueService) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *IssueService) ListByAuthor(ctx context.Context, authorID uuid.UUID, params domain.PaginationParams, viewer *domain.User) (*domain.PaginatedResponse[domain.Issue], error) {
	args := m.Called(ctx, authorID, params, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResponse[domain.Issue]), args.Error(1)
}

func (m *IssueService) ListAssigned(ctx context.Context, actor *domain.User, status *domain.IssueStatus, params domain.PaginationParams) (*domain.AssignedIssuePage, error) {
	args := m.Called(ctx, actor, status, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssignedIssuePage), args.Error(1)
}
