package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
	"public-pulse/internal/service/auth"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) VerifyToken(token string) (*auth.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

func (m *AuthService) ResolveUser(ctx context.Context, identity *auth.Identity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthService) Signup(ctx context.Context, identity *auth.Identity, role domain.UserRole, input domain.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, identity, role, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthService) Profile(ctx context.Context, user *domain.User, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, user, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
