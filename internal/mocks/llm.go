package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type LLMClient struct {
	mock.Mock
}

func (m *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}
