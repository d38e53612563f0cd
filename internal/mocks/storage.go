package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type StorageGateway struct {
	mock.Mock
}

func (m *StorageGateway) Upload(ctx context.Context, upload domain.Upload) (string, error) {
	args := m.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

func (m *StorageGateway) SignedURL(ctx context.Context, locator string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, locator, expiry)
	return args.String(0), args.Error(1)
}

func (m *StorageGateway) Delete(ctx context.Context, locator string) error {
	args := m.Called(ctx, locator)
	return args.Error(0)
}
