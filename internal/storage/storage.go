// Package storage keeps issue images in an S3-compatible bucket and hands out
// short-lived signed URLs for them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"public-pulse/internal/domain"
)

// SignedURLExpiry is how long a signed image URL stays valid.
const SignedURLExpiry = 3600 * time.Second

var ErrUnavailable = errors.New("object storage is not configured")

type Gateway interface {
	Upload(ctx context.Context, upload domain.Upload) (string, error)
	SignedURL(ctx context.Context, locator string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, locator string) error
}

type MinIOGateway struct {
	client  *minio.Client
	signer  *minio.Client
	bucket  string
	timeout time.Duration
}

// NewMinIOGateway uploads and deletes through client and presigns through signer, which
// should be bound to the endpoint clients can reach. Either may be nil when storage is down.
func NewMinIOGateway(client, signer *minio.Client, bucket string, timeout time.Duration) *MinIOGateway {
	if signer == nil {
		signer = client
	}
	return &MinIOGateway{
		client:  client,
		signer:  signer,
		bucket:  bucket,
		timeout: timeout,
	}
}

func (g *MinIOGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// Upload stores the file and returns its locator, the bare object key.
func (g *MinIOGateway) Upload(ctx context.Context, upload domain.Upload) (string, error) {
	if g.client == nil {
		return "", ErrUnavailable
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	key := BuildKey(uuid.New(), upload.FileName)
	size := upload.Size
	if size <= 0 {
		size = -1
	}

	_, err := g.client.PutObject(ctx, g.bucket, key, upload.Reader, size, minio.PutObjectOptions{
		ContentType: upload.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", upload.FileName, err)
	}
	return key, nil
}

func (g *MinIOGateway) SignedURL(ctx context.Context, locator string, expiry time.Duration) (string, error) {
	if g.signer == nil {
		return "", ErrUnavailable
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	u, err := g.signer.PresignedGetObject(ctx, g.bucket, KeyFromLocator(locator, g.bucket), expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to sign %q: %w", locator, err)
	}
	return u.String(), nil
}

func (g *MinIOGateway) Delete(ctx context.Context, locator string) error {
	if g.client == nil {
		return ErrUnavailable
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	return g.client.RemoveObject(ctx, g.bucket, KeyFromLocator(locator, g.bucket), minio.RemoveObjectOptions{})
}

// DeleteAll removes every locator, logging failures instead of returning them.
func DeleteAll(ctx context.Context, g Gateway, locators []string) {
	for _, locator := range locators {
		if err := g.Delete(ctx, locator); err != nil {
			log.Printf("Failed to delete stored object %s: %v", locator, err)
		}
	}
}
