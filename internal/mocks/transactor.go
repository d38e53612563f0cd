package mocks

import (
	"context"

	"public-pulse/internal/repository"
)

// Transactor runs fn directly against Repos. Err, when set, is returned instead of
// calling fn, simulating a failure to begin the transaction.
type Transactor struct {
	Repos *repository.Repositories
	Err   error
	Calls int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(t.Repos)
}
