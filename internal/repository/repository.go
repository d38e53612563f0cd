package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx so every repository can run inside
// or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Repositories struct {
	User          UserRepository
	Department    DepartmentRepository
	Issue         IssueRepository
	Image         ImageRepository
	StatusHistory StatusHistoryRepository
	Comment       CommentRepository
	Vote          VoteRepository
	Notification  NotificationRepository
}

func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Department:    NewDepartmentRepository(db),
		Issue:         NewIssueRepository(db),
		Image:         NewImageRepository(db),
		StatusHistory: NewStatusHistoryRepository(db),
		Comment:       NewCommentRepository(db),
		Vote:          NewVoteRepository(db),
		Notification:  NewNotificationRepository(db),
	}
}

// Transactor runs fn against repositories bound to a single database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type Store struct {
	*Repositories
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		Repositories: NewRepositories(db),
		db:           db,
	}
}

// WithinTx commits when fn returns nil and rolls back on an error or a panic.
func (s *Store) WithinTx(ctx context.Context, fn func(repos *Repositories) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("Failed to roll back transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func getOne[T any](ctx context.Context, db DBTX, query string, args ...any) (*T, error) {
	var dest T
	err := db.GetContext(ctx, &dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dest, nil
}
