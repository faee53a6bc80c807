package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daterly/members-api/internal/domain"
	"github.com/daterly/members-api/internal/repository"
	"github.com/jmoiron/sqlx"
)

type unitOfWorkFactory struct {
	db *sqlx.DB
}

// NewUnitOfWorkFactory opens units of work backed by database transactions.
func NewUnitOfWorkFactory(db *sqlx.DB) repository.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

func (f *unitOfWorkFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := f.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	uow := &unitOfWork{tx: tx}
	uow.users = newTxUserRepository(tx, uow.markChange)
	return uow, nil
}

type unitOfWork struct {
	tx      *sqlx.Tx
	users   repository.UserRepository
	changes int
	done    bool
}

func (u *unitOfWork) Users() repository.UserRepository {
	return u.users
}

func (u *unitOfWork) markChange() {
	u.changes++
}

func (u *unitOfWork) HasChanges() bool {
	return u.changes > 0
}

func (u *unitOfWork) Complete(ctx context.Context) error {
	u.done = true
	if err := u.tx.Commit(); err != nil {
		// The transaction is dead either way; nothing was applied.
		_ = u.tx.Rollback()
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
