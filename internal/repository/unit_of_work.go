package repository

import "context"

// UnitOfWork groups writes into a single atomic commit. Mutations made
// through Users() stay invisible to other readers until Complete returns
// nil; any Complete error means nothing was applied.
type UnitOfWork interface {
	Users() UserRepository
	// Complete commits every buffered change, or rolls all of them back.
	Complete(ctx context.Context) error
	// HasChanges reports whether any write ran in this unit, without committing.
	HasChanges() bool
	// Rollback discards the unit. Safe to defer; a no-op after Complete.
	Rollback() error
}

// UnitOfWorkFactory opens one unit of work per mutating request.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
