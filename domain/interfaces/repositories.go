package interfaces

import (
	"context"

	"betbook/domain/entities"
)

// AccountRepository defines the interface for ledger account data access.
// Debit and Credit are only ever issued by the wager engine, inside the same
// unit of work as the wager write they belong to.
type AccountRepository interface {
	// GetByID retrieves an account by user id. Returns nil when absent.
	GetByID(ctx context.Context, userID int64) (*entities.Account, error)

	// GetByEmail retrieves an account by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)

	// Create creates a new account seeded with the initial balance.
	Create(ctx context.Context, email, displayName string, initialBalance int64) (*entities.Account, error)

	// Debit subtracts amount from the account's balance. Fails with
	// entities.ErrInsufficientFunds when the balance is below amount; the
	// balance check re-reads current state inside the transaction.
	Debit(ctx context.Context, userID int64, amount int64) error

	// Credit adds amount to the account's balance.
	Credit(ctx context.Context, userID int64, amount int64) error

	// List returns all accounts ordered by display name.
	List(ctx context.Context) ([]*entities.Account, error)
}

// WagerRepository defines the interface for wager data access.
type WagerRepository interface {
	// Create creates a new wager.
	Create(ctx context.Context, wager *entities.Wager) error

	// GetByID retrieves a wager by its id. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*entities.Wager, error)

	// GetByIDForUpdate retrieves a wager by id holding a row lock for the
	// remainder of the transaction, so concurrent transitions on the same
	// wager are linearized.
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Wager, error)

	// Update persists the wager's status and mutable reference fields.
	Update(ctx context.Context, wager *entities.Wager) error

	// ListByParticipant returns all wagers where the user is creator or
	// opponent, newest first.
	ListByParticipant(ctx context.Context, userID int64) ([]*entities.Wager, error)

	// ListByArbiter returns the arbiter's queue: accepted wagers assigned to
	// the arbiter. When includeUnassigned is true, accepted wagers with no
	// explicit arbiter are included as well (the default arbiter's queue).
	ListByArbiter(ctx context.Context, arbiterID int64, includeUnassigned bool) ([]*entities.Wager, error)

	// ListPublicOpen returns public pending wagers awaiting an opponent.
	ListPublicOpen(ctx context.Context) ([]*entities.Wager, error)

	// ListSettled returns all settled wagers, for the ranking view.
	ListSettled(ctx context.Context) ([]*entities.Wager, error)
}

// UnitOfWork represents one atomic unit of wager and ledger writes. Either
// every staged write commits, or none do.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction. Safe to call after Commit.
	Rollback() error

	// AccountRepository returns the account repository bound to this transaction
	AccountRepository() AccountRepository

	// WagerRepository returns the wager repository bound to this transaction
	WagerRepository() WagerRepository
}

// UnitOfWorkFactory creates units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
