package repository

import (
	"context"
	"fmt"

	"betbook/database"
	"betbook/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements ledger account data access
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository bound to a transaction
func newAccountRepositoryWithTx(tx Queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByID retrieves an account by user id
func (r *AccountRepository) GetByID(ctx context.Context, userID int64) (*entities.Account, error) {
	query := `
		SELECT user_id, email, display_name, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Email,
		&account.DisplayName,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", userID, markConflict(err))
	}

	return &account, nil
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	query := `
		SELECT user_id, email, display_name, balance, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, email).Scan(
		&account.UserID,
		&account.Email,
		&account.DisplayName,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email %s: %w", email, markConflict(err))
	}

	return &account, nil
}

// Create creates a new account seeded with the initial balance
func (r *AccountRepository) Create(ctx context.Context, email, displayName string, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (email, display_name, balance)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at, updated_at
	`

	account := &entities.Account{
		Email:       email,
		DisplayName: displayName,
		Balance:     initialBalance,
	}
	err := r.q.QueryRow(ctx, query, email, displayName, initialBalance).Scan(
		&account.UserID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account for %s: %w", email, markConflict(err))
	}

	return account, nil
}

// Debit subtracts amount from the account's balance. The balance floor is
// enforced by the WHERE clause re-reading current state inside the
// transaction, so no concurrent debit can drive the balance negative.
func (r *AccountRepository) Debit(ctx context.Context, userID int64, amount int64) error {
	query := `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
	`

	tag, err := r.q.Exec(ctx, query, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit account %d: %w", userID, markConflict(err))
	}
	if tag.RowsAffected() == 0 {
		account, err := r.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: account %d", entities.ErrNotFound, userID)
		}
		return fmt.Errorf("%w: account %d has %d, needs %d", entities.ErrInsufficientFunds, userID, account.Balance, amount)
	}

	return nil
}

// Credit adds amount to the account's balance
func (r *AccountRepository) Credit(ctx context.Context, userID int64, amount int64) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := r.q.Exec(ctx, query, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to credit account %d: %w", userID, markConflict(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", entities.ErrNotFound, userID)
	}

	return nil
}

// List returns all accounts ordered by display name
func (r *AccountRepository) List(ctx context.Context) ([]*entities.Account, error) {
	query := `
		SELECT user_id, email, display_name, balance, created_at, updated_at
		FROM accounts
		ORDER BY display_name ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", markConflict(err))
	}
	defer rows.Close()

	var accounts []*entities.Account
	for rows.Next() {
		var account entities.Account
		err := rows.Scan(
			&account.UserID,
			&account.Email,
			&account.DisplayName,
			&account.Balance,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}
