package services

import (
	"context"
	"fmt"
	"strings"

	"betbook/domain/entities"
	"betbook/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type userDirectory struct {
	uowFactory      interfaces.UnitOfWorkFactory
	startingBalance int64
}

// NewUserDirectory creates the account directory. New accounts are seeded
// with the configured starting balance.
func NewUserDirectory(uowFactory interfaces.UnitOfWorkFactory, startingBalance int64) interfaces.UserDirectory {
	return &userDirectory{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// ResolveByEmail returns the user id registered under an email address.
func (d *userDirectory) ResolveByEmail(ctx context.Context, email string) (int64, error) {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve email: %w", err)
	}
	if account == nil {
		return 0, fmt.Errorf("%w: no account with email %q", entities.ErrNotFound, email)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account.UserID, nil
}

// GetAccount returns the account for a user id.
func (d *userDirectory) GetAccount(ctx context.Context, userID int64) (*entities.Account, error) {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, userID)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by display name.
func (d *userDirectory) ListAccounts(ctx context.Context) ([]*entities.Account, error) {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accounts, nil
}

// Provision creates an account seeded with the starting balance. Provisioning
// an email that already has an account returns the existing one unchanged, so
// repeated first-login flows are idempotent.
func (d *userDirectory) Provision(ctx context.Context, email, displayName string) (*entities.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", entities.ErrInvalidArgument)
	}
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name cannot be empty", entities.ErrInvalidArgument)
	}

	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.AccountRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}
	if existing != nil {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return existing, nil
	}

	account, err := uow.AccountRepository().Create(ctx, email, displayName, d.startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id": account.UserID,
		"email":   email,
		"balance": account.Balance,
	}).Info("account provisioned")

	return account, nil
}
