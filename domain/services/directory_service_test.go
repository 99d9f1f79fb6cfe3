package services

import (
	"context"
	"testing"

	"betbook/domain/entities"
	"betbook/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory_ResolveByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a known email", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		dir := NewUserDirectory(factory, 1000)
		factory.UoW.Accounts.On("GetByEmail", ctx, "alice@test").Return(account(42, 1000), nil)

		id, err := dir.ResolveByEmail(ctx, "alice@test")

		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("unknown email is NotFound", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		dir := NewUserDirectory(factory, 1000)
		factory.UoW.Accounts.On("GetByEmail", ctx, "ghost@test").Return(nil, nil)

		_, err := dir.ResolveByEmail(ctx, "ghost@test")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestUserDirectory_Provision(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds a new account with the starting balance", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		dir := NewUserDirectory(factory, 1000)
		factory.UoW.Accounts.On("GetByEmail", ctx, "new@test").Return(nil, nil)
		factory.UoW.Accounts.On("Create", ctx, "new@test", "newbie", int64(1000)).
			Return(&entities.Account{UserID: 5, Email: "new@test", DisplayName: "newbie", Balance: 1000}, nil)

		acct, err := dir.Provision(ctx, "new@test", "newbie")

		require.NoError(t, err)
		assert.Equal(t, int64(1000), acct.Balance)
		factory.UoW.Accounts.AssertExpectations(t)
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		dir := NewUserDirectory(factory, 1000)
		factory.UoW.Accounts.On("GetByEmail", ctx, "new@test").Return(nil, nil)
		factory.UoW.Accounts.On("Create", ctx, "new@test", "newbie", int64(1000)).
			Return(&entities.Account{UserID: 5}, nil)

		_, err := dir.Provision(ctx, "  New@Test ", "newbie")
		require.NoError(t, err)
	})

	t.Run("provisioning a known email returns the existing account", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		dir := NewUserDirectory(factory, 1000)
		existing := &entities.Account{UserID: 5, Email: "old@test", Balance: 250}
		factory.UoW.Accounts.On("GetByEmail", ctx, "old@test").Return(existing, nil)

		acct, err := dir.Provision(ctx, "old@test", "whoever")

		require.NoError(t, err)
		assert.Equal(t, int64(250), acct.Balance, "existing balance must not be reseeded")
		factory.UoW.Accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		dir := NewUserDirectory(factory, 1000)

		_, err := dir.Provision(ctx, "   ", "name")
		assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	})
}
