package services

import (
	"context"
	"errors"
	"testing"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDefaultArbiterID = int64(1)

func ptr(id int64) *int64 { return &id }

func newTestService(t *testing.T) (interfaces.WagerService, *testhelpers.MockUnitOfWork) {
	t.Helper()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWagerService(factory, testDefaultArbiterID, false)
	return svc, factory.UoW
}

func account(id int64, balance int64) *entities.Account {
	return &entities.Account{UserID: id, Email: "user@test", DisplayName: "user", Balance: balance}
}

func pendingWager(id, creatorID, opponentID, amount int64) *entities.Wager {
	return &entities.Wager{
		ID:          id,
		Description: "who wins the match",
		Amount:      amount,
		CreatorID:   creatorID,
		OpponentID:  &opponentID,
		Status:      entities.WagerStatusPending,
	}
}

func TestWagerService_Propose(t *testing.T) {
	ctx := context.Background()

	t.Run("escrows creator stake and creates pending wager", func(t *testing.T) {
		svc, uow := newTestService(t)

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 1000), nil)
		uow.Accounts.On("GetByEmail", ctx, "friend@test").Return(account(20, 500), nil)
		uow.Accounts.On("Debit", ctx, int64(10), int64(200)).Return(nil)
		uow.Wagers.On("Create", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.CreatorID == 10 &&
				w.OpponentID != nil && *w.OpponentID == 20 &&
				w.Amount == 200 &&
				w.Status == entities.WagerStatusPending &&
				!w.IsPublic
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Wager).ID = 1
		}).Return(nil)

		wager, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description:   "who wins the match",
			Amount:        200,
			OpponentEmail: "friend@test",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), wager.ID)
		assert.Equal(t, 1, uow.Committed)
		uow.Accounts.AssertExpectations(t)
		uow.Wagers.AssertExpectations(t)
	})

	t.Run("public wager starts without opponent", func(t *testing.T) {
		svc, uow := newTestService(t)

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 1000), nil)
		uow.Accounts.On("Debit", ctx, int64(10), int64(50)).Return(nil)
		uow.Wagers.On("Create", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.IsPublic && w.OpponentID == nil
		})).Return(nil)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description: "open challenge",
			Amount:      50,
			Public:      true,
		})

		require.NoError(t, err)
		uow.Accounts.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive amount before any transaction", func(t *testing.T) {
		svc, uow := newTestService(t)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{Description: "x", Amount: 0, OpponentEmail: "a@b"})
		assert.ErrorIs(t, err, entities.ErrInvalidArgument)

		_, err = svc.Propose(ctx, 10, interfaces.ProposeWagerParams{Description: "x", Amount: -5, OpponentEmail: "a@b"})
		assert.ErrorIs(t, err, entities.ErrInvalidArgument)

		assert.Equal(t, 0, uow.Begun)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{Amount: 100, OpponentEmail: "a@b"})
		assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	})

	t.Run("unknown opponent email", func(t *testing.T) {
		svc, uow := newTestService(t)

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 1000), nil)
		uow.Accounts.On("GetByEmail", ctx, "ghost@test").Return(nil, nil)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description:   "x",
			Amount:        100,
			OpponentEmail: "ghost@test",
		})

		assert.ErrorIs(t, err, entities.ErrNotFound)
		assert.Equal(t, 0, uow.Committed)
	})

	t.Run("insufficient creator funds", func(t *testing.T) {
		svc, uow := newTestService(t)

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 50), nil)
		uow.Accounts.On("GetByEmail", ctx, "friend@test").Return(account(20, 500), nil)
		uow.Accounts.On("Debit", ctx, int64(10), int64(100)).Return(entities.ErrInsufficientFunds)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description:   "x",
			Amount:        100,
			OpponentEmail: "friend@test",
		})

		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
		assert.Equal(t, 0, uow.Committed)
		assert.GreaterOrEqual(t, uow.RolledBack, 1)
	})

	t.Run("self-wager blocked by default policy", func(t *testing.T) {
		svc, uow := newTestService(t)

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 1000), nil)
		uow.Accounts.On("GetByEmail", ctx, "me@test").Return(account(10, 1000), nil)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description:   "x",
			Amount:        100,
			OpponentEmail: "me@test",
		})

		assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	})

	t.Run("self-wager allowed when policy permits", func(t *testing.T) {
		factory := testhelpers.NewMockUnitOfWorkFactory()
		svc := NewWagerService(factory, testDefaultArbiterID, true)
		uow := factory.UoW

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 1000), nil)
		uow.Accounts.On("GetByEmail", ctx, "me@test").Return(account(10, 1000), nil)
		uow.Accounts.On("Debit", ctx, int64(10), int64(100)).Return(nil)
		uow.Wagers.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description:   "x",
			Amount:        100,
			OpponentEmail: "me@test",
		})

		require.NoError(t, err)
	})

	t.Run("unknown explicit arbiter", func(t *testing.T) {
		svc, uow := newTestService(t)

		uow.Accounts.On("GetByID", ctx, int64(10)).Return(account(10, 1000), nil)
		uow.Accounts.On("GetByEmail", ctx, "friend@test").Return(account(20, 500), nil)
		uow.Accounts.On("GetByID", ctx, int64(99)).Return(nil, nil)

		_, err := svc.Propose(ctx, 10, interfaces.ProposeWagerParams{
			Description:   "x",
			Amount:        100,
			OpponentEmail: "friend@test",
			ArbiterID:     ptr(99),
		})

		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestWagerService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("escrows opponent stake and moves to accepted", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 200)

		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)
		uow.Accounts.On("Debit", ctx, int64(20), int64(200)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.Status == entities.WagerStatusAccepted
		})).Return(nil)

		updated, err := svc.Accept(ctx, 5, 20)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusAccepted, updated.Status)
		assert.Equal(t, 1, uow.Committed)
	})

	t.Run("claiming a public wager binds the caller as opponent", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := &entities.Wager{
			ID: 5, Description: "open", Amount: 100, CreatorID: 10,
			Status: entities.WagerStatusPending, IsPublic: true,
		}

		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)
		uow.Accounts.On("Debit", ctx, int64(30), int64(100)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.OpponentID != nil && *w.OpponentID == 30 && w.Status == entities.WagerStatusAccepted
		})).Return(nil)

		updated, err := svc.Accept(ctx, 5, 30)

		require.NoError(t, err)
		require.NotNil(t, updated.OpponentID)
		assert.Equal(t, int64(30), *updated.OpponentID)
	})

	t.Run("creator cannot claim their own public wager", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := &entities.Wager{
			ID: 5, Amount: 100, CreatorID: 10,
			Status: entities.WagerStatusPending, IsPublic: true,
		}

		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.Accept(ctx, 5, 10)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("only the designated opponent may accept", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 200), nil)

		_, err := svc.Accept(ctx, 5, 30)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("invalid state", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 200)
		wager.Status = entities.WagerStatusAccepted
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.Accept(ctx, 5, 20)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("insufficient opponent funds", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 200), nil)
		uow.Accounts.On("Debit", ctx, int64(20), int64(200)).Return(entities.ErrInsufficientFunds)

		_, err := svc.Accept(ctx, 5, 20)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
		assert.Equal(t, 0, uow.Committed)
	})

	t.Run("wager not found", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(404)).Return(nil, nil)

		_, err := svc.Accept(ctx, 404, 20)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestWagerService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds creator and moves to rejected", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 300), nil)
		uow.Accounts.On("Credit", ctx, int64(10), int64(300)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.Status == entities.WagerStatusRejected
		})).Return(nil)

		updated, err := svc.Reject(ctx, 5, 20)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusRejected, updated.Status)
	})

	t.Run("only the opponent may reject", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 300), nil)

		_, err := svc.Reject(ctx, 5, 10)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("rejecting a rejected wager does not double-credit", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 300)
		wager.Status = entities.WagerStatusRejected
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.Reject(ctx, 5, 20)

		assert.ErrorIs(t, err, entities.ErrInvalidState)
		uow.Accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWagerService_ArbiterChange(t *testing.T) {
	ctx := context.Background()

	t.Run("participant requests a new arbiter", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 100), nil)
		uow.Accounts.On("GetByID", ctx, int64(7)).Return(account(7, 1000), nil)
		uow.Wagers.On("Update", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.Status == entities.WagerStatusArbiterChangeRequested &&
				w.ProposedArbiterID != nil && *w.ProposedArbiterID == 7
		})).Return(nil)

		updated, err := svc.RequestArbiterChange(ctx, 5, 20, 7)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusArbiterChangeRequested, updated.Status)
	})

	t.Run("non-participant may not request", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 100), nil)

		_, err := svc.RequestArbiterChange(ctx, 5, 30, 7)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("cannot request once accepted", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.Status = entities.WagerStatusAccepted
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.RequestArbiterChange(ctx, 5, 20, 7)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("unknown proposed arbiter", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 100), nil)
		uow.Accounts.On("GetByID", ctx, int64(7)).Return(nil, nil)

		_, err := svc.RequestArbiterChange(ctx, 5, 20, 7)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("creator approves, arbiter committed and proposal cleared", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.Status = entities.WagerStatusArbiterChangeRequested
		wager.ProposedArbiterID = ptr(7)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)
		uow.Wagers.On("Update", ctx, mock.Anything).Return(nil)

		updated, err := svc.ApproveArbiterChange(ctx, 5, 10)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusPending, updated.Status)
		require.NotNil(t, updated.ArbiterID)
		assert.Equal(t, int64(7), *updated.ArbiterID)
		assert.Nil(t, updated.ProposedArbiterID)
	})

	t.Run("creator rejects, old arbiter kept", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.Status = entities.WagerStatusArbiterChangeRequested
		wager.ArbiterID = ptr(3)
		wager.ProposedArbiterID = ptr(7)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)
		uow.Wagers.On("Update", ctx, mock.Anything).Return(nil)

		updated, err := svc.RejectArbiterChange(ctx, 5, 10)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusPending, updated.Status)
		require.NotNil(t, updated.ArbiterID)
		assert.Equal(t, int64(3), *updated.ArbiterID)
		assert.Nil(t, updated.ProposedArbiterID)
	})

	t.Run("only the creator resolves an arbiter change", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.Status = entities.WagerStatusArbiterChangeRequested
		wager.ProposedArbiterID = ptr(7)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.ApproveArbiterChange(ctx, 5, 20)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("resolve without a pending proposal", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(pendingWager(5, 10, 20, 100), nil)

		_, err := svc.ApproveArbiterChange(ctx, 5, 10)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})
}

func TestWagerService_DeclareWinner(t *testing.T) {
	ctx := context.Background()

	acceptedWager := func(arbiterID *int64) *entities.Wager {
		w := pendingWager(5, 10, 20, 200)
		w.Status = entities.WagerStatusAccepted
		w.ArbiterID = arbiterID
		return w
	}

	t.Run("pays both stakes to the winner", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(acceptedWager(ptr(7)), nil)
		uow.Accounts.On("Credit", ctx, int64(10), int64(400)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.Status == entities.WagerStatusSettled &&
				w.WinnerID != nil && *w.WinnerID == 10
		})).Return(nil)

		updated, err := svc.DeclareWinner(ctx, 5, 7, 10)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusSettled, updated.Status)
		assert.Equal(t, 1, uow.Committed)
	})

	t.Run("default arbiter adjudicates unassigned wagers", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(acceptedWager(nil), nil)
		uow.Accounts.On("Credit", ctx, int64(20), int64(400)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.Anything).Return(nil)

		_, err := svc.DeclareWinner(ctx, 5, testDefaultArbiterID, 20)
		require.NoError(t, err)
	})

	t.Run("only the arbiter declares", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(acceptedWager(ptr(7)), nil)

		_, err := svc.DeclareWinner(ctx, 5, 10, 10)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("winner must be a participant", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(acceptedWager(ptr(7)), nil)

		_, err := svc.DeclareWinner(ctx, 5, 7, 30)
		assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	})

	t.Run("declaring before acceptance is invalid", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 200)
		wager.ArbiterID = ptr(7)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.DeclareWinner(ctx, 5, 7, 10)
		assert.ErrorIs(t, err, entities.ErrInvalidState)
	})

	t.Run("second settlement fails and pays nothing", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := acceptedWager(ptr(7))
		wager.Status = entities.WagerStatusSettled
		wager.WinnerID = ptr(10)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.DeclareWinner(ctx, 5, 7, 10)

		assert.ErrorIs(t, err, entities.ErrAlreadySettled)
		uow.Accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWagerService_ArbiterDecline(t *testing.T) {
	ctx := context.Background()

	t.Run("declining an accepted wager refunds both stakes", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.Status = entities.WagerStatusAccepted
		wager.ArbiterID = ptr(7)

		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)
		uow.Accounts.On("Credit", ctx, int64(10), int64(100)).Return(nil)
		uow.Accounts.On("Credit", ctx, int64(20), int64(100)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.MatchedBy(func(w *entities.Wager) bool {
			return w.Status == entities.WagerStatusRejectedByArbiter
		})).Return(nil)

		updated, err := svc.ArbiterDecline(ctx, 5, 7)

		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusRejectedByArbiter, updated.Status)
		uow.Accounts.AssertExpectations(t)
	})

	t.Run("declining a pending wager refunds only the creator", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.ArbiterID = ptr(7)

		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)
		uow.Accounts.On("Credit", ctx, int64(10), int64(100)).Return(nil)
		uow.Wagers.On("Update", ctx, mock.Anything).Return(nil)

		_, err := svc.ArbiterDecline(ctx, 5, 7)

		require.NoError(t, err)
		uow.Accounts.AssertNumberOfCalls(t, "Credit", 1)
	})

	t.Run("only the arbiter may decline", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.ArbiterID = ptr(7)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.ArbiterDecline(ctx, 5, 10)
		assert.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("re-declining is invalid and refunds nothing", func(t *testing.T) {
		svc, uow := newTestService(t)
		wager := pendingWager(5, 10, 20, 100)
		wager.Status = entities.WagerStatusRejectedByArbiter
		wager.ArbiterID = ptr(7)
		uow.Wagers.On("GetByIDForUpdate", ctx, int64(5)).Return(wager, nil)

		_, err := svc.ArbiterDecline(ctx, 5, 7)

		assert.ErrorIs(t, err, entities.ErrInvalidState)
		uow.Accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWagerService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("ListForArbiter includes unassigned wagers for the default arbiter", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("ListByArbiter", ctx, testDefaultArbiterID, true).Return([]*entities.Wager{}, nil)

		_, err := svc.ListForArbiter(ctx, testDefaultArbiterID)

		require.NoError(t, err)
		uow.Wagers.AssertExpectations(t)
	})

	t.Run("ListForArbiter scopes other arbiters to explicit assignments", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("ListByArbiter", ctx, int64(7), false).Return([]*entities.Wager{}, nil)

		_, err := svc.ListForArbiter(ctx, 7)

		require.NoError(t, err)
		uow.Wagers.AssertExpectations(t)
	})

	t.Run("GetByID wraps a missing wager as NotFound", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("GetByID", ctx, int64(404)).Return(nil, nil)

		_, err := svc.GetByID(ctx, 404)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("ListForUser surfaces repository failures", func(t *testing.T) {
		svc, uow := newTestService(t)
		uow.Wagers.On("ListByParticipant", ctx, int64(10)).Return(nil, errors.New("connection reset"))

		_, err := svc.ListForUser(ctx, 10)
		assert.Error(t, err)
	})
}
