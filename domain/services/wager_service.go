package services

import (
	"context"
	"fmt"

	"betbook/domain/entities"
	"betbook/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type wagerService struct {
	uowFactory       interfaces.UnitOfWorkFactory
	defaultArbiterID int64
	allowSelfWager   bool
}

// NewWagerService creates a new wager service. The default arbiter id and the
// self-wager policy are configuration, not transition logic.
func NewWagerService(uowFactory interfaces.UnitOfWorkFactory, defaultArbiterID int64, allowSelfWager bool) interfaces.WagerService {
	return &wagerService{
		uowFactory:       uowFactory,
		defaultArbiterID: defaultArbiterID,
		allowSelfWager:   allowSelfWager,
	}
}

// Propose creates a new wager and escrows the creator's stake.
func (s *wagerService) Propose(ctx context.Context, creatorID int64, params interfaces.ProposeWagerParams) (*entities.Wager, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive integer", entities.ErrInvalidArgument)
	}
	if params.Description == "" {
		return nil, fmt.Errorf("%w: description cannot be empty", entities.ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	creator, err := uow.AccountRepository().GetByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("%w: creator account %d", entities.ErrNotFound, creatorID)
	}

	var opponentID *int64
	if !params.Public {
		opponent, err := uow.AccountRepository().GetByEmail(ctx, params.OpponentEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve opponent: %w", err)
		}
		if opponent == nil {
			return nil, fmt.Errorf("%w: no account with email %q", entities.ErrNotFound, params.OpponentEmail)
		}
		if opponent.UserID == creatorID && !s.allowSelfWager {
			return nil, fmt.Errorf("%w: cannot wager against yourself", entities.ErrInvalidArgument)
		}
		opponentID = &opponent.UserID
	}

	if params.ArbiterID != nil {
		arbiter, err := uow.AccountRepository().GetByID(ctx, *params.ArbiterID)
		if err != nil {
			return nil, fmt.Errorf("failed to get arbiter: %w", err)
		}
		if arbiter == nil {
			return nil, fmt.Errorf("%w: arbiter account %d", entities.ErrNotFound, *params.ArbiterID)
		}
	}

	// Escrow the creator's stake up front so that settlement never has an
	// insufficient-funds failure mode.
	if err := uow.AccountRepository().Debit(ctx, creatorID, params.Amount); err != nil {
		return nil, fmt.Errorf("failed to escrow creator stake: %w", err)
	}

	wager := &entities.Wager{
		Description: params.Description,
		Amount:      params.Amount,
		CreatorID:   creatorID,
		OpponentID:  opponentID,
		ArbiterID:   params.ArbiterID,
		Status:      entities.WagerStatusPending,
		IsPublic:    params.Public,
	}
	if err := uow.WagerRepository().Create(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"wager_id": wager.ID,
		"creator":  creatorID,
		"amount":   params.Amount,
		"public":   params.Public,
	}).Info("wager proposed")

	return wager, nil
}

// Accept funds the wager with the caller's stake and moves it to accepted.
func (s *wagerService) Accept(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := s.lockWager(ctx, uow, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.IsPublic && wager.OpponentID == nil {
		if callerID == wager.CreatorID {
			return nil, fmt.Errorf("%w: creator cannot claim their own public wager", entities.ErrNotAuthorized)
		}
	} else if wager.OpponentID == nil || *wager.OpponentID != callerID {
		return nil, fmt.Errorf("%w: only the opponent can accept this wager", entities.ErrNotAuthorized)
	}
	if wager.Status != entities.WagerStatusPending {
		return nil, fmt.Errorf("%w: wager %d is %s, not pending", entities.ErrInvalidState, wagerID, wager.Status)
	}

	if err := uow.AccountRepository().Debit(ctx, callerID, wager.Amount); err != nil {
		return nil, fmt.Errorf("failed to escrow opponent stake: %w", err)
	}

	// Claiming an open public wager binds the caller as opponent.
	if wager.OpponentID == nil {
		wager.OpponentID = &callerID
	}
	wager.Status = entities.WagerStatusAccepted
	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"wager_id": wager.ID,
		"opponent": callerID,
		"amount":   wager.Amount,
	}).Info("wager accepted")

	return wager, nil
}

// Reject declines a pending wager and refunds the creator.
func (s *wagerService) Reject(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := s.lockWager(ctx, uow, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.OpponentID == nil || *wager.OpponentID != callerID {
		return nil, fmt.Errorf("%w: only the opponent can reject this wager", entities.ErrNotAuthorized)
	}
	if wager.Status != entities.WagerStatusPending {
		return nil, fmt.Errorf("%w: wager %d is %s, not pending", entities.ErrInvalidState, wagerID, wager.Status)
	}

	if err := uow.AccountRepository().Credit(ctx, wager.CreatorID, wager.Amount); err != nil {
		return nil, fmt.Errorf("failed to refund creator: %w", err)
	}

	wager.Status = entities.WagerStatusRejected
	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wager, nil
}

// RequestArbiterChange proposes a new arbiter for a pending wager. No currency
// moves; the wager waits for the creator's approval.
func (s *wagerService) RequestArbiterChange(ctx context.Context, wagerID, callerID, newArbiterID int64) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := s.lockWager(ctx, uow, wagerID)
	if err != nil {
		return nil, err
	}

	if !wager.IsParticipant(callerID) {
		return nil, fmt.Errorf("%w: only a participant can request an arbiter change", entities.ErrNotAuthorized)
	}
	if wager.Status != entities.WagerStatusPending {
		return nil, fmt.Errorf("%w: wager %d is %s, not pending", entities.ErrInvalidState, wagerID, wager.Status)
	}

	arbiter, err := uow.AccountRepository().GetByID(ctx, newArbiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposed arbiter: %w", err)
	}
	if arbiter == nil {
		return nil, fmt.Errorf("%w: arbiter account %d", entities.ErrNotFound, newArbiterID)
	}

	wager.ProposedArbiterID = &newArbiterID
	wager.Status = entities.WagerStatusArbiterChangeRequested
	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wager, nil
}

// ApproveArbiterChange commits the proposed arbiter and clears the proposal.
func (s *wagerService) ApproveArbiterChange(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error) {
	return s.resolveArbiterChange(ctx, wagerID, callerID, true)
}

// RejectArbiterChange discards the proposed arbiter, keeping the old one.
func (s *wagerService) RejectArbiterChange(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error) {
	return s.resolveArbiterChange(ctx, wagerID, callerID, false)
}

func (s *wagerService) resolveArbiterChange(ctx context.Context, wagerID, callerID int64, approve bool) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := s.lockWager(ctx, uow, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.CreatorID != callerID {
		return nil, fmt.Errorf("%w: only the creator can resolve an arbiter change", entities.ErrNotAuthorized)
	}
	if wager.Status != entities.WagerStatusArbiterChangeRequested {
		return nil, fmt.Errorf("%w: wager %d is %s, no arbiter change requested", entities.ErrInvalidState, wagerID, wager.Status)
	}

	if approve {
		wager.ArbiterID = wager.ProposedArbiterID
	}
	wager.ProposedArbiterID = nil
	wager.Status = entities.WagerStatusPending
	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wager, nil
}

// DeclareWinner settles an accepted wager, releasing both escrowed stakes to
// the winner in the same transaction as the status change.
func (s *wagerService) DeclareWinner(ctx context.Context, wagerID, callerID, winnerID int64) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := s.lockWager(ctx, uow, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.ResolvedArbiter(s.defaultArbiterID) != callerID {
		return nil, fmt.Errorf("%w: only the arbiter can declare the winner", entities.ErrNotAuthorized)
	}
	// A settled wager reports settlement, not a generic state error.
	if wager.WinnerID != nil {
		return nil, fmt.Errorf("%w: wager %d already has a winner", entities.ErrAlreadySettled, wagerID)
	}
	if wager.Status != entities.WagerStatusAccepted {
		return nil, fmt.Errorf("%w: wager %d is %s, not accepted", entities.ErrInvalidState, wagerID, wager.Status)
	}
	if !wager.IsParticipant(winnerID) {
		return nil, fmt.Errorf("%w: winner must be the creator or the opponent", entities.ErrInvalidArgument)
	}

	// Both stakes are already escrowed; settlement is a pure payout.
	if err := uow.AccountRepository().Credit(ctx, winnerID, 2*wager.Amount); err != nil {
		return nil, fmt.Errorf("failed to pay out winner: %w", err)
	}

	wager.WinnerID = &winnerID
	wager.Status = entities.WagerStatusSettled
	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"wager_id": wager.ID,
		"winner":   winnerID,
		"loser":    wager.OpponentOf(winnerID),
		"payout":   2 * wager.Amount,
	}).Info("wager settled")

	return wager, nil
}

// ArbiterDecline refuses to adjudicate a non-terminal wager, refunding every
// stake currently in escrow.
func (s *wagerService) ArbiterDecline(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := s.lockWager(ctx, uow, wagerID)
	if err != nil {
		return nil, err
	}

	if wager.ResolvedArbiter(s.defaultArbiterID) != callerID {
		return nil, fmt.Errorf("%w: only the arbiter can decline this wager", entities.ErrNotAuthorized)
	}

	switch wager.Status {
	case entities.WagerStatusPending, entities.WagerStatusArbiterChangeRequested:
		// Only the creator's stake is escrowed.
		if err := uow.AccountRepository().Credit(ctx, wager.CreatorID, wager.Amount); err != nil {
			return nil, fmt.Errorf("failed to refund creator: %w", err)
		}
	case entities.WagerStatusAccepted:
		if err := uow.AccountRepository().Credit(ctx, wager.CreatorID, wager.Amount); err != nil {
			return nil, fmt.Errorf("failed to refund creator: %w", err)
		}
		if err := uow.AccountRepository().Credit(ctx, *wager.OpponentID, wager.Amount); err != nil {
			return nil, fmt.Errorf("failed to refund opponent: %w", err)
		}
	case entities.WagerStatusRejected, entities.WagerStatusSettled, entities.WagerStatusRejectedByArbiter:
		return nil, fmt.Errorf("%w: wager %d is already %s", entities.ErrInvalidState, wagerID, wager.Status)
	default:
		return nil, fmt.Errorf("%w: wager %d has unknown status %q", entities.ErrInvalidState, wagerID, wager.Status)
	}

	wager.Status = entities.WagerStatusRejectedByArbiter
	if err := uow.WagerRepository().Update(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to update wager: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"wager_id": wager.ID,
		"arbiter":  callerID,
	}).Info("wager declined by arbiter")

	return wager, nil
}

// GetByID retrieves a single wager.
func (s *wagerService) GetByID(ctx context.Context, wagerID int64) (*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return nil, fmt.Errorf("%w: wager %d", entities.ErrNotFound, wagerID)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return wager, nil
}

// ListForUser returns the caller's wagers, newest first.
func (s *wagerService) ListForUser(ctx context.Context, callerID int64) ([]*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().ListByParticipant(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers for user %d: %w", callerID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return wagers, nil
}

// ListForArbiter returns accepted wagers awaiting the caller's judgment. The
// default arbiter also sees accepted wagers with no explicit assignment.
func (s *wagerService) ListForArbiter(ctx context.Context, callerID int64) ([]*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().ListByArbiter(ctx, callerID, callerID == s.defaultArbiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers for arbiter %d: %w", callerID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return wagers, nil
}

// ListPublicOpen returns public wagers anyone may still claim.
func (s *wagerService) ListPublicOpen(ctx context.Context) ([]*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().ListPublicOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public wagers: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return wagers, nil
}

// lockWager loads a wager under a row lock so that validation and the
// subsequent writes observe a linearized view of the wager's state.
func (s *wagerService) lockWager(ctx context.Context, uow interfaces.UnitOfWork, wagerID int64) (*entities.Wager, error) {
	wager, err := uow.WagerRepository().GetByIDForUpdate(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return nil, fmt.Errorf("%w: wager %d", entities.ErrNotFound, wagerID)
	}
	return wager, nil
}
