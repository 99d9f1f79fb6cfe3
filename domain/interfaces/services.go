package interfaces

import (
	"context"

	"betbook/domain/entities"
)

// ProposeWagerParams carries the caller-supplied fields of a new wager.
// OpponentEmail is ignored for public wagers, which start without an opponent.
// ArbiterID nil means the configured default arbiter adjudicates.
type ProposeWagerParams struct {
	Description   string
	Amount        int64
	OpponentEmail string
	ArbiterID     *int64
	Public        bool
}

// WagerService drives the wager state machine and its ledger effects. Every
// operation receives the already-authenticated caller's user id and performs
// no credential checking of its own.
type WagerService interface {
	// Propose creates a new wager in pending state, escrowing the creator's
	// stake in the same transaction.
	Propose(ctx context.Context, creatorID int64, params ProposeWagerParams) (*entities.Wager, error)

	// Accept funds the wager with the opponent's stake and moves it to
	// accepted. For a public wager the caller is bound as opponent.
	Accept(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error)

	// Reject declines a pending wager and refunds the creator's stake.
	Reject(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error)

	// RequestArbiterChange proposes a different arbiter for a pending wager.
	RequestArbiterChange(ctx context.Context, wagerID, callerID, newArbiterID int64) (*entities.Wager, error)

	// ApproveArbiterChange commits the proposed arbiter and returns the wager
	// to pending.
	ApproveArbiterChange(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error)

	// RejectArbiterChange discards the proposed arbiter, keeping the old one.
	RejectArbiterChange(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error)

	// DeclareWinner settles an accepted wager, paying both escrowed stakes
	// out to the winner.
	DeclareWinner(ctx context.Context, wagerID, callerID, winnerID int64) (*entities.Wager, error)

	// ArbiterDecline refuses to adjudicate, refunding every escrowed stake.
	ArbiterDecline(ctx context.Context, wagerID, callerID int64) (*entities.Wager, error)

	// GetByID retrieves a single wager.
	GetByID(ctx context.Context, wagerID int64) (*entities.Wager, error)

	// ListForUser returns the caller's wagers, newest first.
	ListForUser(ctx context.Context, callerID int64) ([]*entities.Wager, error)

	// ListForArbiter returns accepted wagers awaiting the caller's judgment.
	ListForArbiter(ctx context.Context, callerID int64) ([]*entities.Wager, error)

	// ListPublicOpen returns public wagers anyone may still claim.
	ListPublicOpen(ctx context.Context) ([]*entities.Wager, error)
}

// UserDirectory resolves identities to ledger accounts.
type UserDirectory interface {
	// ResolveByEmail returns the user id for an email address.
	ResolveByEmail(ctx context.Context, email string) (int64, error)

	// GetAccount returns the account for a user id.
	GetAccount(ctx context.Context, userID int64) (*entities.Account, error)

	// ListAccounts returns all accounts ordered by display name.
	ListAccounts(ctx context.Context) ([]*entities.Account, error)

	// Provision creates an account with the configured starting balance.
	// Provisioning an already-known email returns the existing account.
	Provision(ctx context.Context, email, displayName string) (*entities.Account, error)
}

// RankingService computes the leaderboards over settled wagers.
type RankingService interface {
	GetRanking(ctx context.Context) (*entities.Ranking, error)
}
