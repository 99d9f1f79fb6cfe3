package entities

import "time"

// WagerStatus represents the lifecycle state of a wager.
//
// The status set is closed: every switch over it in this package and in the
// engine lists all six values, so adding a state forces each transition site
// to be revisited.
type WagerStatus string

const (
	WagerStatusPending                WagerStatus = "pending"
	WagerStatusArbiterChangeRequested WagerStatus = "arbiter_change_requested"
	WagerStatusAccepted               WagerStatus = "accepted"
	WagerStatusRejected               WagerStatus = "rejected"
	WagerStatusSettled                WagerStatus = "settled"
	WagerStatusRejectedByArbiter      WagerStatus = "rejected_by_arbiter"
)

// IsTerminal reports whether no transition may leave this status.
func (s WagerStatus) IsTerminal() bool {
	switch s {
	case WagerStatusRejected, WagerStatusSettled, WagerStatusRejectedByArbiter:
		return true
	case WagerStatusPending, WagerStatusArbiterChangeRequested, WagerStatusAccepted:
		return false
	}
	return false
}

// IsValid reports whether the status is one of the known states.
func (s WagerStatus) IsValid() bool {
	switch s {
	case WagerStatusPending, WagerStatusArbiterChangeRequested, WagerStatusAccepted,
		WagerStatusRejected, WagerStatusSettled, WagerStatusRejectedByArbiter:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s WagerStatus) String() string {
	return string(s)
}

// Wager represents a stake between two users adjudicated by an arbiter.
//
// OpponentID is nil for a public wager that has not been claimed yet.
// ArbiterID is nil when the process-wide default arbiter applies.
// ProposedArbiterID is set only while an arbiter change is being negotiated.
// WinnerID is set exactly once, at settlement.
type Wager struct {
	ID                int64       `db:"id"`
	Description       string      `db:"description"`
	Amount            int64       `db:"amount"`
	CreatorID         int64       `db:"creator_id"`
	OpponentID        *int64      `db:"opponent_id"`
	ArbiterID         *int64      `db:"arbiter_id"`
	ProposedArbiterID *int64      `db:"proposed_arbiter_id"`
	WinnerID          *int64      `db:"winner_id"`
	Status            WagerStatus `db:"status"`
	IsPublic          bool        `db:"is_public"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

// IsParticipant checks if a user is the creator or the bound opponent.
func (w *Wager) IsParticipant(userID int64) bool {
	if w.CreatorID == userID {
		return true
	}
	return w.OpponentID != nil && *w.OpponentID == userID
}

// OpponentOf returns the other participant's id for a given participant,
// or 0 when the user is not a participant or no opponent is bound.
func (w *Wager) OpponentOf(userID int64) int64 {
	if w.OpponentID == nil {
		return 0
	}
	switch userID {
	case w.CreatorID:
		return *w.OpponentID
	case *w.OpponentID:
		return w.CreatorID
	}
	return 0
}

// ResolvedArbiter returns the arbiter responsible for this wager, falling
// back to the configured default when none was assigned.
func (w *Wager) ResolvedArbiter(defaultArbiterID int64) int64 {
	if w.ArbiterID != nil {
		return *w.ArbiterID
	}
	return defaultArbiterID
}

// IsOpen reports whether this is a public wager still awaiting an opponent.
func (w *Wager) IsOpen() bool {
	return w.IsPublic && w.OpponentID == nil && w.Status == WagerStatusPending
}

// CanBeAcceptedBy checks if the wager can be accepted by the given user.
// For an open public wager anyone but the creator may claim it; otherwise
// only the designated opponent may accept.
func (w *Wager) CanBeAcceptedBy(userID int64) bool {
	if w.Status != WagerStatusPending {
		return false
	}
	if w.IsPublic && w.OpponentID == nil {
		return userID != w.CreatorID
	}
	return w.OpponentID != nil && *w.OpponentID == userID
}

// EscrowedAmount returns the currency currently held by the system for this
// wager: the creator's stake once proposed, both stakes once accepted, and
// nothing in a terminal state.
func (w *Wager) EscrowedAmount() int64 {
	switch w.Status {
	case WagerStatusPending, WagerStatusArbiterChangeRequested:
		return w.Amount
	case WagerStatusAccepted:
		return 2 * w.Amount
	case WagerStatusRejected, WagerStatusSettled, WagerStatusRejectedByArbiter:
		return 0
	}
	return 0
}
