package entities

import "errors"

// Domain error kinds. Engine operations wrap these with fmt.Errorf("...: %w")
// so callers can discriminate failures with errors.Is. No operation returns a
// generic catch-all kind.
var (
	// ErrNotFound indicates a wager or account id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized indicates the caller lacks the role required for the
	// requested transition.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidState indicates the transition is not legal from the wager's
	// current status.
	ErrInvalidState = errors.New("invalid wager state")

	// ErrInsufficientFunds indicates an account balance is below the stake.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidArgument indicates a malformed amount, a winner who is not a
	// participant, or a disallowed self-wager.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadySettled guards against duplicate settlement of a wager.
	ErrAlreadySettled = errors.New("wager already settled")

	// ErrConflict indicates a concurrent update lost the race (serialization
	// failure, deadlock or lock timeout). The whole operation can be retried.
	ErrConflict = errors.New("concurrent update conflict")
)
