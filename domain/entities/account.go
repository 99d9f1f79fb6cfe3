package entities

import "time"

// Account is a user's ledger account holding virtual currency.
// Balances only ever change through the wager engine's escrow,
// refund and settlement operations.
type Account struct {
	UserID      int64     `db:"user_id"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	Balance     int64     `db:"balance"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount.
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}
