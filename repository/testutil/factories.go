package testutil

import (
	"time"

	"betbook/domain/entities"
)

// CreateTestAccount creates an account entity with default values
func CreateTestAccount(userID int64, email, displayName string) *entities.Account {
	now := time.Now()
	return &entities.Account{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		Balance:     1000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestWager creates a pending wager between two users
func CreateTestWager(creatorID, opponentID int64, amount int64) *entities.Wager {
	return &entities.Wager{
		Description: "test wager",
		Amount:      amount,
		CreatorID:   creatorID,
		OpponentID:  &opponentID,
		Status:      entities.WagerStatusPending,
	}
}

// CreateTestPublicWager creates an open public wager with no opponent bound
func CreateTestPublicWager(creatorID int64, amount int64) *entities.Wager {
	return &entities.Wager{
		Description: "test public wager",
		Amount:      amount,
		CreatorID:   creatorID,
		Status:      entities.WagerStatusPending,
		IsPublic:    true,
	}
}
