package entities

// UserStats aggregates one user's record over all settled wagers.
type UserStats struct {
	UserID      int64
	DisplayName string
	Wins        int
	Losses      int
	TotalBets   int
	WinRate     int // percentage, rounded
	CoinsWon    int64
	CoinsLost   int64
	Balance     int64 // CoinsWon - CoinsLost
}

// Ranking holds the two leaderboards derived from settled wagers.
// It is recomputed from scratch on every query and carries no state of its own.
type Ranking struct {
	Winners []*UserStats // top by wins desc, win rate desc; wins > 0
	Losers  []*UserStats // top by losses desc, win rate asc; losses > 0
}
