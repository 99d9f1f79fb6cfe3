package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
)

const rankingSize = 10

type rankingService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewRankingService creates a new ranking service.
func NewRankingService(uowFactory interfaces.UnitOfWorkFactory) interfaces.RankingService {
	return &rankingService{uowFactory: uowFactory}
}

// GetRanking recomputes the leaderboards from all settled wagers. The view is
// a pure function of the settled set and holds no state between queries.
func (s *rankingService) GetRanking(ctx context.Context) (*entities.Ranking, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settled, err := uow.WagerRepository().ListSettled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settled wagers: %w", err)
	}
	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return BuildRanking(settled, accounts), nil
}

// BuildRanking aggregates per-user stats over settled wagers and produces the
// winners and losers leaderboards.
func BuildRanking(settled []*entities.Wager, accounts []*entities.Account) *entities.Ranking {
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.UserID] = a.DisplayName
	}

	stats := make(map[int64]*entities.UserStats)
	get := func(userID int64) *entities.UserStats {
		if st, ok := stats[userID]; ok {
			return st
		}
		st := &entities.UserStats{UserID: userID, DisplayName: names[userID]}
		stats[userID] = st
		return st
	}

	for _, w := range settled {
		if w.WinnerID == nil || w.OpponentID == nil {
			continue
		}
		winner := get(*w.WinnerID)
		loser := get(w.OpponentOf(*w.WinnerID))

		winner.Wins++
		winner.CoinsWon += w.Amount
		loser.Losses++
		loser.CoinsLost += w.Amount
	}

	for _, st := range stats {
		st.TotalBets = st.Wins + st.Losses
		if st.TotalBets > 0 {
			st.WinRate = int(math.Round(100 * float64(st.Wins) / float64(st.TotalBets)))
		}
		st.Balance = st.CoinsWon - st.CoinsLost
	}

	var winners, losers []*entities.UserStats
	for _, st := range stats {
		if st.Wins > 0 {
			winners = append(winners, st)
		}
		if st.Losses > 0 {
			losers = append(losers, st)
		}
	}

	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Wins != winners[j].Wins {
			return winners[i].Wins > winners[j].Wins
		}
		return winners[i].WinRate > winners[j].WinRate
	})
	sort.Slice(losers, func(i, j int) bool {
		if losers[i].Losses != losers[j].Losses {
			return losers[i].Losses > losers[j].Losses
		}
		return losers[i].WinRate < losers[j].WinRate
	})

	if len(winners) > rankingSize {
		winners = winners[:rankingSize]
	}
	if len(losers) > rankingSize {
		losers = losers[:rankingSize]
	}

	return &entities.Ranking{Winners: winners, Losers: losers}
}
