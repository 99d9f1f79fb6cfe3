package main

import (
	"context"
	"fmt"
	"os"

	"betbook/config"
	"betbook/database"
	"betbook/domain/services"
	"betbook/repository"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: betbook <command>")
		fmt.Println("commands:")
		fmt.Println("  migrate up|down [steps]|status   manage database schema")
		fmt.Println("  seed-account <email> <name>      provision an account with the starting balance")
		fmt.Println("  ranking                          print the current leaderboards")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "migrate":
		err = handleMigrationCommand()
	case "seed-account":
		err = handleSeedAccount()
	case "ranking":
		err = handleRanking()
	default:
		err = fmt.Errorf("unknown command: %s", os.Args[1])
	}

	if err != nil {
		log.Fatal(err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: betbook migrate [up|down|status] [args...]")
	}

	switch os.Args[2] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}

func handleSeedAccount() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: betbook seed-account <email> <display-name>")
	}
	email, displayName := os.Args[2], os.Args[3]

	ctx := context.Background()
	cfg := config.Get()
	setupLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	directory := services.NewUserDirectory(repository.NewUnitOfWorkFactory(db), cfg.StartingBalance)
	account, err := directory.Provision(ctx, email, displayName)
	if err != nil {
		return err
	}

	fmt.Printf("account %d (%s) balance %d\n", account.UserID, account.Email, account.Balance)
	return nil
}

func handleRanking() error {
	ctx := context.Background()
	cfg := config.Get()
	setupLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ranking, err := services.NewRankingService(repository.NewUnitOfWorkFactory(db)).GetRanking(ctx)
	if err != nil {
		return err
	}

	fmt.Println("winners:")
	for i, st := range ranking.Winners {
		fmt.Printf("%2d. %-20s wins=%d winRate=%d%% net=%+d\n", i+1, st.DisplayName, st.Wins, st.WinRate, st.Balance)
	}
	fmt.Println("losers:")
	for i, st := range ranking.Losers {
		fmt.Printf("%2d. %-20s losses=%d winRate=%d%% net=%+d\n", i+1, st.DisplayName, st.Losses, st.WinRate, st.Balance)
	}
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
