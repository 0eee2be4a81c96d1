package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/league-standings/internal/app"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/interfaces/console"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

func main() {
	leagueID := flag.String("league", "", "league to select on start")
	tournamentID := flag.String("tournament", "", "tournament to load on start")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewConsole(cfg.LogLevel, os.Stderr)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	controller := usecase.NewFilterController(application.Datasets, logger)
	term := console.New(controller, application.Catalog, os.Stdout, logger)

	if *leagueID != "" {
		if _, err := term.Execute(ctx, "league "+*leagueID); err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
		}
	}
	if *tournamentID != "" {
		if _, err := term.Execute(ctx, "tournament "+*tournamentID); err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
		}
	}

	if err := term.Run(ctx, os.Stdin); err != nil {
		logger.Error("console stopped", "error", err)
		os.Exit(1)
	}
}
