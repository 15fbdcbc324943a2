package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/review-board/app"
	"github.com/Black-And-White-Club/review-board/app/observability"
	"github.com/Black-And-White-Club/review-board/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "review-board",
		Usage: "serve category and leaderboard reviews over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "review-board: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	obs := observability.New(cfg.Observability, os.Stdout)
	logger := obs.Logger

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("Failed to close application", "error", err)
		}
	}()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Application shut down gracefully")
	return nil
}
