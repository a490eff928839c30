package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/flashcards-client/internal/app"
	"github.com/dtroode/flashcards-client/internal/config"
	"github.com/dtroode/flashcards-client/internal/logger"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

	cli := app.NewCLI(newApp, app.BuildInfo{
		Version: buildVersion,
		Date:    buildDate,
		Commit:  buildCommit,
	}, os.Stdout, os.Stderr)

	code := cli.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(cfg.LogLevel, logger.Format(cfg.LogFormat), os.Stderr)

	return app.New(ctx, cfg, logger, app.WithNavigator(func(_ context.Context, surface string) {
		fmt.Fprintf(os.Stderr, "session expired (%s), run flashcards login\n", surface)
	}))
}
