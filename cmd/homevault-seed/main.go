package main

import (
	"context"
	"flag"
	"os"
	"time"

	"homevault/pkg/homevault/config"
	"homevault/pkg/homevault/logging"
	"homevault/pkg/homevault/seeder"
)

func main() {
	cfg := config.Load()

	baseURL := flag.String("url", cfg.BaseURL, "base URL of the target instance")
	fixturePath := flag.String("fixture", "", "path to a fixture JSON file (default: embedded dataset)")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	logger := logging.New(cfg.Log)

	fixture, err := seeder.LoadFixture(*fixturePath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load fixture")
	}

	client := seeder.NewClient(*baseURL, *timeout)
	driver := seeder.NewDriver(client, logger)

	summary := driver.Run(context.Background(), fixture)

	// A run with failures still seeds what it can; signal it in the
	// exit code so scripts notice.
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
