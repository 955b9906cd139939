package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Vodeneev/matchverify/internal/aggregator"
	pkgconfig "github.com/Vodeneev/matchverify/internal/pkg/config"
	"github.com/Vodeneev/matchverify/internal/pkg/logging"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
)

// One-shot aggregation from the command line, report printed as JSON.

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Verify failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	var (
		configPath = flag.String("config", defaultConfig, "path to config file")
		team       = flag.String("team", "", "team name substring filter")
		key        = flag.String("key", "", "competition key (epl, laliga, ...)")
		date       = flag.String("date", "", "explicit date YYYY-MM-DD")
		hours      = flag.Int("hours", -1, "time window in hours (-1: default 7 days)")
		exact      = flag.Bool("exact", false, "exact team name match")
		nocache    = flag.Bool("nocache", false, "bypass the response cache")
		debug      = flag.Bool("debug", false, "include per-source diagnostic notes")
		timeout    = flag.Duration("timeout", 90*time.Second, "overall run deadline")
	)
	flag.Parse()

	appConfig, err := pkgconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logging.SetupLogger(&appConfig.Logging, "verify")

	agg, err := aggregator.BuildFromConfig(appConfig, log)
	if err != nil {
		return err
	}

	f := models.Filter{
		Team:        *team,
		Competition: *key,
		Date:        *date,
		Exact:       *exact,
		NoCache:     *nocache,
		Debug:       *debug,
	}
	if *hours >= 0 {
		f.Hours = hours
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := agg.Verify(ctx, f)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
