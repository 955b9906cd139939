package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vodeneev/matchverify/internal/aggregator"
	pkgconfig "github.com/Vodeneev/matchverify/internal/pkg/config"
	"github.com/Vodeneev/matchverify/internal/pkg/health"
	"github.com/Vodeneev/matchverify/internal/pkg/logging"
	"github.com/Vodeneev/matchverify/internal/pkg/models"
	"github.com/Vodeneev/matchverify/internal/pkg/notify"
	"github.com/Vodeneev/matchverify/internal/pkg/storage"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Aggregator failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseFlags()

	appConfig, err := pkgconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.SetupLogger(&appConfig.Logging, "aggregator")
	log.Info("Config loaded", "path", configPath)

	agg, err := aggregator.BuildFromConfig(appConfig, log)
	if err != nil {
		return err
	}

	verifier := health.Verifier(agg)

	// Optional sinks: run snapshots to Postgres, confirmed-fixture pushes
	// to Telegram. Both off unless configured.
	var store *storage.RunStore
	if appConfig.Postgres.DSN != "" {
		store, err = storage.NewRunStore(&appConfig.Postgres)
		if err != nil {
			return fmt.Errorf("failed to init run store: %w", err)
		}
		defer store.Close()
	}
	var notifier *notify.TelegramNotifier
	if appConfig.Telegram.BotToken != "" {
		notifier = notify.NewTelegramNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)
	}
	if store != nil || notifier != nil {
		verifier = &observedVerifier{inner: agg, store: store, notifier: notifier}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	addr, err := health.AddrFor(appConfig.Health.Port)
	if err != nil {
		return err
	}

	server := health.NewServer(verifier, log)
	if err := server.Run(ctx, addr, appConfig.Health.ReadHeaderTimeout); err != nil {
		return err
	}

	log.Info("Aggregator running", "addr", addr)
	<-ctx.Done()
	log.Info("Shutting down")
	return nil
}

func parseFlags() string {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	configPath := flag.String("config", defaultConfig, "path to config file")
	flag.Parse()
	return *configPath
}

// observedVerifier decorates the aggregator with the optional sinks so the
// aggregation itself stays a pure function of its inputs.
type observedVerifier struct {
	inner    health.Verifier
	store    *storage.RunStore
	notifier *notify.TelegramNotifier
}

func (v *observedVerifier) Verify(ctx context.Context, f models.Filter) (*models.Report, error) {
	report, err := v.inner.Verify(ctx, f)
	if err != nil {
		return nil, err
	}
	if v.store != nil {
		if err := v.store.SaveRun(ctx, f, report); err != nil {
			slog.Warn("Failed to store run snapshot", "error", err)
		}
	}
	v.notifier.NotifyConfirmed(report)
	return report, nil
}
