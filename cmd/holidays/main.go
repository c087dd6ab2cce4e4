package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rickgao/holiday-data/internal/auth"
	"github.com/rickgao/holiday-data/internal/config"
	"github.com/rickgao/holiday-data/internal/database"
	"github.com/rickgao/holiday-data/internal/poller"
	"github.com/rickgao/holiday-data/internal/store"
	"github.com/rickgao/holiday-data/internal/updater"
	"github.com/rickgao/holiday-data/internal/version"
	"github.com/rickgao/holiday-data/internal/writer"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("holidays", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	startYear := fs.Int("start-year", 0, "first year to fetch (inclusive)")
	endYear := fs.Int("end-year", 0, "last year to fetch (inclusive)")
	recreate := fs.Bool("recreate", false, "rebuild datasets from fetched data only")
	force := fs.Bool("force", false, "with -recreate, overwrite datasets that already have data")
	apiKey := fs.String("api-key", "", "Google API key (default: $"+auth.EnvAPIKey+" or the env file)")
	jsonDir := fs.String("json-dir", config.DefaultStoreDir, "directory holding <CC>.json datasets")
	countryList := fs.String("countries", "", "comma-separated country codes (default: every dataset in -json-dir)")
	sourceName := fs.String("source", config.DefaultSource, "fetch backend: rest, sdk or ics")
	schedule := fs.String("schedule", "", "cron spec for periodic runs (empty runs once)")
	envFile := fs.String("env-file", config.DefaultEnvFile, "dotenv file consulted for the API key")
	logLevel := fs.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *showVersion {
		fmt.Println(version.String())
		return exitOK
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadWithDefaults(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return exitUsage
		}
		cfg = loaded
	}

	overrides := flagOverrides{
		startYear: startYear,
		endYear:   endYear,
		recreate:  recreate,
		force:     force,
		apiKey:    apiKey,
		jsonDir:   jsonDir,
		countries: countryList,
		source:    sourceName,
		schedule:  schedule,
		envFile:   envFile,
		logLevel:  logLevel,
	}
	overrides.apply(fs, cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fs.Usage()
		return exitUsage
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting holiday updater",
		"version", version.Version,
		"commit", version.Commit,
		"source", cfg.Source,
		"json_dir", cfg.Store.Dir,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	key := ""
	if needsAPIKey(cfg.Source) {
		k, from, err := auth.ResolveAPIKey(cfg.API.APIKey, cfg.API.EnvFile)
		if err != nil {
			logger.Error("missing credentials", "error", err)
			return exitUsage
		}
		logger.Debug("api key resolved", "from", from, "key", auth.Mask(k))
		key = k
	}

	src, err := newSource(ctx, cfg, key, logger)
	if err != nil {
		logger.Error("failed to create source", "error", err)
		return exitFailure
	}

	mode, err := updater.ParseMode(cfg.Update.Mode)
	if err != nil {
		logger.Error("invalid mode", "error", err)
		return exitUsage
	}

	opts := []updater.Option{updater.WithLogger(logger)}

	var db pinger
	if cfg.Database.Enabled() {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return exitFailure
		}
		defer pool.Close()

		w := writer.NewDatasetWriter(pool, logger)
		if err := w.EnsureSchema(ctx); err != nil {
			logger.Error("failed to prepare mirror table", "error", err)
			return exitFailure
		}
		opts = append(opts, updater.WithMirror(w))
		db = pool
		logger.Info("database connected")
	}

	upd := updater.New(src, store.New(cfg.Store.Dir), updater.Options{
		Years:     cfg.Update.Years(),
		Mode:      mode,
		Force:     cfg.Update.Force,
		Countries: cfg.Update.Countries,
	}, opts...)

	if cfg.Schedule.Cron == "" {
		return runOnce(ctx, upd, logger)
	}
	return runScheduled(ctx, cfg, upd, db, logger)
}

func runOnce(ctx context.Context, upd *updater.Updater, logger *slog.Logger) int {
	report, err := upd.Run(ctx, nil)
	if err != nil {
		logger.Error("update run could not start", "error", err)
		if errors.Is(err, updater.ErrNoCountries) {
			return exitUsage
		}
		return exitFailure
	}
	report.LogSummary(logger)
	if report.Failed() > 0 {
		return exitFailure
	}
	return exitOK
}

func runScheduled(ctx context.Context, cfg *config.Config, upd *updater.Updater, db pinger, logger *slog.Logger) int {
	p, err := poller.New(poller.Config{Schedule: cfg.Schedule.Cron}, upd, logger)
	if err != nil {
		logger.Error("invalid schedule", "error", err)
		return exitUsage
	}

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Schedule.HealthPort),
		Handler:           newHealthHandler(p, db),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Schedule.HealthPort)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	if err := p.Start(ctx); err != nil {
		logger.Error("failed to start poller", "error", err)
		return exitFailure
	}

	logger.Info("holiday updater running",
		"schedule", cfg.Schedule.Cron,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Schedule.HealthPort),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := p.Stop(shutdownCtx); err != nil {
		logger.Warn("poller stop timed out", "error", err)
	}
	healthServer.Shutdown(shutdownCtx)

	logger.Info("holiday updater stopped")
	return exitOK
}

// flagOverrides copies explicitly set flags over the loaded config.
type flagOverrides struct {
	startYear *int
	endYear   *int
	recreate  *bool
	force     *bool
	apiKey    *string
	jsonDir   *string
	countries *string
	source    *string
	schedule  *string
	envFile   *string
	logLevel  *string
}

func (o flagOverrides) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start-year":
			cfg.Update.StartYear = *o.startYear
		case "end-year":
			cfg.Update.EndYear = *o.endYear
		case "recreate":
			if *o.recreate {
				cfg.Update.Mode = string(updater.ModeRecreate)
			} else {
				cfg.Update.Mode = string(updater.ModeAppend)
			}
		case "force":
			cfg.Update.Force = *o.force
		case "api-key":
			cfg.API.APIKey = *o.apiKey
		case "json-dir":
			cfg.Store.Dir = *o.jsonDir
		case "countries":
			cfg.Update.Countries = splitCodes(*o.countries)
		case "source":
			cfg.Source = *o.source
		case "schedule":
			cfg.Schedule.Cron = *o.schedule
		case "env-file":
			cfg.API.EnvFile = *o.envFile
		case "log-level":
			cfg.Log.Level = *o.logLevel
		}
	})
}

// splitCodes parses "jp, US,,gb" into [JP US GB].
func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
