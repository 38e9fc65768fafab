package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cybernews/internal/classify"
	"cybernews/internal/config"
	"cybernews/internal/database"
	"cybernews/internal/feed"
	"cybernews/internal/geo"
	"cybernews/internal/logging"
	"cybernews/internal/server"
)

var (
	// Version will be set during build
	Version = "dev"

	configPath = flag.String("config", "", "Path to config file (default: CYBERNEWS_CONFIG or ./config.yaml)")
	port       = flag.Int("port", 0, "Port to run the server on (overrides config)")
	dbPath     = flag.String("db", "", "Path to database file (overrides config)")
	noSchedule = flag.Bool("no-schedule", false, "Disable the automatic fetch scheduler")
	version    = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("cybernews version %s\n", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger := logging.New(cfg.Log)
	logger.Info().
		Str("version", Version).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Path).
		Msg("starting cybernews")

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Fatal().Err(err).Msg("creating database directory")
	}

	db, err := database.NewDB(cfg.Database.Path, database.DefaultConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing database")
	}
	defer db.Close()

	classifier := classify.NewService(classify.Config{
		LLMEndpoint:    cfg.Classify.LLMEndpoint,
		LLMModel:       cfg.Classify.LLMModel,
		LLMAPIKey:      cfg.Classify.LLMAPIKey,
		ModelEndpoint:  cfg.Classify.ModelEndpoint,
		RequestTimeout: cfg.Fetch.RequestTimeout,
		DisableRemote:  cfg.Classify.DisableRemote,
	}, logger)

	fetcher := feed.NewFetcher(db, classifier, geo.NewAttributor(), cfg.Fetch.RequestTimeout, cfg.Fetch.MaxPerFeed, logger)
	coordinator := feed.NewCoordinator(db, fetcher, cfg.Fetch.RetentionDays, cfg.Fetch.MaxArticles, logger)
	feedService := feed.NewService(coordinator, cfg.Fetch.Interval, logger)
	if !*noSchedule {
		feedService.Start()
		defer feedService.Stop()
	}

	srv := server.New(server.Config{
		Port:          cfg.Server.Port,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		RetentionDays: cfg.Fetch.RetentionDays,
		MaxArticles:   cfg.Fetch.MaxArticles,
	}, db, feedService, classifier, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}
}
