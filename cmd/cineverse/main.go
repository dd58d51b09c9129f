package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cineverse/cineverse/internal/api"
	"github.com/cineverse/cineverse/internal/calendar"
	"github.com/cineverse/cineverse/internal/chat"
	"github.com/cineverse/cineverse/internal/config"
	"github.com/cineverse/cineverse/internal/profile"
	"github.com/cineverse/cineverse/internal/recommend"
	"github.com/cineverse/cineverse/internal/scheduler"
	"github.com/cineverse/cineverse/internal/search"
	"github.com/cineverse/cineverse/internal/services/gemini"
	"github.com/cineverse/cineverse/internal/services/tmdb"
	"github.com/cineverse/cineverse/internal/store"
	"github.com/cineverse/cineverse/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting CineVerse")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize persistence
	kv, err := store.OpenBolt(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer kv.Close()
	st := store.New(kv, cfg.DefaultLanguage, logger)
	logger.Info("Database initialized")

	// 4. Initialize services
	catalogClient, err := tmdb.NewClient(cfg, st.Language, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog client: %w", err)
	}
	logger.Info("Catalog client initialized")

	geminiClient := gemini.NewClient(cfg, logger)
	if geminiClient.Configured() {
		logger.Info("Generative client initialized")
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI chat will answer with a configuration hint")
	}

	reconciler := recommend.NewReconciler(catalogClient, logger)
	chatService := chat.NewService(st, geminiClient, reconciler, logger)
	searchService := search.NewService(catalogClient, logger)
	calendarAgg := calendar.NewAggregator(st, catalogClient, logger)
	profileAgg := profile.NewAggregator(st)
	logger.Info("Services initialized")

	// 5. Initialize scheduler
	sched := scheduler.NewScheduler(catalogClient, calendarAgg, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, api.Deps{
		Store:    st,
		Catalog:  catalogClient,
		Search:   searchService,
		Chat:     chatService,
		Calendar: calendarAgg,
		Profile:  profileAgg,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("CineVerse is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("CineVerse stopped")
	return nil
}
