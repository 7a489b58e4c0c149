package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cereal-api/internal/client"
	"cereal-api/internal/config"
	"cereal-api/internal/database"
	"cereal-api/internal/handler"
	"cereal-api/internal/ingest"
	"cereal-api/internal/repository"
	"cereal-api/internal/router"
	"cereal-api/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cereal API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, cfg.Database.ConnectionString()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	cerealRepo := repository.NewCerealRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize services
	cerealService := service.NewCerealService(cerealRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	// Initialize HTTP handlers and router
	cerealHandler := handler.NewCerealHandler(cerealService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	mux := router.New(cerealHandler, userHandler, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// One-time ingestion when the store is empty. A failed ingestion leaves
	// the store as-is; already-inserted rows stay committed and the service
	// keeps running.
	job := ingest.New(cerealRepo, logger)
	if err := job.RunIfEmpty(ctx, cfg.Ingest.File); err != nil {
		logger.Error().Err(err).Str("file", cfg.Ingest.File).Msg("ingestion failed")
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Interactive console, coupled to the server only through HTTP.
	consoleDone := make(chan error, 1)
	if cfg.Console.Enabled {
		go func() {
			api := client.NewHTTPClient(cfg.Console.BaseURL)
			if err := waitForServer(ctx, api); err != nil {
				consoleDone <- err
				return
			}
			menu := client.NewMenu(api, os.Stdin, os.Stdout, logger)
			consoleDone <- menu.Run(ctx)
		}()
	}

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

	case err := <-consoleDone:
		if err != nil {
			logger.Error().Err(err).Msg("console client failed")
		}
		logger.Info().Msg("console exited, starting graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server gracefully")
		if closeErr := server.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close server")
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("server shutdown completed")
	return nil
}

// waitForServer polls the health endpoint until the server answers.
func waitForServer(ctx context.Context, api client.API) error {
	var lastErr error
	for i := 0; i < 50; i++ {
		if lastErr = api.Health(ctx); lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return fmt.Errorf("server did not become ready: %w", lastErr)
}
