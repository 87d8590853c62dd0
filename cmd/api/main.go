// Command api runs the user-api HTTP server.
//
// Startup order: config → logging/New Relic → migrations (postgres driver
// only) → app container → repositories → services → handlers → router.
// The process then serves until SIGINT/SIGTERM and shuts down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deploylab/user-api/internal/config"
	"github.com/deploylab/user-api/internal/database"
	"github.com/deploylab/user-api/internal/handler"
	"github.com/deploylab/user-api/internal/logger"
	"github.com/deploylab/user-api/internal/middleware"
	"github.com/deploylab/user-api/internal/repository"
	"github.com/deploylab/user-api/internal/router"
	"github.com/deploylab/user-api/internal/server"
	"github.com/deploylab/user-api/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer loggerService.Shutdown(10 * time.Second)

	log := logger.New(cfg, loggerService)

	if cfg.UsesPostgres() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if err := database.Migrate(ctx, log, cfg); err != nil {
			cancel()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		cancel()
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.New(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
