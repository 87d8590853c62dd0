// Package server defines the application container that composes the main
// dependencies: configuration, logger and the optional New Relic service,
// the database pool, the redis client, the background job service, and the
// http.Server. It owns startup and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deploylab/user-api/internal/config"
	"github.com/deploylab/user-api/internal/database"
	"github.com/deploylab/user-api/internal/lib/job"
	nrredis "github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deploylab/user-api/internal/logger"
)

// Server holds shared application resources. It is not the HTTP server
// itself; the internal http.Server is configured in SetupHTTPServer and
// run by Start.
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService carries the New Relic application instance; its app
	// is nil when New Relic is disabled.
	LoggerService *loggerPkg.LoggerService

	// DB is the PostgreSQL pool wrapper. Nil when the in-memory storage
	// driver is configured.
	DB *database.Database

	Redis *redis.Client

	// Job runs background workers and provides a client for enqueueing.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies: the database
// pool (postgres driver only), the redis client with optional New Relic
// hooks, and the background job service.
//
// Redis connection failure logs and continues; the job service failing to
// start blocks startup.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	var db *database.Database
	if cfg.UsesPostgres() {
		var err error
		db, err = database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	} else {
		logger.Info().Str("driver", cfg.Storage.Driver).Msg("running with in-memory user store")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Redis only backs the job queue here, so a failed ping degrades the
	// service instead of blocking startup.
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)

	if err := jobService.Start(); err != nil {
		return nil, err
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server with the given
// handler (the Echo router) and the timeouts from config.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops or errors;
// SetupHTTPServer must have been called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("storage", s.Config.Storage.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, then the job workers, and
// closes the database pool and redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
