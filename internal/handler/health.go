package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deploylab/user-api/internal/middleware"
	"github.com/deploylab/user-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes the endpoint load balancers and uptime monitors
// poll to verify the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports overall status plus per-dependency checks.
//
// Returns 200 when all required checks pass, 503 otherwise. The database
// check only runs under the postgres driver; redis is reported but not
// required, since it only backs the background job queue.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	body := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"storage":     h.server.Config.Storage.Driver,
		"checks":      make(map[string]interface{}),
	}

	checks := body["checks"].(map[string]interface{})
	isHealthy := true

	if h.server.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbStart := time.Now()

		if err := h.server.DB.Pool.Ping(ctx); err != nil {
			checks["database"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			h.recordHealthEvent("database", "database_unhealthy", time.Since(dbStart), err)
		} else {
			checks["database"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}
		}
	}

	if h.server.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			h.recordHealthEvent("redis", "redis_unhealthy", time.Since(redisStart), err)
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	if !isHealthy {
		body["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent("overall", "overall_unhealthy", time.Since(start), nil)

		return c.JSON(http.StatusServiceUnavailable, body)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, body); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthEvent(checkType, errorType string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	attrs := map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		attrs["error_message"] = err.Error()
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
