// Package logger configures the application's logging and observability.
//
// It builds the zerolog root logger, bootstraps the optional New Relic
// application (forwarding logs through the zerologWriter integration when
// enabled), and provides adapters that let the pgx driver and request
// middleware emit through the same pipeline.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/deploylab/user-api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the New Relic application instance. A zero value (nil
// app) is valid and every consumer must treat it as "observability off".
type LoggerService struct {
	app *newrelic.Application
}

// NewLoggerService initializes New Relic from config. When no license key
// is configured it returns a service with a nil application so callers can
// wire it unconditionally.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	obs := cfg.Observability
	if !obs.NewRelicEnabled() {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
	}
	if obs.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, err
	}

	return &LoggerService{app: app}, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	return ls.app
}

// Shutdown flushes pending telemetry. Safe to call when disabled.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls.app != nil {
		ls.app.Shutdown(timeout)
	}
}

// New builds the application root logger.
//
// Format "console" writes human-friendly output to stderr; anything else
// writes JSON to stdout. When New Relic log forwarding is enabled the
// output is routed through the zerologWriter integration so records arrive
// decorated with linking metadata.
func New(cfg *config.Config, service *LoggerService) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	} else if service != nil && service.GetApplication() != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		out = zerologWriter.New(os.Stdout, service.GetApplication())
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Logger()

	return &logger
}

// WithModule derives a child logger scoped to a component name without
// mutating the parent.
func WithModule(logger *zerolog.Logger, module string) zerolog.Logger {
	return logger.With().Str("module", module).Logger()
}

// WithTraceContext derives a child logger carrying the transaction's trace
// and span ids so log lines correlate with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger handed to the pgx tracelog adapter for
// local SQL logging.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the zerolog level onto pgx tracelog levels.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
