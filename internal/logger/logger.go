// Package logger configures the application's logging and observability.
//
// It builds the zerolog root logger and, when a New Relic license key is
// configured, initializes the agent and forwards application logs so logs,
// metrics, and traces correlate in one place.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/deckwise/backend/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService wraps the optional New Relic application instance. When New
// Relic is disabled the service still exists but carries a nil application,
// and every consumer degrades to a no-op.
type LoggerService struct {
	app *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the
// integration is disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	return ls.app
}

// Shutdown flushes buffered telemetry. Safe to call with New Relic
// disabled.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls.app != nil {
		ls.app.Shutdown(timeout)
	}
}

// New constructs the root logger and the observability service from config.
//
// Behavior:
//   - log level comes from Observability.GetLogLevel()
//   - "console" format writes human-friendly output (local development);
//     anything else writes JSON
//   - when a New Relic license key is present, the agent is started and,
//     if log forwarding is enabled, the logger writes through the agent's
//     zerolog writer so log lines carry trace linking metadata
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	service := &LoggerService{}

	if key := cfg.Observability.NewRelic.LicenseKey; key != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(key),
			newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
		}
		if cfg.Observability.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
		}

		app, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, err
		}
		service.app = app
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	var log zerolog.Logger
	if service.app != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		zw := zerologWriter.New(out, service.app)
		log = zerolog.New(zw)
	} else {
		log = zerolog.New(out)
	}

	log = log.Level(level).With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &log, service, nil
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id fields so log lines correlate with distributed
// traces.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}
	md := txn.GetTraceMetadata()
	return log.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger handed to the pgx tracelog adapter for SQL
// query logging in local development.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto pgx tracelog's integer
// levels (tracelog.LogLevelNone..LogLevelTrace).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return 6 // tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return 5 // tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return 4 // tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return 3 // tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return 2 // tracelog.LogLevelError
	default:
		return 1 // tracelog.LogLevelNone
	}
}
