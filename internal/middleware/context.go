package middleware

import (
	"context"

	"github.com/deckwise/backend/internal/logger"
	"github.com/deckwise/backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserIDKey is the echo context key under which auth middleware stores
	// the authenticated Clerk user ID.
	UserIDKey = "user_id"

	// LoggerKey is the context key for the request-scoped logger. The same
	// key is used for echo context and the request's context.Context so
	// non-echo code (repositories, jobs enqueued in-request) can reach it.
	LoggerKey = "logger"
)

// ContextEnhancer enriches every request with a request-scoped logger
// carrying request_id, method, path, ip, New Relic trace metadata, and the
// user ID when auth ran first.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer backed by the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the middleware that builds the request-scoped
// logger and stores it in both the echo context and the request context.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID, ok := c.Get(UserIDKey).(string); ok && userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			// Same string key as the echo context, so non-echo code
			// (repositories, job enqueueing) can fetch the logger from a
			// plain context.Context.
			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID reads the authenticated user ID from echo context. Empty when
// the route is public or auth middleware has not run.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger. Falls back to a no-op
// logger when EnhanceContext did not run, so callers never nil-check.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
