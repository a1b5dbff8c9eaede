package middleware

import (
	"fmt"
	"time"

	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware enforces per-user request quotas with a Redis-backed
// fixed window counter. It exists to keep a single user from monopolizing
// the generation pipeline, which fans out to a paid model API.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns a middleware that allows at most the configured number of
// requests per user per fixed window for the named endpoint. The counter
// key is "ratelimit:<endpoint>:<user_id>"; INCR creates it at 1 and EXPIRE
// is set on first increment so the window starts at the first request.
//
// Auth must run first: unauthenticated requests have no user ID and pass
// through unlimited (public routes should not use this middleware).
// Redis errors fail open; throttling is protection, not correctness.
func (r *RateLimitMiddleware) Limit(endpoint string) echo.MiddlewareFunc {
	limit := int64(r.server.Config.Server.RateLimitRequests)
	window := time.Duration(r.server.Config.Server.RateLimitWindow) * time.Second

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if userID == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", endpoint, userID)

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				GetLogger(c).Error().Err(err).
					Str("endpoint", endpoint).
					Msg("rate limit check failed, allowing request")
				return next(c)
			}

			if count == 1 {
				if err := r.server.Redis.Expire(ctx, key, window).Err(); err != nil {
					// A counter without a TTL never resets, so the user
					// would stay throttled past the window. Drop the key
					// and let the request through instead.
					if delErr := r.server.Redis.Del(ctx, key).Err(); delErr != nil {
						GetLogger(c).Error().Err(delErr).
							Str("endpoint", endpoint).
							Msg("failed to drop rate limit counter without expiry")
					}

					GetLogger(c).Error().Err(err).
						Str("endpoint", endpoint).
						Msg("failed to set rate limit window expiry, allowing request")
					return next(c)
				}
			}

			if count > limit {
				r.RecordRateLimitHit(endpoint)

				GetLogger(c).Warn().
					Str("endpoint", endpoint).
					Str("user_id", userID).
					Int64("count", count).
					Msg("rate limit exceeded")

				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit emits a custom New Relic event when a request is
// throttled, so sustained abuse is visible in dashboards.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
