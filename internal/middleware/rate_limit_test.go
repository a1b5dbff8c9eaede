package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deckwise/backend/internal/config"
	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedisHook intercepts the commands the rate limiter issues and serves
// them from memory, so the fixed-window logic is testable without a Redis
// server. Error fields inject failures per command.
type fakeRedisHook struct {
	counts    map[string]int64
	expired   map[string]bool
	delCalls  []string
	incrErr   error
	expireErr error
}

func newFakeRedisHook() *fakeRedisHook {
	return &fakeRedisHook{
		counts:  map[string]int64{},
		expired: map[string]bool{},
	}
}

func (h *fakeRedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *fakeRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *fakeRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		switch cmd.Name() {
		case "incr":
			if h.incrErr != nil {
				return h.incrErr
			}
			key := cmd.Args()[1].(string)
			h.counts[key]++
			cmd.(*redis.IntCmd).SetVal(h.counts[key])
			return nil

		case "expire":
			if h.expireErr != nil {
				return h.expireErr
			}
			h.expired[cmd.Args()[1].(string)] = true
			cmd.(*redis.BoolCmd).SetVal(true)
			return nil

		case "del":
			key := cmd.Args()[1].(string)
			h.delCalls = append(h.delCalls, key)
			delete(h.counts, key)
			cmd.(*redis.IntCmd).SetVal(1)
			return nil
		}

		return next(ctx, cmd)
	}
}

func newTestRateLimiter(t *testing.T, hook *fakeRedisHook, limit int) *RateLimitMiddleware {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)

	log := zerolog.Nop()
	return NewRateLimitMiddleware(&server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{
				RateLimitRequests: limit,
				RateLimitWindow:   60,
			},
		},
		Logger: &log,
		Redis:  client,
	})
}

func invokeLimit(t *testing.T, limiter *RateLimitMiddleware, userID string) (bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(UserIDKey, userID)
	}

	nextCalled := false
	err := limiter.Limit("create_generation")(func(c echo.Context) error {
		nextCalled = true
		return nil
	})(c)

	return nextCalled, err
}

func TestLimitThrottlesOverQuota(t *testing.T) {
	hook := newFakeRedisHook()
	limiter := newTestRateLimiter(t, hook, 2)

	for i := 0; i < 2; i++ {
		nextCalled, err := invokeLimit(t, limiter, "user_a")
		require.NoError(t, err)
		assert.True(t, nextCalled)
	}

	nextCalled, err := invokeLimit(t, limiter, "user_a")
	assert.False(t, nextCalled)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
	assert.Equal(t, errs.CodeRateLimited, httpErr.Code)

	// The window expiry was set on the first increment.
	assert.True(t, hook.expired["ratelimit:create_generation:user_a"])
}

func TestLimitCountsUsersSeparately(t *testing.T) {
	hook := newFakeRedisHook()
	limiter := newTestRateLimiter(t, hook, 1)

	_, err := invokeLimit(t, limiter, "user_a")
	require.NoError(t, err)

	nextCalled, err := invokeLimit(t, limiter, "user_b")
	require.NoError(t, err)
	assert.True(t, nextCalled, "another user's quota is untouched")
}

func TestLimitAllowsAndDropsCounterWhenExpireFails(t *testing.T) {
	// A counter that never got a TTL would throttle the user forever once
	// over quota. The limiter must drop the key and let the request pass.
	hook := newFakeRedisHook()
	hook.expireErr = errors.New("expire failed")
	limiter := newTestRateLimiter(t, hook, 1)

	nextCalled, err := invokeLimit(t, limiter, "user_a")
	require.NoError(t, err)
	assert.True(t, nextCalled)

	require.Len(t, hook.delCalls, 1)
	assert.Equal(t, "ratelimit:create_generation:user_a", hook.delCalls[0])
	assert.NotContains(t, hook.counts, "ratelimit:create_generation:user_a")
}

func TestLimitFailsOpenOnRedisError(t *testing.T) {
	hook := newFakeRedisHook()
	hook.incrErr = errors.New("connection refused")
	limiter := newTestRateLimiter(t, hook, 1)

	nextCalled, err := invokeLimit(t, limiter, "user_a")
	require.NoError(t, err)
	assert.True(t, nextCalled, "throttling is protection, not correctness")
}

func TestLimitSkipsUnauthenticatedRequests(t *testing.T) {
	hook := newFakeRedisHook()
	limiter := newTestRateLimiter(t, hook, 1)

	nextCalled, err := invokeLimit(t, limiter, "")
	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Empty(t, hook.counts, "no user, no counter")
}
