package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productionLimiter(t *testing.T) (*miniredis.Miniredis, *Limiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewLimiter(rdb, "production")
}

func TestLimiterAllow_EnforcesLimit(t *testing.T) {
	_, l := productionLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "signup", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be within the limit", i+1)
	}

	allowed, err := l.Allow(ctx, "signup", "ip:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request should be rejected")
}

func TestLimiterAllow_WindowResets(t *testing.T) {
	mr, l := productionLimiter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := l.Allow(ctx, "login", "ip:1.2.3.4", 2, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := l.Allow(ctx, "login", "ip:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, err = l.Allow(ctx, "login", "ip:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "limit should reset after the window expires")
}

func TestLimiterAllow_IsolatesResources(t *testing.T) {
	_, l := productionLimiter(t)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "create_post", "user:1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
	allowed, err = l.Allow(ctx, "create_post", "user:1", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	// A different resource for the same user has its own counter.
	allowed, err = l.Allow(ctx, "create_comment", "user:1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_DisabledOutsideProduction(t *testing.T) {
	for _, env := range []string{"", "test", "development"} {
		l := NewLimiter(nil, env)

		// Even with no Redis at all, requests pass in dev/test environments.
		allowed, err := l.Allow(context.Background(), "signup", "ip:1.2.3.4", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "env %q should disable limiting", env)
	}
}

func TestLimiterMiddleware(t *testing.T) {
	_, l := productionLimiter(t)

	app := fiber.New()
	app.Post("/auth/login", l.Limit("login", 2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/auth/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestLimiterMiddleware_FailPolicies(t *testing.T) {
	// No Redis: FailOpen lets requests through, FailClosed returns 503.
	l := NewLimiter(nil, "production")

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/open", l.LimitWithPolicy("open", 1, time.Minute, FailOpen), ok)
	app.Get("/closed", l.LimitWithPolicy("closed", 1, time.Minute, FailClosed), ok)

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
