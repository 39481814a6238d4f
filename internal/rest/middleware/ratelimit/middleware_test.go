package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bunrouter"
	"github.com/wildsight/wildsight/internal/rest/middleware/ratelimit"
	"github.com/wildsight/wildsight/internal/setup/config"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, cfg *config.RateLimit) *bunrouter.Router {
	t.Helper()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	middleware := ratelimit.New(cfg, logger)

	router := bunrouter.New(bunrouter.Use(middleware.AsRESTMiddleware))
	router.GET("/ping", func(w http.ResponseWriter, req bunrouter.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	return router
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{RequestsPerSecond: 1, BurstSize: 3})

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitBlocksAboveBurst(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{RequestsPerSecond: 1, BurstSize: 2})

	var last int
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimitIsPerClient(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{RequestsPerSecond: 1, BurstSize: 1})

	// Exhaust the first client's burst
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// A different client is unaffected
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitUsesForwardedHeader(t *testing.T) {
	t.Parallel()

	router := setupRouter(t, &config.RateLimit{RequestsPerSecond: 1, BurstSize: 1})

	// Two requests from the same forwarded client through different proxies
	// share a limiter.
	var last int
	for _, remote := range []string{"10.0.1.1:1234", "10.0.1.2:1234"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.1.1")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
