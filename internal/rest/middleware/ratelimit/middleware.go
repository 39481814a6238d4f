package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/uptrace/bunrouter"
	"github.com/wildsight/wildsight/internal/setup/config"
	"github.com/wildsight/wildsight/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const errRateLimit = "rate limit exceeded"

// Middleware implements per-client rate limiting for API requests.
type Middleware struct {
	limiters *utils.TTLMap[string, *rate.Limiter]
	config   *config.RateLimit
	logger   *zap.Logger
}

// New creates a new rate limiting middleware.
func New(config *config.RateLimit, logger *zap.Logger) *Middleware {
	// Keep idle limiter state around long enough for a full burst window
	ttl := time.Minute
	if config.RequestsPerSecond > 0 {
		window := time.Duration(float64(config.BurstSize)/config.RequestsPerSecond*2) * time.Second
		if window > ttl {
			ttl = window
		}
	}

	return &Middleware{
		limiters: utils.NewTTLMap[string, *rate.Limiter](ttl),
		config:   config,
		logger:   logger.Named("ratelimit"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for rate limiting.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		clientIP := clientIP(req.Request)

		if !m.getLimiter(clientIP).Allow() {
			m.logger.Debug("Rate limit exceeded", zap.String("clientIP", clientIP))
			http.Error(w, errRateLimit, http.StatusTooManyRequests)
			return nil
		}

		return next(w, req)
	}
}

// getLimiter returns the rate limiter for the specified client IP, creating
// one on first sight.
func (m *Middleware) getLimiter(clientIP string) *rate.Limiter {
	if limiter, exists := m.limiters.Get(clientIP); exists {
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize)
	m.limiters.Set(clientIP, limiter)
	return limiter
}

// clientIP extracts the client address, preferring the forwarded header when
// the service runs behind a proxy.
func clientIP(req *http.Request) string {
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
