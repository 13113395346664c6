package middleware

import (
	"context"
	"credit-engine/internal/config"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// windowCounter counts hits for a key inside a fixed window shared by all
// replicas of the service.
type windowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisWindowCounter struct {
	client redis.Cmdable
}

func (c redisWindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incrCmd.Val(), nil
}

type RateLimiterMiddleware struct {
	counter  windowCounter
	limiters sync.Map
	cfg      config.RateLimitConfig
	logger   *slog.Logger
	window   time.Duration
}

// NewRateLimiterMiddleware uses Redis when a client is given and falls back
// to per-IP token buckets held in memory otherwise.
func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	logger = logger.With("component", "RateLimiter")

	var counter windowCounter
	switch {
	case !cfg.Enabled:
		logger.Info("Rate limiting is disabled via configuration.")
	case redisClient == nil:
		logger.Warn("No Redis client provided; using in-memory rate limiting.", "rps", cfg.RPS, "burst", cfg.Burst)
	default:
		counter = redisWindowCounter{client: redisClient}
		logger.Info("Rate limiter middleware configured", "rps", cfg.RPS, "window", time.Second)
	}

	rl := &RateLimiterMiddleware{
		counter: counter,
		cfg:     cfg,
		logger:  logger,
		window:  time.Second,
	}

	if cfg.Enabled && counter == nil {
		go rl.cleanupLimiters()
	}

	return rl
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	limiter, _ := rl.limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiterMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.limiters.Range(func(key, value any) bool {
			limiter := value.(*rate.Limiter)
			if limiter.Tokens() >= float64(rl.cfg.Burst) {
				rl.limiters.Delete(key)
			}
			return true
		})
	}
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiterMiddleware) allow(ctx context.Context, ip string) bool {
	if rl.counter == nil {
		return rl.getLimiter(ip).Allow()
	}

	count, err := rl.counter.Hit(ctx, fmt.Sprintf("ratelimit:%s", ip), rl.window)
	if err != nil {
		rl.logger.ErrorContext(ctx, "Redis rate limit check failed, allowing request", "error", err, "ip", ip)
		return true
	}
	return count <= int64(rl.cfg.RPS)+int64(rl.cfg.Burst)
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)

		if !rl.allow(r.Context(), ip) {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rl.window.Seconds()))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
