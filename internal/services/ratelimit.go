package services

import (
	"context"
	"sync"
	"time"

	"github.com/gradpath/gradpath-backend/internal/clients/redis"
	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

// RateLimiter reports whether one more attempt is allowed for a key in
// the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// NewLoginRateLimiter builds the limiter guarding POST /api/login.
// Redis keeps the counters shared across replicas; without REDIS_ADDR,
// or when Redis is unreachable at boot, an in-process limiter takes
// over, which is enough for a single node.
func NewLoginRateLimiter(log *logger.Logger) RateLimiter {
	serviceLog := log.With("service", "LoginRateLimiter")
	limit := utils.GetEnvAsInt("LOGIN_RATE_LIMIT", 5, log)
	windowSecs := utils.GetEnvAsInt("LOGIN_RATE_WINDOW_SECONDS", 60, log)
	window := time.Duration(windowSecs) * time.Second

	rl, err := redis.NewLimiter(log, window)
	if err != nil {
		serviceLog.Warn("Redis unavailable, using in-process rate limiting", "error", err)
		return newMemoryRateLimiter(limit, window)
	}
	serviceLog.Info("Login rate limiting backed by Redis", "limit", limit, "window", window)
	return &redisRateLimiter{log: serviceLog, limiter: rl, limit: int64(limit)}
}

type redisRateLimiter struct {
	log     *logger.Logger
	limiter *redis.Limiter
	limit   int64
}

// Allow fails open. A Redis outage must not lock everyone out of login.
func (r *redisRateLimiter) Allow(ctx context.Context, key string) bool {
	n, err := r.limiter.Incr(ctx, "ratelimit:login:"+key)
	if err != nil {
		r.log.Warn("Rate limit check failed, allowing request", "error", err)
		return true
	}
	return n <= r.limit
}

type countWindow struct {
	count   int
	resetAt time.Time
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*countWindow
	now     func() time.Time
}

func newMemoryRateLimiter(limit int, window time.Duration) *memoryRateLimiter {
	return &memoryRateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*countWindow),
		now:     time.Now,
	}
}

func (m *memoryRateLimiter) Allow(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		m.pruneLocked(now)
		m.windows[key] = &countWindow{count: 1, resetAt: now.Add(m.window)}
		return true
	}
	w.count++
	return w.count <= m.limit
}

// pruneLocked drops closed windows so the map does not keep one entry
// per client address forever.
func (m *memoryRateLimiter) pruneLocked(now time.Time) {
	if len(m.windows) < 1024 {
		return
	}
	for k, w := range m.windows {
		if now.After(w.resetAt) {
			delete(m.windows, k)
		}
	}
}
