package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gradpath/gradpath-backend/internal/logger"
)

// Limiter counts events in fixed windows backed by Redis, so a limit
// holds across every replica of the API.
type Limiter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	window time.Duration
}

func NewLimiter(log *logger.Logger, window time.Duration) (*Limiter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Limiter{
		log:    log.With("service", "RedisLimiter"),
		rdb:    rdb,
		window: window,
	}, nil
}

// Incr bumps the counter for key and returns the new count. The expiry
// is armed only when the key has none, which keeps the window fixed
// instead of sliding forward on every attempt.
func (l *Limiter) Incr(ctx context.Context, key string) (int64, error) {
	if l == nil || l.rdb == nil {
		return 0, fmt.Errorf("redis limiter not initialized")
	}
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis rate limit incr: %w", err)
	}
	return incr.Val(), nil
}

func (l *Limiter) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
