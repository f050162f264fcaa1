// Package ratelimit throttles repeated failed logins.
//
// Each key (a normalized email) gets a counter that starts with the first
// failure and expires one window later. Once the counter reaches the limit,
// further attempts are refused until it expires or a successful login resets it.
package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/acadmin/internal/domain/service"
	redisinfra "github.com/turtacn/acadmin/internal/infrastructure/persistence/redis"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	_ service.LoginAttemptLimiter = (*RedisLoginLimiter)(nil)
	_ service.LoginAttemptLimiter = (*MemoryLoginLimiter)(nil)
)

// The expiry is armed by the first failure only.
var recordFailureScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisLoginLimiter counts failures in Redis so every instance sees them.
type RedisLoginLimiter struct {
	conn        *redisinfra.RedisConnection
	maxFailures int
	window      time.Duration
	logger      logger.Logger
}

func NewRedisLoginLimiter(conn *redisinfra.RedisConnection, maxFailures int, window time.Duration, log logger.Logger) *RedisLoginLimiter {
	return &RedisLoginLimiter{
		conn:        conn,
		maxFailures: maxFailures,
		window:      window,
		logger:      log.WithComponent("login_limiter"),
	}
}

func (l *RedisLoginLimiter) key(k string) string {
	return l.conn.Key("login_failures", k)
}

func (l *RedisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	val, err := l.conn.Client().Get(ctx, l.key(key)).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, errors.ErrServiceUnavailable("login limiter is unavailable").WithCause(err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return false, errors.ErrInternal("corrupt login failure counter").WithCause(err)
	}
	return n < l.maxFailures, nil
}

func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	n, err := recordFailureScript.Run(ctx, l.conn.Client(), []string{l.key(key)}, l.window.Milliseconds()).Int()
	if err != nil {
		l.logger.Error(ctx, "Failed to record login failure", err)
		return errors.ErrServiceUnavailable("login limiter is unavailable").WithCause(err)
	}
	if n == l.maxFailures {
		l.logger.Warn(ctx, "Login throttled after repeated failures",
			logger.String("key", key),
			logger.Duration("window", l.window),
		)
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.conn.Client().Del(ctx, l.key(key)).Err(); err != nil {
		return errors.ErrServiceUnavailable("login limiter is unavailable").WithCause(err)
	}
	return nil
}

// MemoryLoginLimiter keeps counters in process memory for single-instance runs.
type MemoryLoginLimiter struct {
	mu          sync.Mutex
	cache       *gocache.Cache
	maxFailures int
	window      time.Duration
}

func NewMemoryLoginLimiter(maxFailures int, window time.Duration) *MemoryLoginLimiter {
	return &MemoryLoginLimiter{
		cache:       gocache.New(window, window),
		maxFailures: maxFailures,
		window:      window,
	}
}

func (l *MemoryLoginLimiter) Allow(_ context.Context, key string) (bool, error) {
	v, found := l.cache.Get(key)
	if !found {
		return true, nil
	}
	return v.(int) < l.maxFailures, nil
}

func (l *MemoryLoginLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, found := l.cache.Get(key); !found {
		l.cache.Set(key, 1, l.window)
		return nil
	}
	// Increment keeps the expiry set by the first failure.
	_, err := l.cache.IncrementInt(key, 1)
	return err
}

func (l *MemoryLoginLimiter) Reset(_ context.Context, key string) error {
	l.cache.Delete(key)
	return nil
}
