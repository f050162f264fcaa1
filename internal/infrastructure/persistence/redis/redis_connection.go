// Package redis provides the Redis client used for short-lived authentication
// state: revoked token IDs and failed-login counters.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// RedisConnection wraps a go-redis client with lifecycle logging.
type RedisConnection struct {
	client redis.UniversalClient
	prefix string
	logger logger.Logger
}

// NewRedisConnection connects and pings Redis.
func NewRedisConnection(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*RedisConnection, error) {
	log = log.WithComponent("redis")
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	conn := NewRedisConnectionFromClient(client, cfg.KeyPrefix, log)
	if err := conn.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Info(ctx, "Redis connection established",
		logger.String("addr", cfg.Address),
		logger.Int("db", cfg.DB),
		logger.Int("pool_size", cfg.PoolSize),
	)
	return conn, nil
}

// NewRedisConnectionFromClient wraps an existing client. Tests use it with miniredis.
func NewRedisConnectionFromClient(client redis.UniversalClient, prefix string, log logger.Logger) *RedisConnection {
	return &RedisConnection{client: client, prefix: prefix, logger: log}
}

// Client returns the underlying client.
func (c *RedisConnection) Client() redis.UniversalClient {
	return c.client
}

// Key namespaces a key with the configured prefix.
func (c *RedisConnection) Key(parts ...string) string {
	key := c.prefix
	for _, p := range parts {
		if key == "" {
			key = p
			continue
		}
		key = fmt.Sprintf("%s:%s", key, p)
	}
	return key
}

// Ping checks that Redis answers within five seconds.
func (c *RedisConnection) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.client.Ping(pingCtx).Err(); err != nil {
		c.logger.Error(ctx, "Redis ping failed", err)
		return errors.ErrServiceUnavailable("redis is unavailable").WithCause(err)
	}
	return nil
}

// HealthCheck pings Redis and reports pool statistics.
func (c *RedisConnection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}
	info := map[string]interface{}{"status": "healthy"}
	if stats := c.client.PoolStats(); stats != nil {
		info["total_connections"] = stats.TotalConns
		info["idle_connections"] = stats.IdleConns
		info["timeouts"] = stats.Timeouts
	}
	return info, nil
}

// Close closes the client.
func (c *RedisConnection) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Warn(context.Background(), "Error closing Redis client", logger.String("error", err.Error()))
		return err
	}
	return nil
}
