// Package revocation remembers the IDs of logged-out access tokens until the
// tokens would have expired on their own.
package revocation

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	redisinfra "github.com/turtacn/acadmin/internal/infrastructure/persistence/redis"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

var (
	_ service.TokenRevocationList = (*RedisRevocationList)(nil)
	_ service.TokenRevocationList = (*MemoryRevocationList)(nil)
	_ service.TokenRevocationList = (*BroadcastingRevocationList)(nil)
)

// RedisRevocationList shares revocations across server instances.
type RedisRevocationList struct {
	conn   *redisinfra.RedisConnection
	logger logger.Logger
}

func NewRedisRevocationList(conn *redisinfra.RedisConnection, log logger.Logger) *RedisRevocationList {
	return &RedisRevocationList{conn: conn, logger: log.WithComponent("revocation_list")}
}

func (l *RedisRevocationList) key(jti string) string {
	return l.conn.Key("revoked", jti)
}

// Revoke is a no-op for tokens that have already expired.
func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.conn.Client().Set(ctx, l.key(jti), "1", ttl).Err(); err != nil {
		l.logger.Error(ctx, "Failed to revoke token", err, logger.String("jti", jti))
		return errors.ErrServiceUnavailable("revocation store is unavailable").WithCause(err)
	}
	return nil
}

func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.conn.Client().Exists(ctx, l.key(jti)).Result()
	if err != nil && err != redis.Nil {
		return false, errors.ErrServiceUnavailable("revocation store is unavailable").WithCause(err)
	}
	return n == 1, nil
}

// MemoryRevocationList keeps revocations in process memory. It is used when
// Redis is disabled and only suits single-instance deployments.
type MemoryRevocationList struct {
	cache *gocache.Cache
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (l *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.cache.Set(jti, struct{}{}, ttl)
	return nil
}

func (l *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := l.cache.Get(jti)
	return found, nil
}

// BroadcastingRevocationList revokes locally and then announces the
// revocation on the event stream, so instances with their own memory list can
// apply it too. A failed announcement is logged; the local revocation stands.
type BroadcastingRevocationList struct {
	local     service.TokenRevocationList
	publisher service.EventPublisher
	now       func() time.Time
	logger    logger.Logger
}

func NewBroadcastingRevocationList(local service.TokenRevocationList, publisher service.EventPublisher, log logger.Logger) *BroadcastingRevocationList {
	return &BroadcastingRevocationList{
		local:     local,
		publisher: publisher,
		now:       time.Now,
		logger:    log.WithComponent("revocation_list"),
	}
}

func (l *BroadcastingRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.local.Revoke(ctx, jti, ttl); err != nil {
		return err
	}
	event := models.NewDomainEvent(constants.EventTokenRevoked, "jti:"+jti, models.TokenRevokedPayload{
		JTI:       jti,
		ExpiresAt: l.now().Add(ttl).UTC(),
	})
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn(ctx, "Revocation not broadcast, other instances accept the token until it expires",
			logger.String("jti", jti), logger.String("error", err.Error()))
	}
	return nil
}

func (l *BroadcastingRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return l.local.IsRevoked(ctx, jti)
}
