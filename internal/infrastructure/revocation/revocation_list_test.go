package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service/mocks"
	redisinfra "github.com/turtacn/acadmin/internal/infrastructure/persistence/redis"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

func TestRedisRevocationList(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	list := NewRedisRevocationList(redisinfra.NewRedisConnectionFromClient(client, "acadmin", logger.NewNoopLogger()), logger.NewNoopLogger())

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("acadmin:revoked:jti-1"))

	mr.FastForward(2 * time.Minute)
	revoked, err = list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists("acadmin:revoked:jti-2"))
}

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList()

	require.NoError(t, list.Revoke(ctx, "jti-1", 50*time.Millisecond))
	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.Eventually(t, func() bool {
		r, _ := list.IsRevoked(ctx, "jti-1")
		return !r
	}, time.Second, 20*time.Millisecond)

	require.NoError(t, list.Revoke(ctx, "jti-2", -time.Second))
	revoked, err = list.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBroadcastingRevocationList(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryRevocationList()
	publisher := new(mocks.MockEventPublisher)
	list := NewBroadcastingRevocationList(local, publisher, logger.NewNoopLogger())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	list.now = func() time.Time { return now }

	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e models.DomainEvent) bool {
		p, ok := e.Payload.(models.TokenRevokedPayload)
		return e.Type == constants.EventTokenRevoked && ok &&
			p.JTI == "jti-1" && p.ExpiresAt.Equal(now.Add(time.Minute))
	})).Return(nil).Once()
	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.ErrServiceUnavailable("down")).Once()
	require.NoError(t, list.Revoke(ctx, "jti-2", time.Minute))
	revoked, _ = list.IsRevoked(ctx, "jti-2")
	assert.True(t, revoked)

	require.NoError(t, list.Revoke(ctx, "jti-3", 0))
	publisher.AssertExpectations(t)
}
