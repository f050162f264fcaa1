package consumers

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/infrastructure/revocation"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/logger"
)

type fakeReader struct {
	messages chan kafka.Message

	mu        sync.Mutex
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case m := <-r.messages:
		return m, nil
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) committedOffsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func message(t *testing.T, offset int64, eventType string, payload interface{}) kafka.Message {
	t.Helper()
	value, err := json.Marshal(models.NewDomainEvent(eventType, "k", payload))
	require.NoError(t, err)
	return kafka.Message{
		Offset:  offset,
		Value:   value,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(eventType)}},
	}
}

func TestRevocationConsumer_Run(t *testing.T) {
	now := time.Now()
	local := revocation.NewMemoryRevocationList()
	reader := &fakeReader{messages: make(chan kafka.Message, 8)}
	c := newRevocationConsumer(reader, local, logger.NewNoopLogger())

	reader.messages <- message(t, 1, constants.EventRiskAssessed, map[string]int{"risk_score": 80})
	reader.messages <- message(t, 2, constants.EventTokenRevoked, models.TokenRevokedPayload{JTI: "old", ExpiresAt: now.Add(-time.Minute)})
	reader.messages <- kafka.Message{Offset: 3, Value: []byte("{"), Headers: []kafka.Header{{Key: "event_type", Value: []byte(constants.EventTokenRevoked)}}}
	reader.messages <- message(t, 4, constants.EventTokenRevoked, models.TokenRevokedPayload{JTI: "jti-9", ExpiresAt: now.Add(time.Hour)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(reader.committedOffsets()) == 4 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committedOffsets())
	revoked, err := local.IsRevoked(context.Background(), "jti-9")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, _ = local.IsRevoked(context.Background(), "old")
	assert.False(t, revoked)
}

func TestEventType(t *testing.T) {
	assert.Equal(t, "", eventType(kafka.Message{}))
	assert.Equal(t, "x", eventType(kafka.Message{Headers: []kafka.Header{{Key: "other", Value: []byte("y")}, {Key: "event_type", Value: []byte("x")}}}))
}
