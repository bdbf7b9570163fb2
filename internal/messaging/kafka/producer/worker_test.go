package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/andreicionca/motivare-absente/internal/messaging/kafka"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOutboxRepository struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.pending = append(f.pending, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	failKey  string
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == f.failKey {
			return errors.New("leader not available")
		}
		f.messages = append(f.messages, m)
	}
	return nil
}

func TestProcessPending(t *testing.T) {
	repo := &fakeOutboxRepository{pending: []kafka.OutboxEvent{
		{ID: "o1", AggregateID: "r1", Topic: "excuse.evidence.release.v1", EventType: "evidence_release_requested", Payload: []byte(`{"public_id":"a"}`)},
		{ID: "o2", AggregateID: "r2", Topic: "excuse.evidence.release.v1", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{failKey: "r2"}

	sent, err := producer.ProcessPending(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"o1"}, repo.sent)
	assert.Equal(t, "leader not available", repo.failed["o2"])

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "excuse.evidence.release.v1", writer.messages[0].Topic)
	assert.Equal(t, "evidence_release_requested", string(writer.messages[0].Headers[0].Value))
}

func TestProcessPending_Empty(t *testing.T) {
	sent, err := producer.ProcessPending(context.Background(), &fakeOutboxRepository{}, &fakeWriter{}, zap.NewNop())
	assert.NoError(t, err)
	assert.Zero(t, sent)
}
