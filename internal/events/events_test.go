package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}
	id := uuid.New()

	err := p.Publish(context.Background(), OrderEvent{
		Type:        OrderCreated,
		OrderID:     id,
		OrderNumber: "ORD-1700000000000-ABCDEFGHI",
		Status:      "pending",
		TotalAmount: 12599.5,
		OccurredAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order-order.created-ORD-1700000000000-ABCDEFGHI", string(w.msgs[0].Key))

	var decoded OrderEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, id, decoded.OrderID)
	assert.Equal(t, 12599.5, decoded.TotalAmount)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), OrderEvent{Type: OrderStatusUpdated, OrderNumber: "ORD-1"})
	assert.EqualError(t, err, "publish order.status_updated: broker down")
}

func TestMessage_FillsTimestamp(t *testing.T) {
	msg, err := message(OrderEvent{Type: OrderCreated, OrderNumber: "ORD-2"})
	require.NoError(t, err)

	var decoded OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.False(t, decoded.OccurredAt.IsZero())
}

func TestNoop(t *testing.T) {
	n := Noop{}
	require.NoError(t, n.Publish(context.Background(), OrderEvent{Type: OrderCreated}))
	require.NoError(t, n.Close())
}
