package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (r *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msgs...)
	return nil
}

func (r *recordingWriter) Close() error {
	r.closed = true
	return nil
}

func TestProducerPublish(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducer(logger.Nop{}, &cfg.KafkaCfg{Topic: "autovarka.events", Brokers: []string{"localhost:9092"}})
	p.writer = w

	require.NoError(t, p.Publish(context.Background(), "ORDER-1", "order.created", []byte{1, 2, 3}))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, []byte("ORDER-1"), msg.Key)
	assert.Equal(t, []byte{1, 2, 3}, msg.Value)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, []byte("order.created"), msg.Headers[0].Value)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducerPublishError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewProducer(logger.Nop{}, &cfg.KafkaCfg{Topic: "t", Brokers: []string{"localhost:9092"}})
	p.writer = &recordingWriter{err: boom}

	require.ErrorIs(t, p.Publish(context.Background(), "k", "order.created", nil), boom)
}
