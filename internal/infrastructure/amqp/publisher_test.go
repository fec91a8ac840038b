package amqp

import (
	"context"
	"testing"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisherPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "autovarka", logger: logger.Nop{}}

	require.NoError(t, p.Publish(context.Background(), "ORDER-1", "order.created", []byte("body")))

	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "autovarka", got.exchange)
	assert.Equal(t, "order.created", got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "ORDER-1", got.msg.MessageId)
	assert.Equal(t, "order.created", got.msg.Type)
	assert.Equal(t, []byte("body"), got.msg.Body)
	assert.False(t, got.msg.Timestamp.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNewPublisherRequiresExchange(t *testing.T) {
	_, err := NewPublisher(context.Background(), &cfg.AMQPCfg{URL: "amqp://localhost"}, logger.Nop{})
	require.Error(t, err)
}
