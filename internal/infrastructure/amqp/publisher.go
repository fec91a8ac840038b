package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/autovarka/internal/cfg"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/jitter"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/jimlawless/whereami"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	dialAttempts = 5
	contentType  = "application/x-protobuf"
)

// channel — часть amqp.Channel, которой пользуется Publisher.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события магазина в topic-exchange RabbitMQ.
// Тип события используется как routing key.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   logger.Logger
}

// NewPublisher подключается к брокеру с повторами и объявляет durable topic-exchange.
func NewPublisher(ctx context.Context, cfg *cfg.AMQPCfg, logger logger.Logger) (*Publisher, error) {
	if cfg.Exchange == "" {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("exchange name cannot be empty"))
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 0; attempt < dialAttempts; attempt++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}

		delay := jitter.ExponentialBackoff(time.Second, 16*time.Second, attempt, jitter.DefaultJitter)
		logger.Warnf("failed to connect to RabbitMQ, retrying in %v: %v", delay, err)
		if sleepErr := jitter.Sleep(ctx, delay); sleepErr != nil {
			return nil, e.Wrap(whereami.WhereAmI(), sleepErr)
		}
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to connect to RabbitMQ after retries: %w", err))
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to open channel: %w", err))
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err))
	}
	logger.Infof("declared RabbitMQ exchange %s", cfg.Exchange)

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

// Publish отправляет persistent-сообщение; key (id заказа) попадает в MessageId.
func (p *Publisher) Publish(ctx context.Context, key, eventType string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    key,
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.logger.Warnf("failed to close RabbitMQ channel: %v", err)
	}
	if p.conn == nil {
		return nil
	}

	return p.conn.Close()
}
