package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

// DefaultTimeout — время, которое получает каждый канал на одну отправку.
const DefaultTimeout = 10 * time.Second

type FailureMetrics interface {
	NotificationFailed(channel string)
}

// Dispatcher рассылает уведомления по всем каналам по очереди.
// Ошибка или паника одного канала не мешает остальным и не возвращается вызывающему.
type Dispatcher struct {
	notifiers []usecase.Notifier
	timeout   time.Duration
	logger    logger.Logger
	metrics   FailureMetrics
}

func NewDispatcher(logger logger.Logger, metrics FailureMetrics, notifiers ...usecase.Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		timeout:   DefaultTimeout,
		logger:    logger,
		metrics:   metrics,
	}
}

// WithTimeout задаёт таймаут одного канала.
func (d *Dispatcher) WithTimeout(timeout time.Duration) *Dispatcher {
	d.timeout = timeout
	return d
}

// Channels возвращает имена подключённых каналов.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}

	return names
}

func (d *Dispatcher) DispatchOrder(ctx context.Context, order *domain.Order) {
	d.dispatch(ctx, "order "+order.ID, func(ctx context.Context, n usecase.Notifier) error {
		return n.NotifyOrder(ctx, order)
	})
}

func (d *Dispatcher) DispatchContact(ctx context.Context, msg *domain.ContactMessage) {
	d.dispatch(ctx, "contact from "+msg.Email, func(ctx context.Context, n usecase.Notifier) error {
		return n.NotifyContact(ctx, msg)
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, subject string, send func(context.Context, usecase.Notifier) error) {
	for _, n := range d.notifiers {
		if err := d.run(ctx, n, send); err != nil {
			d.logger.Warnf("%s: %s", subject, err)
			if d.metrics != nil {
				d.metrics.NotificationFailed(n.Name())
			}
			continue
		}

		d.logger.Debugf("%s: sent via %s", subject, n.Name())
	}
}

func (d *Dispatcher) run(ctx context.Context, n usecase.Notifier, send func(context.Context, usecase.Notifier) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = e.NewNotificationError(n.Name(), fmt.Errorf("panic: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := send(ctx, n); err != nil {
		return e.NewNotificationError(n.Name(), err)
	}

	return nil
}
