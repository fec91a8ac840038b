package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

// ContactUseCase принимает сообщения формы обратной связи и пересылает их в каналы уведомлений.
type ContactUseCase struct {
	notifier  NotificationDispatcher
	validator *Validator
	logger    logger.Logger
	now       func() time.Time
}

func NewContactUC(notifier NotificationDispatcher, validator *Validator, logger logger.Logger) *ContactUseCase {
	return &ContactUseCase{
		notifier:  notifier,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (c *ContactUseCase) Submit(ctx context.Context, req *ContactReq) (*domain.ContactMessage, error) {
	const op = "ContactUseCase.Submit"

	if err := c.validator.Struct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	msg := &domain.ContactMessage{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Subject:    req.Subject,
		Message:    req.Message,
		ReceivedAt: c.now(),
	}

	c.logger.Infof("contact message received, subject %q", msg.Subject)
	c.notifier.DispatchContact(context.WithoutCancel(ctx), msg)

	return msg, nil
}
