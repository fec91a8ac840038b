package usecase

import (
	"context"

	"github.com/DRSN-tech/autovarka/internal/domain"
)

type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	DeleteImage(ctx context.Context, url string) error
	// CleanupImages удаляет изображения в фоне; ошибки только логируются.
	CleanupImages(urls []string)
}

// Notifier — канал уведомлений (email, чат-бот, шина событий).
type Notifier interface {
	Name() string
	NotifyOrder(ctx context.Context, order *domain.Order) error
	NotifyContact(ctx context.Context, msg *domain.ContactMessage) error
}

// NotificationDispatcher рассылает уведомления во все каналы.
// Ошибки каналов не возвращаются: уведомления не влияют на результат операции.
type NotificationDispatcher interface {
	DispatchOrder(ctx context.Context, order *domain.Order)
	DispatchContact(ctx context.Context, msg *domain.ContactMessage)
}

type OrderMetrics interface {
	OrderCreated()
}
