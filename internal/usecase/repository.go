package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
)

// DocumentRepository — коллекция, целиком хранящаяся одним документом.
// Mutate применяет fn атомарно относительно других писателей.
type DocumentRepository[T any] interface {
	Get(ctx context.Context) (T, error)
	Mutate(ctx context.Context, fn func(*T) error) (T, error)
}

type OrderRepository = DocumentRepository[[]domain.Order]

type ProductRepository = DocumentRepository[[]domain.Product]

type VideoSettingsRepository = DocumentRepository[domain.VideoSettings]

type AnalyticsSettingsRepository = DocumentRepository[domain.AnalyticsSettings]

type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
