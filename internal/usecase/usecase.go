package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
)

type OrderUC interface {
	Create(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	UpdateFull(ctx context.Context, id string, req *OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type ProductUC interface {
	Create(ctx context.Context, req *ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Catalog(ctx context.Context, code string, featuredOnly bool) ([]domain.ProductView, error)
}

type SettingsUC interface {
	Video(ctx context.Context) (domain.VideoSettings, error)
	SaveVideo(ctx context.Context, in domain.VideoSettings) (domain.VideoSettings, error)
	Analytics(ctx context.Context) (domain.AnalyticsSettings, error)
	SaveAnalytics(ctx context.Context, in domain.AnalyticsSettings) (domain.AnalyticsSettings, error)
}

type AuthUC interface {
	Login(ctx context.Context, req *LoginReq) (*domain.Session, error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

type ContactUC interface {
	Submit(ctx context.Context, req *ContactReq) (*domain.ContactMessage, error)
}

type ImageUC interface {
	Upload(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	Delete(ctx context.Context, url string) error
}
