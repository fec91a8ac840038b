package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/repository/document"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

type fakeDispatcher struct {
	mu       sync.Mutex
	orders   []domain.Order
	contacts []domain.ContactMessage
}

func (f *fakeDispatcher) DispatchOrder(_ context.Context, order *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, *order)
}

func (f *fakeDispatcher) DispatchContact(_ context.Context, msg *domain.ContactMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, *msg)
}

type fakeMetrics struct {
	mu      sync.Mutex
	created int
}

func (f *fakeMetrics) OrderCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
}

type fakeImages struct {
	mu       sync.Mutex
	cleaned  [][]string
	deleted  []string
	uploadFn func(*UploadImageReq) (*UploadImageRes, error)
}

func (f *fakeImages) UploadImage(_ context.Context, req *UploadImageReq) (*UploadImageRes, error) {
	return f.uploadFn(req)
}

func (f *fakeImages) DeleteImage(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeImages) CleanupImages(urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, urls)
}

// failingRepo имитирует недоступное хранилище.
type failingRepo[T any] struct{}

func (failingRepo[T]) Get(context.Context) (T, error) {
	var zero T
	return zero, errors.New("storage down")
}

func (failingRepo[T]) Mutate(context.Context, func(*T) error) (T, error) {
	var zero T
	return zero, errors.New("storage down")
}

func newOrderStore() *document.Store[[]domain.Order] {
	return document.NewStore[[]domain.Order]("orders", document.NewMemoryBackend(), logger.Nop{},
		document.WithRetries(1000), document.WithBackoff(time.Microsecond, time.Millisecond))
}

func newProductStore() *document.Store[[]domain.Product] {
	return document.NewStore[[]domain.Product]("products", document.NewMemoryBackend(), logger.Nop{})
}
