// Package document хранит целую коллекцию (или объект настроек) одним JSON-документом.
// Каждая запись проверяет версию документа, поэтому конкурентные писатели
// не затирают изменения друг друга: проигравший перечитывает документ и повторяет мутацию.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/jitter"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

// Backend — хранилище одного документа с версией.
// Пустая версия означает, что документа ещё нет.
type Backend interface {
	Load(ctx context.Context) (data []byte, version string, err error)
	// Store записывает документ, только если текущая версия равна expectedVersion,
	// иначе возвращает e.ErrVersionConflict.
	Store(ctx context.Context, data []byte, expectedVersion string) error
	Ping(ctx context.Context) error
}

// Store — типизированный документ поверх Backend.
type Store[T any] struct {
	name       string
	backend    Backend
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	logger     logger.Logger
}

// Option настраивает Store.
type Option func(*options)

type options struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// WithRetries задаёт число повторов при конфликте версий.
func WithRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithBackoff задаёт начальную и максимальную задержку между повторами.
func WithBackoff(base, max time.Duration) Option {
	return func(o *options) {
		o.baseDelay = base
		o.maxDelay = max
	}
}

func NewStore[T any](name string, backend Backend, logger logger.Logger, opts ...Option) *Store[T] {
	o := options{
		maxRetries: 5,
		baseDelay:  10 * time.Millisecond,
		maxDelay:   500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T]{
		name:       name,
		backend:    backend,
		maxRetries: o.maxRetries,
		baseDelay:  o.baseDelay,
		maxDelay:   o.maxDelay,
		logger:     logger,
	}
}

// Get возвращает текущее значение документа; отсутствующий документ — нулевое значение T.
func (s *Store[T]) Get(ctx context.Context) (T, error) {
	value, _, err := s.load(ctx)
	return value, err
}

// Mutate применяет fn к текущему значению и сохраняет результат.
// Ошибка из fn возвращается как есть, и документ не меняется.
// При конфликте версий мутация повторяется на свежем документе.
func (s *Store[T]) Mutate(ctx context.Context, fn func(*T) error) (T, error) {
	op := "document.Mutate(" + s.name + ")"
	var zero T

	for attempt := 0; ; attempt++ {
		value, version, err := s.load(ctx)
		if err != nil {
			return zero, err
		}

		if err := fn(&value); err != nil {
			return zero, err
		}

		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return zero, e.Persistence(op, err)
		}

		err = s.backend.Store(ctx, data, version)
		if err == nil {
			return value, nil
		}

		if !errors.Is(err, e.ErrVersionConflict) {
			return zero, e.Persistence(op, err)
		}

		if attempt >= s.maxRetries {
			return zero, e.Persistence(op, err)
		}

		delay := jitter.ExponentialBackoff(s.baseDelay, s.maxDelay, attempt, jitter.DefaultJitter)
		s.logger.Debugf("%s: version conflict, retrying in %v (attempt %d)", op, delay, attempt+1)
		if err := jitter.Sleep(ctx, delay); err != nil {
			return zero, e.Persistence(op, err)
		}
	}
}

// Ping проверяет доступность хранилища.
func (s *Store[T]) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Store[T]) load(ctx context.Context) (T, string, error) {
	op := "document.load(" + s.name + ")"
	var value T

	data, version, err := s.backend.Load(ctx)
	if err != nil {
		return value, "", e.Persistence(op, err)
	}

	if len(data) == 0 {
		return value, version, nil
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, "", e.Persistence(op, err)
	}

	return value, version, nil
}
