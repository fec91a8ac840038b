// Package cart реализует корзину покупателя: набор строк до оформления заказа
// с явным жизненным циклом — загрузка при старте, сохранение после каждой мутации.
package cart

import (
	"sync"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/shopspring/decimal"
)

// Persister сохраняет и загружает строки корзины.
type Persister interface {
	Load() ([]domain.CartItem, error)
	Save(items []domain.CartItem) error
}

// Store — корзина с одним логическим владельцем.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartItem
	persister Persister
}

// Open загружает сохранённое состояние корзины. persister может быть nil —
// тогда корзина живёт только в памяти.
func Open(persister Persister) (*Store, error) {
	const op = "cart.Open"

	s := &Store{persister: persister}
	if persister == nil {
		return s, nil
	}

	items, err := persister.Load()
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	s.items = items

	return s, nil
}

// AddItem добавляет товар. Если строка с таким ID уже есть, её количество
// увеличивается на item.Quantity (на 1, если количество не задано).
func (s *Store) AddItem(item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity += qty
		return s.save()
	}

	item.Quantity = qty
	s.items = append(s.items, item)

	return s.save()
}

// UpdateQuantity задаёт количество для строки. Значения меньше 1 приводятся к 1:
// удаление строки выполняется только через RemoveItem. Неизвестный ID игнорируется.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	if quantity < 1 {
		quantity = 1
	}
	s.items[i].Quantity = quantity

	return s.save()
}

// RemoveItem удаляет строку целиком.
func (s *Store) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)

	return s.save()
}

// ClearCart очищает корзину, вызывается после успешного оформления заказа.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.save()
}

// Items возвращает копию строк корзины.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)

	return out
}

// Total возвращает сумму price * quantity по всем строкам.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Total(s.items)
}

// ItemCount возвращает сумму количеств (для бейджа корзины).
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ItemCount(s.items)
}

// Total — единая формула суммы корзины и заказа.
func Total(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// ItemCount возвращает сумму количеств по строкам.
func ItemCount(items []domain.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return count
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) save() error {
	if s.persister == nil {
		return nil
	}

	snapshot := make([]domain.CartItem, len(s.items))
	copy(snapshot, s.items)

	if err := s.persister.Save(snapshot); err != nil {
		return e.Wrap("cart.save", err)
	}

	return nil
}
