package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/DRSN-tech/autovarka/internal/cart"
	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/google/uuid"
)

const orderIDPrefix = "ORDER-"

// OrderUseCase реализует оформление заказов и их администрирование.
type OrderUseCase struct {
	orders    OrderRepository
	notifier  NotificationDispatcher
	metrics   OrderMetrics
	validator *Validator
	logger    logger.Logger
	now       func() time.Time
	newID     func() (string, error)
}

func NewOrderUC(
	orders OrderRepository,
	notifier NotificationDispatcher,
	metrics OrderMetrics,
	validator *Validator,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		notifier:  notifier,
		metrics:   metrics,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     newOrderID,
	}
}

// Create проверяет заказ, сохраняет его первым в коллекции и рассылает уведомления.
// Заказ считается оформленным после записи в хранилище; ошибки уведомлений только логируются.
func (o *OrderUseCase) Create(ctx context.Context, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.Create"

	if err := o.validator.Struct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	items := toCartItems(req.Items)
	total := cart.Total(items)
	if req.Total != nil && !req.Total.Equal(total) {
		o.logger.Warnf("%s: client total %s differs from computed %s, using computed", op, req.Total, total)
	}

	orderLocale := req.Locale
	if orderLocale == "" {
		orderLocale = locale.Default
	}

	order := domain.Order{
		CreatedAt:     o.now(),
		Status:        domain.StatusNew,
		Customer:      toCustomer(req.Customer),
		Delivery:      toDelivery(req.Delivery),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
		Items:         items,
		Total:         total,
		Locale:        orderLocale,
	}

	_, err := o.orders.Mutate(ctx, func(list *[]domain.Order) error {
		id, err := o.uniqueID(*list)
		if err != nil {
			return err
		}
		order.ID = id

		*list = append([]domain.Order{order}, *list...)
		return nil
	})
	if err != nil {
		o.logger.Errorf(err, "%s: failed to save order", op)
		return nil, e.Wrap(op, err)
	}

	o.metrics.OrderCreated()
	o.logger.Infof("order %s created: %d item(s), total %s", order.ID, len(order.Items), order.Total)

	// Уведомления не должны прерываться, если клиент уже закрыл соединение.
	o.notifier.DispatchOrder(context.WithoutCancel(ctx), &order)

	return &order, nil
}

// List возвращает заказы от новых к старым, опционально только с указанным статусом.
func (o *OrderUseCase) List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	const op = "OrderUseCase.List"

	if status != nil && !status.Valid() {
		return nil, e.Wrap(op, e.NewValidationError("status", "unknown status"))
	}

	orders, err := o.orders.Get(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if status == nil {
		return orders, nil
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == *status {
			filtered = append(filtered, order)
		}
	}

	return filtered, nil
}

// UpdateStatus меняет только статус. Любой статус может следовать за любым.
func (o *OrderUseCase) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return o.Apply(ctx, id, OrderPatch{Status: &status})
}

// UpdateFull заменяет изменяемую часть заказа, сохраняя id, createdAt, locale и total.
// Сумма фиксируется при оформлении и при замене позиций не меняется.
func (o *OrderUseCase) UpdateFull(ctx context.Context, id string, req *OrderUpdate) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateFull"

	if err := o.validator.Struct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	status := domain.OrderStatus(req.Status)
	customer := toCustomer(req.Customer)
	delivery := toDelivery(req.Delivery)
	payment := domain.PaymentMethod(req.PaymentMethod)
	notes := req.Notes

	return o.Apply(ctx, id, OrderPatch{
		Status:        &status,
		Customer:      &customer,
		Delivery:      &delivery,
		PaymentMethod: &payment,
		Notes:         &notes,
		Items:         toCartItems(req.Items),
	})
}

// Apply применяет частичное изменение к заказу id и проставляет updatedAt.
// Если заказа нет, коллекция не меняется и возвращается e.ErrNotFound.
func (o *OrderUseCase) Apply(ctx context.Context, id string, patch OrderPatch) (*domain.Order, error) {
	const op = "OrderUseCase.Apply"

	if id == "" {
		return nil, e.Wrap(op, e.NewValidationError("orderId", "is required"))
	}

	if err := validatePatch(patch); err != nil {
		return nil, e.Wrap(op, err)
	}

	var updated domain.Order
	_, err := o.orders.Mutate(ctx, func(list *[]domain.Order) error {
		idx := slices.IndexFunc(*list, func(order domain.Order) bool { return order.ID == id })
		if idx < 0 {
			return fmt.Errorf("order %q: %w", id, e.ErrNotFound)
		}

		order := &(*list)[idx]
		applyPatch(order, patch)
		now := o.now()
		order.UpdatedAt = &now

		updated = *order
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order %s updated, status %s", id, updated.Status)
	return &updated, nil
}

// Delete безвозвратно удаляет заказ.
func (o *OrderUseCase) Delete(ctx context.Context, id string) error {
	const op = "OrderUseCase.Delete"

	if id == "" {
		return e.Wrap(op, e.NewValidationError("orderId", "is required"))
	}

	_, err := o.orders.Mutate(ctx, func(list *[]domain.Order) error {
		idx := slices.IndexFunc(*list, func(order domain.Order) bool { return order.ID == id })
		if idx < 0 {
			return fmt.Errorf("order %q: %w", id, e.ErrNotFound)
		}

		*list = slices.Delete(*list, idx, idx+1)
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	o.logger.Infof("order %s deleted", id)
	return nil
}

// uniqueID генерирует идентификатор, которого ещё нет в коллекции.
func (o *OrderUseCase) uniqueID(orders []domain.Order) (string, error) {
	for {
		id, err := o.newID()
		if err != nil {
			return "", e.Wrap("OrderUseCase.uniqueID", err)
		}

		if !slices.ContainsFunc(orders, func(order domain.Order) bool { return order.ID == id }) {
			return id, nil
		}
	}
}

func newOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	return orderIDPrefix + id.String(), nil
}

func validatePatch(patch OrderPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return e.NewValidationError("status", "unknown status")
	}

	if patch.PaymentMethod != nil && !patch.PaymentMethod.Valid() {
		return e.NewValidationError("paymentMethod", "unknown payment method")
	}

	if patch.Items != nil {
		if len(patch.Items) == 0 {
			return e.NewValidationError("items", "must contain at least 1 element(s)")
		}
		for i, item := range patch.Items {
			if item.ID == "" {
				return e.NewValidationError(fmt.Sprintf("items[%d].id", i), "is required")
			}
			if item.Quantity < 1 {
				return e.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be greater than or equal to 1")
			}
			if item.Price.IsNegative() {
				return e.NewValidationError(fmt.Sprintf("items[%d].price", i), "must be greater than or equal to 0")
			}
		}
	}

	return nil
}

func applyPatch(order *domain.Order, patch OrderPatch) {
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Customer != nil {
		order.Customer = *patch.Customer
	}
	if patch.Delivery != nil {
		order.Delivery = *patch.Delivery
	}
	if patch.PaymentMethod != nil {
		order.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if patch.Items != nil {
		order.Items = slices.Clone(patch.Items)
	}
}
