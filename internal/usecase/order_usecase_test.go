package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderReq() *CreateOrderReq {
	return &CreateOrderReq{
		Customer:      CustomerInput{Name: "Іван", Surname: "Петренко", Phone: "+380501234567"},
		Delivery:      DeliveryInput{City: "Київ", Address: "Нова Пошта №5"},
		PaymentMethod: string(domain.PaymentCashOnDelivery),
		Items: []OrderItemInput{
			{ID: "multyvarka-24v", Name: "Мультиварка 24V", Price: decimal.NewFromInt(100), Quantity: 2},
			{ID: "chainyk-12v", Name: "Чайник 12V", Price: decimal.NewFromInt(50), Quantity: 1},
		},
		Locale: "uk",
	}
}

type orderFixture struct {
	uc         *OrderUseCase
	repo       OrderRepository
	dispatcher *fakeDispatcher
	metrics    *fakeMetrics
}

func newOrderFixture(repo OrderRepository) *orderFixture {
	f := &orderFixture{
		repo:       repo,
		dispatcher: &fakeDispatcher{},
		metrics:    &fakeMetrics{},
	}
	f.uc = NewOrderUC(repo, f.dispatcher, f.metrics, NewValidator(), logger.Nop{})
	return f
}

func TestOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return fixed }

	req := validOrderReq()
	order, err := f.uc.Create(ctx, req)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(250).Equal(order.Total), "total = %s", order.Total)
	assert.Equal(t, domain.StatusNew, order.Status)
	assert.Equal(t, fixed, order.CreatedAt)
	assert.Nil(t, order.UpdatedAt)
	assert.Regexp(t, `^ORDER-[0-9a-f-]{36}$`, order.ID)
	assert.Equal(t, "uk", order.Locale)

	require.Len(t, order.Items, 2)
	for i, item := range req.Items {
		assert.Equal(t, item.ID, order.Items[i].ID)
		assert.Equal(t, item.Quantity, order.Items[i].Quantity)
		assert.True(t, item.Price.Equal(order.Items[i].Price))
	}

	stored, err := f.repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)

	require.Len(t, f.dispatcher.orders, 1)
	assert.Equal(t, order.ID, f.dispatcher.orders[0].ID)
	assert.Equal(t, 1, f.metrics.created)
}

func TestOrderUseCase_CreateIgnoresClientTotal(t *testing.T) {
	f := newOrderFixture(newOrderStore())

	req := validOrderReq()
	forged := decimal.NewFromInt(1)
	req.Total = &forged

	order, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(order.Total))
}

func TestOrderUseCase_CreateDefaultsLocale(t *testing.T) {
	f := newOrderFixture(newOrderStore())

	req := validOrderReq()
	req.Locale = ""

	order, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "uk", order.Locale)
}

func TestOrderUseCase_CreatePrependsNewest(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())

	first, err := f.uc.Create(ctx, validOrderReq())
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, validOrderReq())
	require.NoError(t, err)

	list, err := f.uc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestOrderUseCase_CreateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateOrderReq)
		field  string
	}{
		{"missing phone", func(r *CreateOrderReq) { r.Customer.Phone = "" }, "customer.phone"},
		{"missing name", func(r *CreateOrderReq) { r.Customer.Name = "" }, "customer.name"},
		{"missing surname", func(r *CreateOrderReq) { r.Customer.Surname = "" }, "customer.surname"},
		{"bad email", func(r *CreateOrderReq) { r.Customer.Email = "not-an-email" }, "customer.email"},
		{"missing city", func(r *CreateOrderReq) { r.Delivery.City = "" }, "delivery.city"},
		{"missing address", func(r *CreateOrderReq) { r.Delivery.Address = "" }, "delivery.address"},
		{"unknown payment", func(r *CreateOrderReq) { r.PaymentMethod = "bitcoin" }, "paymentMethod"},
		{"no items", func(r *CreateOrderReq) { r.Items = nil }, "items"},
		{"empty items", func(r *CreateOrderReq) { r.Items = []OrderItemInput{} }, "items"},
		{"zero quantity", func(r *CreateOrderReq) { r.Items[1].Quantity = 0 }, "items[1].quantity"},
		{"negative price", func(r *CreateOrderReq) { r.Items[0].Price = decimal.NewFromInt(-1) }, "items[0].price"},
		{"missing item id", func(r *CreateOrderReq) { r.Items[0].ID = "" }, "items[0].id"},
		{"unknown locale", func(r *CreateOrderReq) { r.Locale = "fr" }, "locale"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(newOrderStore())
			req := validOrderReq()
			tc.mutate(req)

			_, err := f.uc.Create(context.Background(), req)
			require.ErrorIs(t, err, e.ErrValidation)
			assert.Equal(t, tc.field, e.FieldOf(err))

			stored, err := f.repo.Get(context.Background())
			require.NoError(t, err)
			assert.Empty(t, stored)
			assert.Empty(t, f.dispatcher.orders)
		})
	}
}

func TestOrderUseCase_EmailIsOptional(t *testing.T) {
	f := newOrderFixture(newOrderStore())
	req := validOrderReq()
	req.Customer.Email = ""

	_, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestOrderUseCase_PersistenceFailure(t *testing.T) {
	f := newOrderFixture(failingRepo[[]domain.Order]{})

	_, err := f.uc.Create(context.Background(), validOrderReq())
	require.Error(t, err)
	assert.Empty(t, f.dispatcher.orders, "notifications must not be sent when the order was not saved")
	assert.Zero(t, f.metrics.created)
}

func TestOrderUseCase_UniqueIDsUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(ctx, validOrderReq())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := f.uc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, n)

	seen := make(map[string]struct{}, n)
	for _, o := range list {
		_, dup := seen[o.ID]
		require.False(t, dup, "duplicate id %s", o.ID)
		seen[o.ID] = struct{}{}
	}
}

func TestOrderUseCase_RegeneratesCollidingID(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())

	ids := []string{"ORDER-A", "ORDER-A", "ORDER-B"}
	f.uc.newID = func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	first, err := f.uc.Create(ctx, validOrderReq())
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, validOrderReq())
	require.NoError(t, err)

	assert.Equal(t, "ORDER-A", first.ID)
	assert.Equal(t, "ORDER-B", second.ID)
}

func seedOrders(t *testing.T, f *orderFixture, n int) []domain.Order {
	t.Helper()

	created := make([]domain.Order, 0, n)
	for i := 0; i < n; i++ {
		o, err := f.uc.Create(context.Background(), validOrderReq())
		require.NoError(t, err)
		created = append(created, *o)
	}

	return created
}

func TestOrderUseCase_List(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())
	orders := seedOrders(t, f, 3)

	_, err := f.uc.UpdateStatus(ctx, orders[1].ID, domain.StatusShipped)
	require.NoError(t, err)

	shipped := domain.StatusShipped
	list, err := f.uc.List(ctx, &shipped)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orders[1].ID, list[0].ID)

	bogus := domain.OrderStatus("lost")
	_, err = f.uc.List(ctx, &bogus)
	require.ErrorIs(t, err, e.ErrValidation)
}

func TestOrderUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())
	orders := seedOrders(t, f, 2)
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return later }

	t.Run("any transition is allowed", func(t *testing.T) {
		for _, st := range []domain.OrderStatus{domain.StatusCompleted, domain.StatusNew, domain.StatusCancelled, domain.StatusProcessing} {
			updated, err := f.uc.UpdateStatus(ctx, orders[0].ID, st)
			require.NoError(t, err)
			assert.Equal(t, st, updated.Status)
			require.NotNil(t, updated.UpdatedAt)
			assert.Equal(t, later, *updated.UpdatedAt)
			assert.Equal(t, orders[0].CreatedAt, updated.CreatedAt)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.uc.UpdateStatus(ctx, orders[0].ID, "lost")
		require.ErrorIs(t, err, e.ErrValidation)
		assert.Equal(t, "status", e.FieldOf(err))
	})

	t.Run("not found leaves collection unchanged", func(t *testing.T) {
		before, err := f.repo.Get(ctx)
		require.NoError(t, err)

		_, err = f.uc.UpdateStatus(ctx, "ORDER-missing", domain.StatusShipped)
		require.ErrorIs(t, err, e.ErrNotFound)

		after, err := f.repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestOrderUseCase_UpdateFull(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())
	orders := seedOrders(t, f, 1)
	original := orders[0]

	upd := &OrderUpdate{
		Customer:      CustomerInput{Name: "Олена", Surname: "Коваль", Phone: "+380671112233", Email: "olena@example.com"},
		Delivery:      DeliveryInput{City: "Львів", Address: "вул. Городоцька 1"},
		PaymentMethod: string(domain.PaymentCard),
		Notes:         "передзвонити",
		Items:         []OrderItemInput{{ID: "chainyk-12v", Name: "Чайник 12V", Price: decimal.NewFromInt(75), Quantity: 4}},
		Status:        string(domain.StatusProcessing),
	}

	updated, err := f.uc.UpdateFull(ctx, original.ID, upd)
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Equal(t, original.Locale, updated.Locale)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, "Олена", updated.Customer.Name)
	assert.Equal(t, "Львів", updated.Delivery.City)
	assert.Equal(t, domain.PaymentCard, updated.PaymentMethod)
	assert.Equal(t, domain.StatusProcessing, updated.Status)
	assert.Equal(t, "передзвонити", updated.Notes)
	assert.True(t, original.Total.Equal(updated.Total), "total = %s", updated.Total)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 4, updated.Items[0].Quantity)

	t.Run("validation", func(t *testing.T) {
		bad := *upd
		bad.Delivery.Address = ""
		_, err := f.uc.UpdateFull(ctx, original.ID, &bad)
		require.ErrorIs(t, err, e.ErrValidation)
		assert.Equal(t, "delivery.address", e.FieldOf(err))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := f.uc.UpdateFull(ctx, "ORDER-missing", upd)
		require.ErrorIs(t, err, e.ErrNotFound)
	})
}

func TestOrderUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())
	orders := seedOrders(t, f, 3)

	before, err := f.uc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, before, 3)

	require.NoError(t, f.uc.Delete(ctx, orders[1].ID))

	list, err := f.uc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, o := range list {
		assert.NotEqual(t, orders[1].ID, o.ID)
	}

	var kept []domain.Order
	for _, o := range before {
		if o.ID != orders[1].ID {
			kept = append(kept, o)
		}
	}
	assert.Equal(t, kept, list)

	wantJSON, err := json.Marshal(kept)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Equal(t, string(wantJSON), string(gotJSON))

	err = f.uc.Delete(ctx, orders[1].ID)
	require.ErrorIs(t, err, e.ErrNotFound)

	err = f.uc.Delete(ctx, "")
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "orderId", e.FieldOf(err))

	list, err = f.uc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestOrderUseCase_ApplyPatch(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(newOrderStore())
	orders := seedOrders(t, f, 1)

	notes := "оставить у двери"
	updated, err := f.uc.Apply(ctx, orders[0].ID, OrderPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, orders[0].Customer, updated.Customer)
	assert.True(t, orders[0].Total.Equal(updated.Total))

	_, err = f.uc.Apply(ctx, orders[0].ID, OrderPatch{Items: []domain.CartItem{}})
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "items", e.FieldOf(err))

	bad := domain.PaymentMethod("barter")
	_, err = f.uc.Apply(ctx, orders[0].ID, OrderPatch{PaymentMethod: &bad})
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "paymentMethod", e.FieldOf(err))
}
