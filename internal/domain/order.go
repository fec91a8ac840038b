package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus — статус заказа. Переходы между статусами не ограничены:
// менеджер может вручную вернуть заказ в любой статус.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses перечисляет все допустимые статусы в порядке отображения.
var OrderStatuses = []OrderStatus{StatusNew, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}

	return false
}

// PaymentMethod — способ оплаты, выбранный при оформлении.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cashOnDelivery"
	PaymentCard           PaymentMethod = "card"
	PaymentPrepayment     PaymentMethod = "prepayment"
)

var PaymentMethods = []PaymentMethod{PaymentCashOnDelivery, PaymentCard, PaymentPrepayment}

func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}

	return false
}

type Customer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// FullName возвращает имя и фамилию через пробел.
func (c Customer) FullName() string {
	if c.Surname == "" {
		return c.Name
	}

	return c.Name + " " + c.Surname
}

type Delivery struct {
	City    string `json:"city"`
	Address string `json:"address"`
}

// Order описывает оформленный заказ. Items — замороженный снимок корзины,
// Total вычисляется из него один раз и не зависит от текущего каталога.
type Order struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
	Status        OrderStatus     `json:"status"`
	Customer      Customer        `json:"customer"`
	Delivery      Delivery        `json:"delivery"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Locale        string          `json:"locale"`
}
