package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Localize(t *testing.T) {
	p := &Product{
		ID:            "multyvarka-24v",
		Name:          "Мультиварка 24V",
		NameEn:        "Multicooker 24V",
		Description:   "Опис",
		DescriptionRu: "Описание",
		Price:         decimal.NewFromInt(1500),
		Images:        []string{"/images/a.jpg"},
		VideoTitle:    "Огляд",
	}

	en := p.Localize("en")
	assert.Equal(t, "Multicooker 24V", en.Name)
	assert.Equal(t, "Опис", en.Description, "missing translation falls back to base")
	assert.Equal(t, "Огляд", en.VideoTitle)

	ru := p.Localize("ru")
	assert.Equal(t, "Мультиварка 24V", ru.Name)
	assert.Equal(t, "Описание", ru.Description)

	en.Images[0] = "changed"
	assert.Equal(t, "/images/a.jpg", p.Images[0], "view must not alias product images")
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("archived").Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
	assert.True(t, PaymentCard.Valid())
}

func TestCartItem_JSONPriceIsNumber(t *testing.T) {
	item := CartItem{ID: "a", Name: "A", Price: decimal.RequireFromString("99.50"), Quantity: 2}

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":99.5`)
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(199)))

	var back CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","price":"12.5","quantity":1}`), &back))
	assert.True(t, back.Price.Equal(decimal.RequireFromString("12.5")))
}
