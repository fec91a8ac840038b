package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].quantity", fieldPath("items.0.quantity"))
	assert.Equal(t, "items.quantity", fieldPath("items.quantity"))
	assert.Equal(t, "customer.phone", fieldPath("customer.phone"))
	assert.Equal(t, "items[2]", fieldPath("items.2"))
	assert.Equal(t, "price", fieldPath("price"))
}

func TestDecodeJSONTypeMismatch(t *testing.T) {
	var dst struct {
		Customer struct {
			Name string `json:"name"`
		} `json:"customer"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"customer":{"name":42}}`))
	err := decodeJSON(httptest.NewRecorder(), req, &dst)

	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "customer.name", e.FieldOf(err))

	code, _ := ToHTTPResponse(err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDecodeJSONSyntaxError(t *testing.T) {
	var dst map[string]any

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"customer":`))
	err := decodeJSON(httptest.NewRecorder(), req, &dst)

	require.ErrorIs(t, err, e.ErrStatusBadRequest)
	assert.Empty(t, e.FieldOf(err))
}
