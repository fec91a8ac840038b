package http

import (
	"net/http"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/internal/usecase"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

type OrderHandler struct {
	handler
	orders usecase.OrderUC
}

func NewOrderHandler(orders usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{handler: handler{logger: logger}, orders: orders}
}

type OrderResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
}

// OrdersResponse — список заказов отдаётся голым массивом.
type OrdersResponse []domain.Order

// updateOrderReq — тело PATCH: либо {orderId, status}, либо {orderId, fullUpdate: true, ...заказ}.
type updateOrderReq struct {
	OrderID    string `json:"orderId"`
	FullUpdate bool   `json:"fullUpdate"`
	usecase.OrderUpdate
}

type deleteOrderReq struct {
	OrderID string `json:"orderId"`
}

// createOrder
//
//	@Summary		Оформление заказа
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		usecase.CreateOrderReq	true	"Заказ"
//	@Success		201		{object}	OrderResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		500		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateOrderReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if req.Locale == "" {
		req.Locale = locale.FromContext(r.Context())
	}

	order, err := h.orders.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, OrderResponse{Success: true, Order: order})
}

// listOrders
//
//	@Summary		Список заказов
//	@Tags			orders
//	@Produce		json
//	@Param			status	query		string	false	"Фильтр по статусу"
//	@Success		200		{array}		domain.Order
//	@Failure		401		{object}	ErrorResponse
//	@Router			/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	var status *domain.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.OrderStatus(s)
		status = &st
	}

	orders, err := h.orders.List(r.Context(), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	WriteSuccess(w, http.StatusOK, OrdersResponse(orders))
}

// updateOrder
//
//	@Summary		Изменение статуса или полное редактирование заказа
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	OrderResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders [patch]
func (h *OrderHandler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	var (
		order *domain.Order
		err   error
	)
	if req.FullUpdate {
		order, err = h.orders.UpdateFull(r.Context(), req.OrderID, &req.OrderUpdate)
	} else {
		order, err = h.orders.UpdateStatus(r.Context(), req.OrderID, domain.OrderStatus(req.Status))
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, OrderResponse{Success: true, Order: order})
}

// deleteOrder
//
//	@Summary		Удаление заказа
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/orders [delete]
func (h *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	var req deleteOrderReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.orders.Delete(r.Context(), req.OrderID); err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}
