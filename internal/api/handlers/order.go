package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders godoc
//	@Summary		List the caller's orders
//	@Tags			Orders
//	@Produce		json
//	@Success		200	{array}		models.Order			"Orders"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), p)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed successfully", slog.Int("count", len(orders)))
		response.Success(w, http.StatusOK, orders)
	}
}

// CancelOrder godoc
//	@Summary		Cancel an order
//	@Description	Only orders that have not shipped can be cancelled.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	models.Order			"Cancelled order"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		409	{object}	response.ErrorResponse	"Order can no longer be cancelled"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		p, ok := principalFrom(w, r, logger)
		if !ok {
			return
		}

		id := r.PathValue("id")
		logger = logger.With(slog.String("orderId", id))

		order, err := h.orderService.CancelOrder(r.Context(), p, id)
		if err != nil {
			logger.Warn("Failed to cancel order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled")
		response.Success(w, http.StatusOK, order)
	}
}
