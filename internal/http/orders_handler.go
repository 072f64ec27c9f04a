package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SAILENDHRAB21/PriceBite/internal/order"
)

type OrdersHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrdersHandler(orders OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// Current returns the user's tracked order. Its status reflects the timed
// progression as of this read.
func (h *OrdersHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	current, err := h.orders.Current(ctx, user.ID)
	if err != nil {
		if errors.Is(err, order.ErrNoOrder) {
			respondError(w, http.StatusNotFound, "not_found", "no current order")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	respondJSON(w, http.StatusOK, current)
}
