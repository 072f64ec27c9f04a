package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
	"github.com/SAILENDHRAB21/PriceBite/internal/order"
)

// OrderService is the consumer-side contract for the order tracker.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, lines []domain.CartLine, total float64, meta domain.DeliveryMeta) (*domain.Order, error)
	Current(ctx context.Context, userID string) (*domain.Order, error)
}

// CartSnapshotter freezes and clears the cart at checkout.
type CartSnapshotter interface {
	Snapshot(ctx context.Context, userID string) []domain.CartLine
	Clear(ctx context.Context, userID string)
}

type CheckoutHandler struct {
	cart        CartSnapshotter
	orders      OrderService
	deliveryFee float64
	taxRate     float64
	timeout     time.Duration
}

func NewCheckoutHandler(cart CartSnapshotter, orders OrderService, deliveryFee, taxRate float64, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		cart:        cart,
		orders:      orders,
		deliveryFee: deliveryFee,
		taxRate:     taxRate,
		timeout:     timeout,
	}
}

type checkoutRequestDTO struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`
	Phone      string `json:"phone"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVC    string `json:"cardCVC"`
}

type checkoutResponseDTO struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	OrderID     string        `json:"orderId"`
	Subtotal    float64       `json:"subtotal"`
	DeliveryFee float64       `json:"deliveryFee"`
	Tax         float64       `json:"tax"`
	Total       float64       `json:"total"`
	Order       *domain.Order `json:"order"`
}

type validationErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

var (
	digitsOnly  = regexp.MustCompile(`\D`)
	expiryRegex = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvcRegex    = regexp.MustCompile(`^\d{3,4}$`)
)

func validateCheckout(req checkoutRequestDTO) map[string]string {
	errs := make(map[string]string)

	if req.Address == "" {
		errs["address"] = "Address is required"
	}
	if req.City == "" {
		errs["city"] = "City is required"
	}
	if req.ZipCode == "" {
		errs["zipCode"] = "ZIP code is required"
	}

	switch phone := digitsOnly.ReplaceAllString(req.Phone, ""); {
	case req.Phone == "":
		errs["phone"] = "Phone number is required"
	case len(phone) != 10:
		errs["phone"] = "Invalid phone number"
	}

	switch card := digitsOnly.ReplaceAllString(req.CardNumber, ""); {
	case req.CardNumber == "":
		errs["cardNumber"] = "Card number is required"
	case len(card) != 16:
		errs["cardNumber"] = "Invalid card number"
	}

	switch {
	case req.CardExpiry == "":
		errs["cardExpiry"] = "Expiry date is required"
	case !expiryRegex.MatchString(req.CardExpiry):
		errs["cardExpiry"] = "Invalid format (MM/YY)"
	}

	switch {
	case req.CardCVC == "":
		errs["cardCVC"] = "CVC is required"
	case !cvcRegex.MatchString(req.CardCVC):
		errs["cardCVC"] = "Invalid CVC"
	}

	return errs
}

// PlaceOrder validates the delivery form, freezes the cart into a new order
// and clears the cart. Validation failures reject before any state change.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if errs := validateCheckout(req); len(errs) > 0 {
		respondJSON(w, http.StatusBadRequest, validationErrorResponse{
			Success: false,
			Message: "Please fix the errors in the form",
			Errors:  errs,
		})
		return
	}

	snapshot := h.cart.Snapshot(ctx, user.ID)
	if len(snapshot) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	subtotal := domain.Subtotal(snapshot)
	tax := subtotal * h.taxRate
	total := subtotal + h.deliveryFee + tax

	meta := domain.DeliveryMeta{
		Address: req.Address,
		City:    req.City,
		ZipCode: req.ZipCode,
		Phone:   req.Phone,
		Email:   user.Email,
	}

	placed, err := h.orders.PlaceOrder(ctx, user.ID, snapshot, total, meta)
	if err != nil {
		if errors.Is(err, order.ErrEmptyOrder) {
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		return
	}

	h.cart.Clear(ctx, user.ID)
	log.Printf("order %s placed for user %s (request %s)", placed.OrderID, user.ID, getRequestID(r.Context()))

	respondJSON(w, http.StatusCreated, checkoutResponseDTO{
		Success:     true,
		Message:     "Order placed successfully!",
		OrderID:     placed.OrderID,
		Subtotal:    subtotal,
		DeliveryFee: h.deliveryFee,
		Tax:         tax,
		Total:       total,
		Order:       placed,
	})
}
