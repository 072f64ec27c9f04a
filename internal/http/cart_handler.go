package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
)

// CartService is the consumer-side contract for the cart ledger.
type CartService interface {
	Lines(ctx context.Context, userID string) []domain.CartLine
	AddItem(ctx context.Context, userID string, item domain.MenuItem) []domain.CartLine
	RemoveItem(ctx context.Context, userID, itemID string) []domain.CartLine
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) []domain.CartLine
	Clear(ctx context.Context, userID string)
}

// ItemResolver resolves a menu item id against the catalog.
type ItemResolver interface {
	Item(itemID string) (domain.MenuItem, bool)
}

type CartHandler struct {
	cart    CartService
	catalog ItemResolver
	timeout time.Duration
}

func NewCartHandler(cart CartService, catalog ItemResolver, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		timeout: timeout,
	}
}

type addItemRequestDTO struct {
	ItemID string `json:"item_id"`
}

type updateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type cartResponseDTO struct {
	Items     []domain.CartLine `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
}

func cartResponse(lines []domain.CartLine) cartResponseDTO {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponseDTO{
		Items:     lines,
		Subtotal:  domain.Subtotal(lines),
		ItemCount: domain.ItemCount(lines),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.cart.Lines(ctx, user.ID)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	item, found := h.catalog.Item(req.ItemID)
	if !found {
		respondError(w, http.StatusNotFound, "not_found", "menu item not found")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(h.cart.AddItem(ctx, user.ID, item)))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	var req updateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// A quantity of zero or below removes the line; the ledger owns that
	// rule, the handler just passes it through.
	respondJSON(w, http.StatusOK, cartResponse(h.cart.SetQuantity(ctx, user.ID, itemID, req.Quantity)))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.cart.RemoveItem(ctx, user.ID, itemID)))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.cart.Clear(ctx, user.ID)
	respondJSON(w, http.StatusOK, cartResponse(nil))
}
