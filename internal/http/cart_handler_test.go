package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAILENDHRAB21/PriceBite/internal/cart"
	"github.com/SAILENDHRAB21/PriceBite/internal/catalog"
	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
	"github.com/SAILENDHRAB21/PriceBite/internal/store"
)

var testUser = domain.User{ID: "user1", Name: "Asha", Email: "asha@example.com"}

// withTestUser injects an authenticated user the way the auth middleware
// does, so handlers can be exercised without tokens.
func withTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userContextKey, testUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newCartRouter() chi.Router {
	ledger := cart.NewLedger(store.NewMemory())
	handler := NewCartHandler(ledger, catalog.New(), 5*time.Second)

	r := chi.NewRouter()
	r.Use(withTestUser)
	r.Get("/cart", handler.GetCart)
	r.Post("/cart/items", handler.AddItem)
	r.Put("/cart/items/{item_id}", handler.UpdateQuantity)
	r.Delete("/cart/items/{item_id}", handler.RemoveItem)
	r.Delete("/cart", handler.ClearCart)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponseDTO {
	t.Helper()
	var resp cartResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetCart_EmptyIsNotAnError(t *testing.T) {
	router := newCartRouter()

	rec := doJSON(t, router, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.0, resp.Subtotal)
	assert.Equal(t, 0, resp.ItemCount)
}

func TestAddItem_ResolvesCatalogItem(t *testing.T) {
	router := newCartRouter()

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Margherita Pizza", resp.Items[0].Name)
	assert.Equal(t, 349.0, resp.Subtotal)
}

func TestAddItem_UnknownItem(t *testing.T) {
	router := newCartRouter()

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItem_MissingItemID(t *testing.T) {
	router := newCartRouter()

	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_TwiceIncrementsQuantity(t *testing.T) {
	router := newCartRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	rec := doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, 698.0, resp.Subtotal)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	router := newCartRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	rec := doJSON(t, router, http.MethodPut, "/cart/items/m1", updateQuantityRequestDTO{Quantity: 0})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)
}

func TestUpdateQuantity_SetsNewCount(t *testing.T) {
	router := newCartRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	rec := doJSON(t, router, http.MethodPut, "/cart/items/m1", updateQuantityRequestDTO{Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 1047.0, resp.Subtotal)
}

func TestRemoveItem(t *testing.T) {
	router := newCartRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m3"})
	rec := doJSON(t, router, http.MethodDelete, "/cart/items/m1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "m3", resp.Items[0].ID)
}

func TestClearCart(t *testing.T) {
	router := newCartRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", addItemRequestDTO{ItemID: "m1"})
	rec := doJSON(t, router, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Items)

	rec = doJSON(t, router, http.MethodGet, "/cart", nil)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartHandlers_RejectMissingUser(t *testing.T) {
	ledger := cart.NewLedger(store.NewMemory())
	handler := NewCartHandler(ledger, catalog.New(), 5*time.Second)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.GetCart(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
