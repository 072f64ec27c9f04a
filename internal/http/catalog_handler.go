package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SAILENDHRAB21/PriceBite/internal/catalog"
	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
)

// CatalogService is the consumer-side contract for restaurant browsing.
type CatalogService interface {
	Restaurants() []catalog.Restaurant
	Menu(restaurantID string) ([]domain.MenuItem, error)
}

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

func (h *CatalogHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Restaurants())
}

func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")

	menu, err := h.catalog.Menu(restaurantID)
	if err != nil {
		if errors.Is(err, catalog.ErrRestaurantNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "restaurant not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load menu")
		return
	}

	respondJSON(w, http.StatusOK, menu)
}
