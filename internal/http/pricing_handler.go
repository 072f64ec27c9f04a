package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/SAILENDHRAB21/PriceBite/internal/pricing"
)

// PricingService is the consumer-side contract for the pricing proxy.
type PricingService interface {
	Calculate(ctx context.Context, dishes []pricing.Dish, loc *pricing.Location) (*pricing.Result, error)
	Health(ctx context.Context) pricing.HealthStatus
}

type PricingHandler struct {
	pricing PricingService
	timeout time.Duration
}

func NewPricingHandler(svc PricingService, timeout time.Duration) *PricingHandler {
	return &PricingHandler{
		pricing: svc,
		timeout: timeout,
	}
}

type calculateRequestDTO struct {
	Dishes    []pricing.Dish `json:"dishes"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
}

type calculateResponseDTO struct {
	Success bool            `json:"success"`
	Data    *pricing.Result `json:"data"`
}

type pricingErrorDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Calculate forwards the dish list to the external calculator. The caller
// falls back to original prices on failure; the handler only classifies it.
func (h *PricingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req calculateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, pricingErrorDTO{
			Success: false,
			Message: "invalid JSON body",
		})
		return
	}
	if len(req.Dishes) == 0 {
		respondJSON(w, http.StatusBadRequest, pricingErrorDTO{
			Success: false,
			Message: "Dishes array is required and cannot be empty",
		})
		return
	}

	var loc *pricing.Location
	if req.Latitude != nil && req.Longitude != nil {
		loc = &pricing.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	result, err := h.pricing.Calculate(ctx, req.Dishes, loc)
	if err != nil {
		if pricing.KindOf(err) == pricing.KindUnreachable {
			respondJSON(w, http.StatusServiceUnavailable, pricingErrorDTO{
				Success: false,
				Message: "Pricing service is not available. Please try again later.",
				Error:   "Service connection refused",
			})
			return
		}
		respondJSON(w, http.StatusInternalServerError, pricingErrorDTO{
			Success: false,
			Message: "Error calculating dynamic pricing",
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, calculateResponseDTO{Success: true, Data: result})
}

// Health probes the calculator. Unavailability is a 503, never a panic or
// a hung request; the probe itself is timeout-bounded below the handler
// timeout.
func (h *PricingHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := h.pricing.Health(ctx)
	if !status.Available {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "Pricing calculator is not available",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  status.Status,
		"message": status.Message,
	})
}
