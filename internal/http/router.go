package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Auth           *AuthHandler
	Cart           *CartHandler
	Checkout       *CheckoutHandler
	Orders         *OrdersHandler
	Pricing        *PricingHandler
	Catalog        *CatalogHandler
	Verifier       TokenVerifier
	RequestTimeout time.Duration
}

// NewRouter assembles the API surface. Auth, pricing and catalog routes are
// public; cart, checkout and order routes require a bearer token.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "Server is running",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", cfg.Auth.Register)
		r.Post("/auth/login", cfg.Auth.Login)

		r.Route("/pricing", func(r chi.Router) {
			r.Post("/calculate", cfg.Pricing.Calculate)
			r.Get("/health", cfg.Pricing.Health)
		})

		r.Get("/restaurants", cfg.Catalog.Restaurants)
		r.Get("/restaurants/{restaurant_id}/menu", cfg.Catalog.Menu)

		// Routes below require authentication
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Verifier))

			r.Get("/auth/verify", cfg.Auth.Verify)
			r.Get("/user/profile", cfg.Auth.Profile)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.Cart.GetCart)
				r.Post("/items", cfg.Cart.AddItem)
				r.Put("/items/{item_id}", cfg.Cart.UpdateQuantity)
				r.Delete("/items/{item_id}", cfg.Cart.RemoveItem)
				r.Delete("/", cfg.Cart.ClearCart)
			})

			r.Post("/checkout", cfg.Checkout.PlaceOrder)
			r.Get("/orders/current", cfg.Orders.Current)
		})
	})

	return r
}
