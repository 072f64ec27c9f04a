package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SAILENDHRAB21/PriceBite/internal/auth"
	"github.com/SAILENDHRAB21/PriceBite/internal/cart"
	"github.com/SAILENDHRAB21/PriceBite/internal/catalog"
	"github.com/SAILENDHRAB21/PriceBite/internal/config"
	h "github.com/SAILENDHRAB21/PriceBite/internal/http"
	"github.com/SAILENDHRAB21/PriceBite/internal/order"
	"github.com/SAILENDHRAB21/PriceBite/internal/pricing"
	"github.com/SAILENDHRAB21/PriceBite/internal/store"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	slots, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store setup failed: %v", err)
	}
	defer closeStore()
	log.Printf("using %s store backend", cfg.StoreBackend)

	var publisher order.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := order.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("publishing order status events to %v", cfg.KafkaBrokers)
	}

	menu := catalog.New()
	ledger := cart.NewLedger(slots)
	tracker := order.NewTracker(slots, cfg.OrderStatusDelay, publisher)
	defer tracker.Stop()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(tokens, slots)

	pricingClient := pricing.NewClient(cfg.PricingServiceURL, cfg.PricingTimeout, cfg.PricingHealthTimeout)

	router := h.NewRouter(h.RouterConfig{
		Auth:           h.NewAuthHandler(authService),
		Cart:           h.NewCartHandler(ledger, menu, cfg.RequestTimeout),
		Checkout:       h.NewCheckoutHandler(ledger, tracker, cfg.DeliveryFee, cfg.TaxRate, cfg.RequestTimeout),
		Orders:         h.NewOrdersHandler(tracker, cfg.RequestTimeout),
		Pricing:        h.NewPricingHandler(pricingClient, cfg.RequestTimeout),
		Catalog:        h.NewCatalogHandler(menu),
		Verifier:       authService,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "pricebite-server"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// buildStore selects the slot store backend from config.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return store.NewRedis(client), func() { client.Close() }, nil

	case "mongo":
		db, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.Printf("mongo disconnect error: %v", err)
			}
		}
		return store.NewMongo(db), disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
