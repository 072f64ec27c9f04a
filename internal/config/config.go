package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	// StoreBackend selects the slot store: memory, redis or mongo.
	StoreBackend  string `envconfig:"STORE_BACKEND" default:"memory"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DB_NAME" default:"pricebite"`

	PricingServiceURL    string        `envconfig:"PRICING_SERVICE_URL" default:"http://localhost:5001"`
	PricingTimeout       time.Duration `envconfig:"PRICING_TIMEOUT" default:"10s"`
	PricingHealthTimeout time.Duration `envconfig:"PRICING_HEALTH_TIMEOUT" default:"3s"`

	// OrderStatusDelay is one step of the timed status progression.
	OrderStatusDelay time.Duration `envconfig:"ORDER_STATUS_DELAY" default:"3s"`
	// KafkaBrokers enables status-event publishing when non-empty.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	DeliveryFee float64 `envconfig:"DELIVERY_FEE" default:"49"`
	TaxRate     float64 `envconfig:"TAX_RATE" default:"0.05"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
