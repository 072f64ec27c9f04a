package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// Fallback coordinates used when the caller has no location (central Delhi).
const (
	DefaultLatitude  = 28.6139
	DefaultLongitude = 77.2090
)

// Dish is one cart item forwarded to the calculator.
type Dish struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DishPricing is the calculator's adjusted price for one dish. Field names
// follow the calculator's wire format.
type DishPricing struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	OriginalPrice float64 `json:"originalPrice"`
	DynamicPrice  float64 `json:"dynamicPrice"`
	Multiplier    float64 `json:"multiplier"`
	PriceChange   string  `json:"priceChange"`
	Surcharge     float64 `json:"surcharge"`
	Savings       float64 `json:"savings"`
}

type Factors struct {
	WeatherImpact float64 `json:"weather_impact"`
	TrafficImpact float64 `json:"traffic_impact"`
	TimeImpact    float64 `json:"time_impact"`
	DemandImpact  float64 `json:"demand_impact"`
}

type Weather struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
}

type TimeFactors struct {
	Hour               int    `json:"hour"`
	TimeOfDay          string `json:"time_of_day"`
	DayType            string `json:"day_type"`
	Traffic            string `json:"traffic"`
	TrafficDescription string `json:"traffic_description"`
}

// Result is the calculator's success payload. Factors, weather and time
// context are display-only; nothing here is interpreted further.
type Result struct {
	Multiplier        float64       `json:"multiplier"`
	Reasoning         string        `json:"reasoning"`
	Dishes            []DishPricing `json:"dishes"`
	Factors           Factors       `json:"factors"`
	ConditionsSummary string        `json:"conditions_summary"`
	Weather           Weather       `json:"weather"`
	TimeFactors       TimeFactors   `json:"time_factors"`
	Timestamp         string        `json:"timestamp"`
}

type calculateRequest struct {
	Dishes    []Dish  `json:"dishes"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type calculateResponse struct {
	Success bool    `json:"success"`
	Data    *Result `json:"data"`
	Message string  `json:"message"`
	Error   string  `json:"error"`
}

// HealthStatus is the probe outcome. Probe failure is a value, never an
// error.
type HealthStatus struct {
	Available bool   `json:"available"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Client forwards pricing requests to the external calculator. Calculate
// runs through a circuit breaker so a dead calculator is reported as
// unreachable without burning the full timeout on every request. No retries:
// a single failed attempt is surfaced and the caller decides whether to fall
// back to original prices.
type Client struct {
	baseURL      string
	client       *http.Client
	healthClient *http.Client
	breaker      *gobreaker.CircuitBreaker[*Result]
	sfg          singleflight.Group // collapses concurrent health probes
}

func NewClient(baseURL string, calcTimeout, healthTimeout time.Duration) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &Client{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: calcTimeout, Transport: transport},
		healthClient: &http.Client{Timeout: healthTimeout, Transport: transport},
		breaker: gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
			Name:    "pricing-calculator",
			Timeout: 30 * time.Second,
		}),
	}
}

// Calculate sends the dish list and coordinates to the calculator and
// returns its adjusted prices. Missing coordinates fall back to the default
// location.
func (c *Client) Calculate(ctx context.Context, dishes []Dish, loc *Location) (*Result, error) {
	if len(dishes) == 0 {
		return nil, &Error{Kind: KindOther, Message: "no dishes to price"}
	}

	req := calculateRequest{
		Dishes:    dishes,
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
	}
	if loc != nil {
		req.Latitude = loc.Latitude
		req.Longitude = loc.Longitude
	}

	result, err := c.breaker.Execute(func() (*Result, error) {
		return c.doCalculate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &Error{Kind: KindUnreachable, Message: "pricing calculator circuit open", Err: err}
		}
		var pe *Error
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, &Error{Kind: KindOther, Message: "pricing calculation failed", Err: err}
	}
	return result, nil
}

func (c *Client) doCalculate(ctx context.Context, payload calculateRequest) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindOther, Message: "failed to marshal pricing request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pricing/calculate", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindOther, Message: "failed to build pricing request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: classify(err), Message: "pricing calculator call failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindBadResponse, Message: "failed to read pricing response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindBadResponse,
			Message: fmt.Sprintf("pricing calculator returned status %d", resp.StatusCode),
		}
	}

	var envelope calculateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &Error{Kind: KindBadResponse, Message: "malformed pricing response", Err: err}
	}
	if !envelope.Success || envelope.Data == nil {
		msg := envelope.Message
		if msg == "" {
			msg = "pricing calculator reported failure"
		}
		return nil, &Error{Kind: KindBadResponse, Message: msg}
	}

	return envelope.Data, nil
}

// Health probes the calculator with a short timeout. It never returns an
// error; unavailability is the signaled result. Concurrent probes collapse
// into a single request whose result every collapsed caller shares, so the
// probe runs detached from any one caller's context; a cancelled request
// must not fail the probe for the others.
func (c *Client) Health(context.Context) HealthStatus {
	v, _, _ := c.sfg.Do("health", func() (interface{}, error) {
		probeCtx, cancel := context.WithTimeout(context.Background(), c.healthClient.Timeout)
		defer cancel()
		return c.doHealth(probeCtx), nil
	})
	return v.(HealthStatus)
}

func (c *Client) doHealth(ctx context.Context) HealthStatus {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/pricing/health", nil)
	if err != nil {
		return HealthStatus{Available: false, Message: "failed to build health request"}
	}

	resp, err := c.healthClient.Do(httpReq)
	if err != nil {
		return HealthStatus{Available: false, Message: "cannot connect to pricing calculator"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return HealthStatus{Available: false, Message: fmt.Sprintf("pricing calculator returned status %d", resp.StatusCode)}
	}

	var probe struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
		return HealthStatus{Available: false, Message: "malformed health response"}
	}

	return HealthStatus{
		Available: probe.Status == "ok",
		Status:    probe.Status,
		Message:   probe.Message,
	}
}
