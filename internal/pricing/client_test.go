package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDishes() []Dish {
	return []Dish{
		{ID: "m1", Name: "Margherita Pizza", Price: 349, Category: "Pizza"},
		{ID: "m2", Name: "Pepperoni Pizza", Price: 449, Category: "Pizza"},
	}
}

func calculatorStub(t *testing.T, handler func(w http.ResponseWriter, req calculateRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pricing/calculate" {
			http.NotFound(w, r)
			return
		}
		var req calculateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
}

func TestCalculate_Success(t *testing.T) {
	srv := calculatorStub(t, func(w http.ResponseWriter, req calculateRequest) {
		assert.Len(t, req.Dishes, 2)
		json.NewEncoder(w).Encode(calculateResponse{
			Success: true,
			Data: &Result{
				Multiplier: 1.15,
				Reasoning:  "evening rush with light rain",
				Dishes: []DishPricing{
					{ID: "m1", OriginalPrice: 349, DynamicPrice: 401.35, Multiplier: 1.15, PriceChange: "increase"},
					{ID: "m2", OriginalPrice: 449, DynamicPrice: 516.35, Multiplier: 1.15, PriceChange: "increase"},
				},
			},
		})
	})
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Second)
	result, err := client.Calculate(context.Background(), testDishes(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1.15, result.Multiplier)
	require.Len(t, result.Dishes, 2)
	assert.Equal(t, 401.35, result.Dishes[0].DynamicPrice)
}

func TestCalculate_DefaultCoordinatesWhenLocationMissing(t *testing.T) {
	var got calculateRequest
	srv := calculatorStub(t, func(w http.ResponseWriter, req calculateRequest) {
		got = req
		json.NewEncoder(w).Encode(calculateResponse{Success: true, Data: &Result{Multiplier: 1}})
	})
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultLatitude, got.Latitude)
	assert.Equal(t, DefaultLongitude, got.Longitude)
}

func TestCalculate_CallerCoordinatesForwarded(t *testing.T) {
	var got calculateRequest
	srv := calculatorStub(t, func(w http.ResponseWriter, req calculateRequest) {
		got = req
		json.NewEncoder(w).Encode(calculateResponse{Success: true, Data: &Result{Multiplier: 1}})
	})
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), &Location{Latitude: 19.0760, Longitude: 72.8777})
	require.NoError(t, err)

	assert.Equal(t, 19.0760, got.Latitude)
	assert.Equal(t, 72.8777, got.Longitude)
}

func TestCalculate_EmptyDishList(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second, time.Second)

	_, err := client.Calculate(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindOther, KindOf(err))
}

func TestCalculate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), nil)
	require.Error(t, err)
	assert.Equal(t, KindUnreachable, KindOf(err))
}

func TestCalculate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), nil)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestCalculate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), nil)
	require.Error(t, err)
	assert.Equal(t, KindBadResponse, KindOf(err))
}

func TestCalculate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), nil)
	require.Error(t, err)
	assert.Equal(t, KindBadResponse, KindOf(err))
}

func TestCalculate_FailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(calculateResponse{Success: false, Message: "weather feed offline"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Second)
	_, err := client.Calculate(context.Background(), testDishes(), nil)
	require.Error(t, err)
	assert.Equal(t, KindBadResponse, KindOf(err))
	assert.Contains(t, err.Error(), "weather feed offline")
}

func TestCalculate_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, time.Second)
	ctx := context.Background()

	// Default gobreaker settings trip after five consecutive failures.
	for i := 0; i < 6; i++ {
		_, err := client.Calculate(ctx, testDishes(), nil)
		require.Error(t, err)
	}

	_, err := client.Calculate(ctx, testDishes(), nil)
	require.Error(t, err)
	assert.Equal(t, KindUnreachable, KindOf(err))
}

func TestHealth_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pricing/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Pricing service is running"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Second)
	status := client.Health(context.Background())

	assert.True(t, status.Available)
	assert.Equal(t, "ok", status.Status)
}

func TestHealth_Down(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, time.Second)
	status := client.Health(context.Background())

	assert.False(t, status.Available)
	assert.NotEmpty(t, status.Message)
}

func TestHealth_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Second)
	status := client.Health(context.Background())

	assert.False(t, status.Available)
	assert.Equal(t, "degraded", status.Status)
}

func TestHealth_CancelledCallerDoesNotFailProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status := client.Health(ctx)
	assert.True(t, status.Available)
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindOther, KindOf(context.Canceled))
}
