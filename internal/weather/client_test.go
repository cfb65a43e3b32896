package weather_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/internal/weather"
	"github.com/chrisharrington/irrigo/pkg/types"
)

func TestForecastFetchesAndConvertsDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		et0 := 3.2
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"days": []map[string]interface{}{
				{"date": time.Now().Format(time.RFC3339), "et0MmPerDay": et0},
			},
		})
	}))
	defer server.Close()

	cfg := &types.WeatherConfig{
		BaseURL:                   server.URL,
		Timeout:                   2 * time.Second,
		CacheTTL:                  time.Minute,
		CircuitBreakerMaxRequests: 3,
		CircuitBreakerInterval:    time.Minute,
		CircuitBreakerTimeout:     time.Minute,
	}

	client := weather.NewClient(cfg, nil)

	days, cached, err := client.Forecast(context.Background(), scheduler.Location{LatitudeDeg: 40, LongitudeDeg: -74}, 1)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, days, 1)
	require.NotNil(t, days[0].ET0MmPerDay)
	assert.InDelta(t, 3.2, *days[0].ET0MmPerDay, 1e-9)
}

func TestForecastUpstreamErrorWrapsErrUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &types.WeatherConfig{
		BaseURL:                   server.URL,
		Timeout:                   2 * time.Second,
		CircuitBreakerMaxRequests: 3,
		CircuitBreakerInterval:    time.Minute,
		CircuitBreakerTimeout:     time.Minute,
	}

	client := weather.NewClient(cfg, nil)

	_, _, err := client.Forecast(context.Background(), scheduler.Location{}, 1)
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}
