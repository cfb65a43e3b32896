package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/chrisharrington/irrigo/internal/scheduler"
	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/constants"
	"github.com/chrisharrington/irrigo/pkg/dto"
)

const maxForecastDays = 14

// WeatherDeps bundles the forecast collaborator behind the weather routes.
type WeatherDeps struct {
	Forecasts scheduler.ForecastProvider
}

// RegisterWeatherRoutes mounts the forecast passthrough and the
// weather-client test probe under /api/v1/weather.
func RegisterWeatherRoutes(r chi.Router, deps WeatherDeps) {
	r.Route("/api/v1/weather", func(r chi.Router) {
		r.Get("/forecast", deps.handleForecast)
		r.Get("/test", deps.handleClientTest)
	})
}

func (d WeatherDeps) handleForecast(w http.ResponseWriter, r *http.Request) {
	loc, days, err := parseForecastQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	window, cached, err := d.Forecasts.Forecast(r.Context(), loc, days)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, dto.ForecastResponse{
		LatitudeDeg:  loc.LatitudeDeg,
		LongitudeDeg: loc.LongitudeDeg,
		Days:         toWeatherDTOs(window),
		Cached:       cached,
	})
}

// handleClientTest exercises the configured forecast provider with a
// one-day window so an operator can verify connectivity independently of
// any zone's schedule.
func (d WeatherDeps) handleClientTest(w http.ResponseWriter, r *http.Request) {
	loc, _, err := parseForecastQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	window, cached, err := d.Forecasts.Forecast(r.Context(), loc, 1)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "ok",
		"cached": cached,
		"sample": toWeatherDTOs(window),
	})
}

func parseForecastQuery(r *http.Request) (scheduler.Location, int, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return scheduler.Location{}, 0, irrigoerrors.NewError(constants.ErrInvalidInput, "lat must be a number in [-90, 90]")
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return scheduler.Location{}, 0, irrigoerrors.NewError(constants.ErrInvalidInput, "lon must be a number in [-180, 180]")
	}

	days := defaultHorizonDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 || days > maxForecastDays {
			return scheduler.Location{}, 0, irrigoerrors.NewError(constants.ErrInvalidInput, "days must be between 1 and 14")
		}
	}

	return scheduler.Location{LatitudeDeg: lat, LongitudeDeg: lon}, days, nil
}
