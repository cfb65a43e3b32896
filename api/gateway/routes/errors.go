// Package routes implements the HTTP route handlers for the irrigo API
// gateway. Handlers stay thin: decode, validate, delegate to a collaborator,
// encode. All domain decisions live behind the interfaces they accept.
package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/chrisharrington/irrigo/internal/catalog"
	"github.com/chrisharrington/irrigo/internal/models"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/internal/weather"
	"github.com/chrisharrington/irrigo/pkg/constants"
	"github.com/chrisharrington/irrigo/pkg/types"
)

// errorResponse is the uniform JSON error body for every gateway failure.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps a collaborator error onto an HTTP status and the
// uniform error body. Unknown errors become opaque 500s; the cause is the
// caller's to log.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := irrigoerrors.Code(err)
	message := "internal server error"

	var validationErr *types.ValidationError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		code = constants.ErrValidation
		message = validationErr.Error()
	case errors.Is(err, models.ErrZoneNotFound), errors.Is(err, catalog.ErrCatalogNotFound):
		status = http.StatusNotFound
		code = constants.ErrNotFound
		message = err.Error()
	case errors.Is(err, scheduler.ErrInvalidZone):
		status = http.StatusBadRequest
		code = constants.ErrInvalidZone
		message = err.Error()
	case errors.Is(err, weather.ErrUnavailable):
		status = http.StatusServiceUnavailable
		code = constants.ErrWeatherUnavailable
		message = "weather provider unavailable"
	case code == constants.ErrValidation || code == constants.ErrInvalidInput:
		status = http.StatusBadRequest
		message = err.Error()
	case code == constants.ErrWeatherUnavailable:
		status = http.StatusServiceUnavailable
		message = err.Error()
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Code: code, Message: message})
}
