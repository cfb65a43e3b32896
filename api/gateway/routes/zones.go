package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/chrisharrington/irrigo/api/gateway/middleware"
	"github.com/chrisharrington/irrigo/internal/models"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/internal/utils/logger"
	"github.com/chrisharrington/irrigo/internal/utils/validator"
	"github.com/chrisharrington/irrigo/pkg/constants"
	"github.com/chrisharrington/irrigo/pkg/dto"
)

// defaultHorizonDays is used when a schedule request names no horizon and
// supplies no inline weather window.
const defaultHorizonDays = 7

// ZoneRepository is the persistence surface the zone routes need.
// Implemented by models.ZoneStore.
type ZoneRepository interface {
	Create(ctx context.Context, record *models.ZoneRecord) error
	ZoneByID(ctx context.Context, id string) (*models.ZoneRecord, error)
	ZonesByUser(ctx context.Context, userID string) ([]models.ZoneRecord, error)
	Update(ctx context.Context, record *models.ZoneRecord) error
	Delete(ctx context.Context, id string) error
}

// SchedulePlanner computes a zone's irrigation schedule. Implemented by
// scheduler.ZoneSchedulerService.
type SchedulePlanner interface {
	ComputeSchedule(ctx context.Context, zoneID string, horizonDays int, inline []scheduler.DailyWeather) ([]scheduler.PlannedEntry, error)
}

// ZoneDeps bundles the collaborators behind the zone routes.
type ZoneDeps struct {
	Store     ZoneRepository
	Scheduler SchedulePlanner
	Validator *validator.CustomValidator
	Logger    *zap.Logger
}

// RegisterZoneRoutes mounts zone CRUD and schedule computation under
// /api/v1/zones.
func RegisterZoneRoutes(r chi.Router, deps ZoneDeps) {
	r.Route("/api/v1/zones", func(r chi.Router) {
		r.Post("/", deps.handleCreateZone)
		r.Get("/", deps.handleListZones)
		r.Get("/{id}", deps.handleGetZone)
		r.Put("/{id}", deps.handleUpdateZone)
		r.Delete("/{id}", deps.handleDeleteZone)
		r.Post("/{id}/schedule", deps.handleSchedule)
	})
}

func (d ZoneDeps) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, irrigoerrors.NewError(constants.ErrInvalidInput, "invalid request body"))
		return
	}
	if err := d.Validator.ValidateStruct(req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := validator.ValidateZoneBounds(req.RootDepthM, req.AllowableDepletionFraction, req.IrrigationEfficiency, req.PrecipitationRateMmPerHr, req.AreaM2); err != nil {
		respondError(w, r, err)
		return
	}

	record := &models.ZoneRecord{
		UserID:                     middleware.AccountID(r.Context()),
		Label:                      req.Label,
		IsEnabled:                  true,
		RootDepthM:                 req.RootDepthM,
		AllowableDepletionFraction: req.AllowableDepletionFraction,
		IrrigationEfficiency:       req.IrrigationEfficiency,
		FlowRateLPerMin:            req.FlowRateLPerMin,
		AreaM2:                     req.AreaM2,
		PrecipitationRateMmPerHr:   req.PrecipitationRateMmPerHr,
		GrassID:                    req.GrassID,
		SoilID:                     req.SoilID,
		LatitudeDeg:                req.LatitudeDeg,
		LongitudeDeg:               req.LongitudeDeg,
	}

	if err := d.Store.Create(r.Context(), record); err != nil {
		logger.Error(d.Logger, "zone creation failed", err)
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toZoneResponse(record))
}

func (d ZoneDeps) handleListZones(w http.ResponseWriter, r *http.Request) {
	records, err := d.Store.ZonesByUser(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		logger.Error(d.Logger, "zone listing failed", err)
		respondError(w, r, err)
		return
	}

	responses := make([]dto.ZoneResponse, len(records))
	for i := range records {
		responses[i] = toZoneResponse(&records[i])
	}
	render.JSON(w, r, responses)
}

func (d ZoneDeps) handleGetZone(w http.ResponseWriter, r *http.Request) {
	record, err := d.Store.ZoneByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, toZoneResponse(record))
}

func (d ZoneDeps) handleUpdateZone(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, irrigoerrors.NewError(constants.ErrInvalidInput, "invalid request body"))
		return
	}
	if err := d.Validator.ValidateStruct(req); err != nil {
		respondError(w, r, err)
		return
	}

	record, err := d.Store.ZoneByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	applyZoneUpdate(record, req)

	if err := validator.ValidateZoneBounds(record.RootDepthM, record.AllowableDepletionFraction, record.IrrigationEfficiency, record.PrecipitationRateMmPerHr, record.AreaM2); err != nil {
		respondError(w, r, err)
		return
	}

	if err := d.Store.Update(r.Context(), record); err != nil {
		logger.Error(d.Logger, "zone update failed", err, zap.String("zone_id", record.ID))
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, toZoneResponse(record))
}

func (d ZoneDeps) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := d.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (d ZoneDeps) handleSchedule(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "id")

	var req dto.ScheduleRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, irrigoerrors.NewError(constants.ErrInvalidInput, "invalid request body"))
			return
		}
	}
	if req.HorizonDays == 0 {
		req.HorizonDays = defaultHorizonDays
	}
	if req.HorizonDays < 0 || req.HorizonDays > 14 {
		respondError(w, r, irrigoerrors.NewError(constants.ErrInvalidInput, "horizonDays must be between 1 and 14"))
		return
	}

	planned, err := d.Scheduler.ComputeSchedule(r.Context(), zoneID, req.HorizonDays, toKernelWeather(req.Weather))
	if err != nil {
		logger.Error(d.Logger, "schedule computation failed", err, zap.String("zone_id", zoneID))
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, toScheduleResponse(zoneID, planned))
}

func applyZoneUpdate(record *models.ZoneRecord, req dto.UpdateZoneRequest) {
	if req.Label != nil {
		record.Label = *req.Label
	}
	if req.IsEnabled != nil {
		record.IsEnabled = *req.IsEnabled
	}
	if req.RootDepthM != nil {
		record.RootDepthM = *req.RootDepthM
	}
	if req.AllowableDepletionFraction != nil {
		record.AllowableDepletionFraction = *req.AllowableDepletionFraction
	}
	if req.IrrigationEfficiency != nil {
		record.IrrigationEfficiency = *req.IrrigationEfficiency
	}
	if req.FlowRateLPerMin != nil {
		record.FlowRateLPerMin = *req.FlowRateLPerMin
	}
	if req.AreaM2 != nil {
		record.AreaM2 = *req.AreaM2
	}
	if req.PrecipitationRateMmPerHr != nil {
		record.PrecipitationRateMmPerHr = req.PrecipitationRateMmPerHr
	}
	if req.CurrentDepletionMm != nil {
		record.CurrentDepletionMm = *req.CurrentDepletionMm
	}
	if req.GrassID != nil {
		record.GrassID = *req.GrassID
	}
	if req.SoilID != nil {
		record.SoilID = *req.SoilID
	}
}
