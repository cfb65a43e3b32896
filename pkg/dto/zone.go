// Package dto holds the request/response shapes exposed by api/gateway,
// separate from both the pure scheduler.Zone and the persisted
// models.ZoneRecord.
package dto

import "time"

// CreateZoneRequest is the payload for registering a new irrigation zone.
type CreateZoneRequest struct {
	Label string `json:"label" validate:"required,min=1,max=120"`

	RootDepthM                 float64 `json:"rootDepthM" validate:"required,gt=0"`
	AllowableDepletionFraction float64 `json:"allowableDepletionFraction" validate:"required,gt=0,lte=1"`
	IrrigationEfficiency       float64 `json:"irrigationEfficiency" validate:"required,gt=0,lte=1"`

	FlowRateLPerMin          float64  `json:"flowRateLPerMin" validate:"gte=0"`
	AreaM2                   float64  `json:"areaM2" validate:"gte=0"`
	PrecipitationRateMmPerHr *float64 `json:"precipitationRateMmPerHr,omitempty" validate:"omitempty,gt=0"`

	GrassID string `json:"grassId" validate:"required"`
	SoilID  string `json:"soilId" validate:"required"`

	LatitudeDeg  *float64 `json:"latitudeDeg,omitempty" validate:"omitempty,gte=-90,lte=90"`
	LongitudeDeg *float64 `json:"longitudeDeg,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateZoneRequest is a partial update; every field is optional so a
// caller can toggle IsEnabled without resending the full configuration.
type UpdateZoneRequest struct {
	Label     *string `json:"label,omitempty" validate:"omitempty,min=1,max=120"`
	IsEnabled *bool   `json:"isEnabled,omitempty"`

	RootDepthM                 *float64 `json:"rootDepthM,omitempty" validate:"omitempty,gt=0"`
	AllowableDepletionFraction *float64 `json:"allowableDepletionFraction,omitempty" validate:"omitempty,gt=0,lte=1"`
	IrrigationEfficiency       *float64 `json:"irrigationEfficiency,omitempty" validate:"omitempty,gt=0,lte=1"`

	FlowRateLPerMin          *float64 `json:"flowRateLPerMin,omitempty" validate:"omitempty,gte=0"`
	AreaM2                   *float64 `json:"areaM2,omitempty" validate:"omitempty,gte=0"`
	PrecipitationRateMmPerHr *float64 `json:"precipitationRateMmPerHr,omitempty" validate:"omitempty,gt=0"`

	CurrentDepletionMm *float64 `json:"currentDepletionMm,omitempty"`

	GrassID *string `json:"grassId,omitempty"`
	SoilID  *string `json:"soilId,omitempty"`
}

// ZoneResponse is the API representation of a persisted zone.
type ZoneResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsEnabled bool   `json:"isEnabled"`

	RootDepthM                 float64 `json:"rootDepthM"`
	AllowableDepletionFraction float64 `json:"allowableDepletionFraction"`
	IrrigationEfficiency       float64 `json:"irrigationEfficiency"`

	FlowRateLPerMin          float64  `json:"flowRateLPerMin"`
	AreaM2                   float64  `json:"areaM2"`
	PrecipitationRateMmPerHr *float64 `json:"precipitationRateMmPerHr,omitempty"`

	CurrentDepletionMm float64 `json:"currentDepletionMm"`

	GrassID string `json:"grassId"`
	SoilID  string `json:"soilId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
