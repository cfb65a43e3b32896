// Package models provides the GORM-backed persistence models for zone
// configuration and catalog overrides. Past-irrigation/outcome history is
// explicitly out of scope; these models persist only the configuration a
// caller would otherwise have to resupply on every PlanZoneSchedule call.
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidUserID is returned by BeforeCreate when a zone is persisted
// without an owning account.
var ErrInvalidUserID = errors.New("invalid user ID")

// ZoneRecord is the persisted form of a scheduler.Zone, plus ownership and
// audit columns the pure kernel has no concept of.
type ZoneRecord struct {
	ID     string `gorm:"type:uuid;primary_key"`
	UserID string `gorm:"type:uuid;not null;index"`
	Label  string `gorm:"type:varchar(120);not null"`

	IsEnabled bool `gorm:"not null;default:true"`

	RootDepthM                 float64 `gorm:"type:decimal(6,3);not null"`
	AllowableDepletionFraction float64 `gorm:"type:decimal(4,3);not null"`
	IrrigationEfficiency       float64 `gorm:"type:decimal(4,3);not null"`

	FlowRateLPerMin          float64  `gorm:"type:decimal(8,2);not null"`
	AreaM2                   float64  `gorm:"type:decimal(10,2);not null"`
	PrecipitationRateMmPerHr *float64 `gorm:"type:decimal(6,2)"`

	CurrentDepletionMm float64 `gorm:"type:decimal(6,2);not null;default:0"`

	GrassID string `gorm:"type:varchar(60);not null"`
	SoilID  string `gorm:"type:varchar(60);not null"`

	LatitudeDeg  *float64 `gorm:"type:decimal(9,6)"`
	LongitudeDeg *float64 `gorm:"type:decimal(9,6)"`

	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	DeletedAt *time.Time `gorm:"index"`
}

// BeforeCreate assigns a UUID when absent and enforces ownership.
func (z *ZoneRecord) BeforeCreate(tx *gorm.DB) error {
	if z.ID == "" {
		z.ID = uuid.New().String()
	}
	if z.UserID == "" {
		return ErrInvalidUserID
	}
	return nil
}

// TableName specifies the zone configuration table.
func (ZoneRecord) TableName() string {
	return "zones"
}
