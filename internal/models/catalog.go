package models

import "time"

// GrassCatalogOverride lets an operator add or override a GrassProfile
// beyond the in-memory default table internal/catalog ships with.
type GrassCatalogOverride struct {
	ID   string  `gorm:"type:varchar(60);primary_key"`
	Name string  `gorm:"type:varchar(120);not null"`
	Kc   float64 `gorm:"type:decimal(4,3);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the grass override table.
func (GrassCatalogOverride) TableName() string {
	return "grass_catalog_overrides"
}

// SoilCatalogOverride lets an operator add or override a SoilProfile beyond
// the in-memory default table.
type SoilCatalogOverride struct {
	ID                  string  `gorm:"type:varchar(60);primary_key"`
	Name                string  `gorm:"type:varchar(120);not null"`
	AWHCMmPerM          float64 `gorm:"type:decimal(6,2);not null"`
	InfiltrationMmPerHr float64 `gorm:"type:decimal(6,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the soil override table.
func (SoilCatalogOverride) TableName() string {
	return "soil_catalog_overrides"
}
