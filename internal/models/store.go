package models

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
)

// ErrZoneNotFound is returned when no live zone row matches the requested
// identifier.
var ErrZoneNotFound = errors.New("zone not found")

// ZoneStore wraps the zones table with the operations the gateway and the
// scheduling service need. Deleted zones are retained as tombstones and
// excluded from every read.
type ZoneStore struct {
	db *gorm.DB
}

// NewZoneStore creates a ZoneStore backed by db.
func NewZoneStore(db *gorm.DB) *ZoneStore {
	return &ZoneStore{db: db}
}

// Create persists a new zone record. The record's UUID is assigned in
// BeforeCreate when absent.
func (s *ZoneStore) Create(ctx context.Context, record *ZoneRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return irrigoerrors.WrapError(err, "failed to create zone")
	}
	return nil
}

// ZoneByID loads a live zone by identifier.
func (s *ZoneStore) ZoneByID(ctx context.Context, id string) (*ZoneRecord, error) {
	var record ZoneRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to load zone")
	}
	return &record, nil
}

// ZonesByUser lists a user's live zones, oldest first.
func (s *ZoneStore) ZonesByUser(ctx context.Context, userID string) ([]ZoneRecord, error) {
	var records []ZoneRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to list zones")
	}
	return records, nil
}

// Update saves the full record.
func (s *ZoneStore) Update(ctx context.Context, record *ZoneRecord) error {
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return irrigoerrors.WrapError(err, "failed to update zone")
	}
	return nil
}

// Delete tombstones a zone. Deleting an already-deleted or unknown zone
// returns ErrZoneNotFound.
func (s *ZoneStore) Delete(ctx context.Context, id string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&ZoneRecord{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if result.Error != nil {
		return irrigoerrors.WrapError(result.Error, "failed to delete zone")
	}
	if result.RowsAffected == 0 {
		return ErrZoneNotFound
	}
	return nil
}

// CatalogStore queries the catalogue override tables. A missing row is not
// an error: it returns (nil, nil) so callers can fall back to built-ins.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a CatalogStore backed by db.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// GrassOverride loads the grass override row for id, if any.
func (s *CatalogStore) GrassOverride(ctx context.Context, id string) (*GrassCatalogOverride, error) {
	var override GrassCatalogOverride
	err := s.db.WithContext(ctx).First(&override, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to query grass override")
	}
	return &override, nil
}

// SoilOverride loads the soil override row for id, if any.
func (s *CatalogStore) SoilOverride(ctx context.Context, id string) (*SoilCatalogOverride, error) {
	var override SoilCatalogOverride
	err := s.db.WithContext(ctx).First(&override, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to query soil override")
	}
	return &override, nil
}
