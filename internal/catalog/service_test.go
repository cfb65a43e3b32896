package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisharrington/irrigo/internal/catalog"
	"github.com/chrisharrington/irrigo/internal/models"
)

// fakeOverrideStore is a map-backed catalog.OverrideStore.
type fakeOverrideStore struct {
	grasses map[string]*models.GrassCatalogOverride
	soils   map[string]*models.SoilCatalogOverride
	err     error
}

func (f *fakeOverrideStore) GrassOverride(ctx context.Context, id string) (*models.GrassCatalogOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grasses[id], nil
}

func (f *fakeOverrideStore) SoilOverride(ctx context.Context, id string) (*models.SoilCatalogOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.soils[id], nil
}

func TestGrassBuiltIn(t *testing.T) {
	svc := catalog.NewService(nil)

	profile, err := svc.Grass(context.Background(), "fescue")
	require.NoError(t, err)
	assert.Equal(t, 0.85, profile.Kc)
}

func TestGrassNotFound(t *testing.T) {
	svc := catalog.NewService(nil)

	_, err := svc.Grass(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestSoilBuiltIn(t *testing.T) {
	svc := catalog.NewService(nil)

	profile, err := svc.Soil(context.Background(), "clay")
	require.NoError(t, err)
	assert.Equal(t, 4.0, profile.InfiltrationMmPerHr)
}

func TestOverrideShadowsBuiltIn(t *testing.T) {
	store := &fakeOverrideStore{
		soils: map[string]*models.SoilCatalogOverride{
			"clay": {ID: "clay", Name: "Site Survey Clay", AWHCMmPerM: 185, InfiltrationMmPerHr: 3.5},
		},
	}
	svc := catalog.NewService(store)

	profile, err := svc.Soil(context.Background(), "clay")
	require.NoError(t, err)
	assert.Equal(t, "Site Survey Clay", profile.Name)
	assert.Equal(t, 3.5, profile.InfiltrationMmPerHr)

	// Identifiers without an override still resolve to the built-in table.
	fallback, err := svc.Soil(context.Background(), "loam")
	require.NoError(t, err)
	assert.Equal(t, "Loam", fallback.Name)
}

func TestOverrideAddsNewIdentifier(t *testing.T) {
	store := &fakeOverrideStore{
		grasses: map[string]*models.GrassCatalogOverride{
			"buffalo": {ID: "buffalo", Name: "Buffalograss", Kc: 0.70},
		},
	}
	svc := catalog.NewService(store)

	profile, err := svc.Grass(context.Background(), "buffalo")
	require.NoError(t, err)
	assert.Equal(t, 0.70, profile.Kc)
}

func TestOverrideStoreErrorSurfaces(t *testing.T) {
	store := &fakeOverrideStore{err: errors.New("connection reset")}
	svc := catalog.NewService(store)

	_, err := svc.Grass(context.Background(), "fescue")
	require.Error(t, err)
	assert.NotErrorIs(t, err, catalog.ErrCatalogNotFound)
}

func TestSoakMinutesForMatchesHydraulicsTable(t *testing.T) {
	assert.Equal(t, 15.0, catalog.SoakMinutesFor(25))
	assert.Equal(t, 60.0, catalog.SoakMinutesFor(1))
}
