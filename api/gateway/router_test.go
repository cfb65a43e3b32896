package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisharrington/irrigo/api/gateway"
	"github.com/chrisharrington/irrigo/api/gateway/routes"
	"github.com/chrisharrington/irrigo/internal/catalog"
	"github.com/chrisharrington/irrigo/internal/models"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/pkg/dto"
	"github.com/chrisharrington/irrigo/pkg/types"
)

// memoryZoneStore is an in-memory ZoneRepository/ZoneLoader so the full
// router can run without Postgres.
type memoryZoneStore struct {
	mu    sync.Mutex
	seq   int
	zones map[string]*models.ZoneRecord
}

func newMemoryZoneStore() *memoryZoneStore {
	return &memoryZoneStore{zones: map[string]*models.ZoneRecord{}}
}

func (s *memoryZoneStore) Create(ctx context.Context, record *models.ZoneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	record.ID = fmt.Sprintf("zone-%d", s.seq)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	clone := *record
	s.zones[record.ID] = &clone
	return nil
}

func (s *memoryZoneStore) ZoneByID(ctx context.Context, id string) (*models.ZoneRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.zones[id]
	if !ok {
		return nil, models.ErrZoneNotFound
	}
	clone := *record
	return &clone, nil
}

func (s *memoryZoneStore) ZonesByUser(ctx context.Context, userID string) ([]models.ZoneRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ZoneRecord
	for _, record := range s.zones {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (s *memoryZoneStore) Update(ctx context.Context, record *models.ZoneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.UpdatedAt = time.Now()
	clone := *record
	s.zones[record.ID] = &clone
	return nil
}

func (s *memoryZoneStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[id]; !ok {
		return models.ErrZoneNotFound
	}
	delete(s.zones, id)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memoryZoneStore) {
	t.Helper()

	store := newMemoryZoneStore()
	svc, err := scheduler.NewZoneSchedulerService(store, catalog.NewService(nil), nil, nil, nil)
	require.NoError(t, err)

	cfg := &types.ServiceConfig{
		ServiceName: "irrigo-scheduler",
		Version:     "1.0.0",
		API: &types.APIConfig{
			EnableCORS:    false,
			EnableMetrics: false,
		},
	}

	router := gateway.NewRouter(gateway.Deps{
		Config:    cfg,
		Store:     store,
		Scheduler: svc,
		Health: routes.HealthDeps{
			ServiceName: cfg.ServiceName,
			Version:     cfg.Version,
		},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createZoneRequest() dto.CreateZoneRequest {
	precip := 9.0
	return dto.CreateZoneRequest{
		Label:                      "Front lawn",
		RootDepthM:                 0.3,
		AllowableDepletionFraction: 0.5,
		IrrigationEfficiency:       0.8,
		FlowRateLPerMin:            15,
		AreaM2:                     100,
		PrecipitationRateMmPerHr:   &precip,
		GrassID:                    "fescue",
		SoilID:                     "sandy-loam",
	}
}

func TestGreetingEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "irrigo-scheduler", body["service"])
	assert.Equal(t, "ok", body["status"])
}

func TestHealthProbes(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestZoneCRUD(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/zones", createZoneRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ZoneResponse
	decodeJSON(t, resp, &created)
	assert.True(t, created.IsEnabled)
	require.NotEmpty(t, created.ID)

	getResp, err := http.Get(server.URL + "/api/v1/zones/" + created.ID)
	require.NoError(t, err)
	var fetched dto.ZoneResponse
	decodeJSON(t, getResp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Front lawn", fetched.Label)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/zones/"+created.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	missing, err := http.Get(server.URL + "/api/v1/zones/" + created.ID)
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestCreateZoneRejectsBadConfiguration(t *testing.T) {
	server, _ := newTestServer(t)

	req := createZoneRequest()
	req.AllowableDepletionFraction = 1.5

	resp := postJSON(t, server.URL+"/api/v1/zones", req)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScheduleEndpointRoundTripsKernelRounding(t *testing.T) {
	server, store := newTestServer(t)

	// Loam (AWHC 150 mm/m) gives TAW 45 mm, so the 33.375 mm gross depth is
	// not capped and exercises the one-decimal rounding.
	zoneReq := createZoneRequest()
	zoneReq.SoilID = "loam"
	resp := postJSON(t, server.URL+"/api/v1/zones", zoneReq)
	var created dto.ZoneResponse
	decodeJSON(t, resp, &created)

	// Seed the starting depletion the way an operator would: via update.
	record, err := store.ZoneByID(context.Background(), created.ID)
	require.NoError(t, err)
	record.CurrentDepletionMm = 25
	require.NoError(t, store.Update(context.Background(), record))

	et0 := 2.0
	days := make([]dto.DailyWeatherDTO, 7)
	for i := range days {
		days[i] = dto.DailyWeatherDTO{
			Date:        time.Date(2026, time.June, 1+i, 0, 0, 0, 0, time.UTC),
			ET0MmPerDay: &et0,
		}
	}

	scheduleResp := postJSON(t, server.URL+"/api/v1/zones/"+created.ID+"/schedule", dto.ScheduleRequest{Weather: days})
	require.Equal(t, http.StatusOK, scheduleResp.StatusCode)

	var schedule dto.ScheduleResponse
	decodeJSON(t, scheduleResp, &schedule)

	require.NotEmpty(t, schedule.Entries)
	entry := schedule.Entries[0]
	assert.Equal(t, 26.7, entry.DepletionBeforeMm)
	assert.Equal(t, 33.4, entry.AppliedDepthMm)
	assert.Zero(t, entry.DepletionAfterMm)
	require.NotEmpty(t, entry.Cycles)
}

func TestScheduleUnknownZoneReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/zones/nope/schedule", dto.ScheduleRequest{
		Weather: []dto.DailyWeatherDTO{{Date: time.Now()}},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestScheduleDisabledZoneIsEmpty(t *testing.T) {
	server, store := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/v1/zones", createZoneRequest())
	var created dto.ZoneResponse
	decodeJSON(t, resp, &created)

	record, err := store.ZoneByID(context.Background(), created.ID)
	require.NoError(t, err)
	record.IsEnabled = false
	record.CurrentDepletionMm = 40
	require.NoError(t, store.Update(context.Background(), record))

	et0 := 6.0
	scheduleResp := postJSON(t, server.URL+"/api/v1/zones/"+created.ID+"/schedule", dto.ScheduleRequest{
		Weather: []dto.DailyWeatherDTO{{Date: time.Now(), ET0MmPerDay: &et0}},
	})
	require.Equal(t, http.StatusOK, scheduleResp.StatusCode)

	var schedule dto.ScheduleResponse
	decodeJSON(t, scheduleResp, &schedule)
	assert.Empty(t, schedule.Entries)
}
