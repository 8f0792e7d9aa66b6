package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"ffc/aircraft-tracker/internal/common"
	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/models/dtos"
	"ffc/aircraft-tracker/internal/providers"
	"ffc/aircraft-tracker/internal/services"
)

type fakeStates struct {
	snapshots []dtos.StateSnapshot
	err       error
}

func (f *fakeStates) FetchStates(ctx context.Context, icao24Set []string) ([]dtos.StateSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshots, nil
}

type fakeFlights struct {
	records []dtos.FlightRecord
	err     error
}

func (f *fakeFlights) FetchHistory(ctx context.Context, icao24 string, windowHours int) ([]dtos.FlightRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newTestRouter(states *fakeStates, flights *fakeFlights) http.Handler {
	cfg := &config.Config{
		Aircraft: []config.TrackedAircraft{
			{Registration: "N31401", ICAO24: "a3581f"},
		},
		HistoryHours: 48,
	}
	tracker := services.NewTrackerService(cfg, states, flights, nil, nil, common.NewCacheService(300, 600), nil)
	handlers := NewTrackerHandlers(tracker, nil)

	r := chi.NewRouter()
	r.Get("/api/live/all", handlers.GetLiveAll)
	r.Get("/api/history/{registration}", handlers.GetRegistrationHistory)
	return r
}

func TestGetLiveAll_Success(t *testing.T) {
	altitude := 3500.0
	router := newTestRouter(&fakeStates{snapshots: []dtos.StateSnapshot{
		{ICAO24: "a3581f", Altitude: &altitude},
	}}, &fakeFlights{})

	req := httptest.NewRequest("GET", "/api/live/all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
		Data   struct {
			AircraftCount int `json:"aircraft_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("Expected success status, got %q", body.Status)
	}
	if body.Data.AircraftCount != 1 {
		t.Errorf("Expected 1 aircraft, got %d", body.Data.AircraftCount)
	}
}

func TestGetLiveAll_UpstreamFailureIsBadGateway(t *testing.T) {
	router := newTestRouter(&fakeStates{err: &providers.ProviderError{
		Code:    "NETWORK_ERROR",
		Message: "upstream down",
	}}, &fakeFlights{})

	req := httptest.NewRequest("GET", "/api/live/all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}
}

func TestGetRegistrationHistory_UnknownIs404(t *testing.T) {
	router := newTestRouter(&fakeStates{}, &fakeFlights{})

	req := httptest.NewRequest("GET", "/api/history/N99999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetRegistrationHistory_Success(t *testing.T) {
	router := newTestRouter(&fakeStates{}, &fakeFlights{records: []dtos.FlightRecord{
		{ICAO24: "a3581f", FirstSeen: 1000, LastSeen: 4600, DurationMinutes: 60},
	}})

	req := httptest.NewRequest("GET", "/api/history/N31401", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data struct {
			Registration string `json:"registration"`
			FlightCount  int    `json:"flight_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Data.Registration != "N31401" || body.Data.FlightCount != 1 {
		t.Errorf("Expected N31401 with 1 flight, got %+v", body.Data)
	}
}
