package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const statesFixture = `{
	"time": 1700000000,
	"states": [
		["a3581f", "N31401  ", "United States", 1699999998, 1699999999, -84.5211, 33.7756, 3500.0, false, 62.4, 181.2, 2.1, null, 3550.0, null, false, 0],
		["abc123", "DAL123  ", "United States", 1699999990, 1699999991, -80.1, 25.7, 10000.0, false, 240.0, 90.0, 0.0, null, 10100.0, null, false, 0],
		["a44c5e", null, "United States", 1699999980, 1699999981, null, null, null, true, null, null, null, null, null, null, false, 0]
	]
}`

func newTestStatesProvider(url string) *StatesProvider {
	return NewStatesProvider(url, 5*time.Second)
}

func TestStatesProvider_FiltersAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/states/all" {
			t.Errorf("Expected path /states/all, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(statesFixture))
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	snapshots, err := provider.FetchStates(context.Background(), []string{"a3581f", "a44c5e"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
	}

	first := snapshots[0]
	if first.ICAO24 != "a3581f" {
		t.Errorf("Expected icao24 a3581f, got %s", first.ICAO24)
	}
	if first.Callsign == nil || *first.Callsign != "N31401" {
		t.Errorf("Expected trimmed callsign N31401, got %v", first.Callsign)
	}
	if first.Altitude == nil || *first.Altitude != 3500.0 {
		t.Errorf("Expected altitude 3500, got %v", first.Altitude)
	}
	if first.OnGround {
		t.Error("Expected on_ground false")
	}
	if first.Latitude == nil || *first.Latitude != 33.7756 {
		t.Errorf("Expected latitude 33.7756, got %v", first.Latitude)
	}
	if first.LastContact != 1699999998 {
		t.Errorf("Expected last_contact 1699999998, got %d", first.LastContact)
	}
}

func TestStatesProvider_PreservesNullFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(statesFixture))
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	snapshots, err := provider.FetchStates(context.Background(), []string{"a44c5e"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(snapshots))
	}

	parked := snapshots[0]
	if !parked.OnGround {
		t.Error("Expected on_ground true")
	}
	// Null upstream values must stay nil, never become zero
	if parked.Altitude != nil {
		t.Errorf("Expected nil altitude, got %v", *parked.Altitude)
	}
	if parked.Velocity != nil {
		t.Errorf("Expected nil velocity, got %v", *parked.Velocity)
	}
	if parked.Callsign != nil {
		t.Errorf("Expected nil callsign, got %v", *parked.Callsign)
	}
}

func TestStatesProvider_CaseInsensitiveFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(statesFixture))
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	snapshots, err := provider.FetchStates(context.Background(), []string{"A3581F"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snapshots) != 1 || snapshots[0].ICAO24 != "a3581f" {
		t.Fatalf("Expected a3581f matched case-insensitively, got %v", snapshots)
	}
}

func TestStatesProvider_EmptyStatesIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"time": 1700000000, "states": []}`))
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	snapshots, err := provider.FetchStates(context.Background(), []string{"a3581f"})
	if err != nil {
		t.Fatalf("Expected no error for empty states, got %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("Expected 0 snapshots, got %d", len(snapshots))
	}
}

func TestStatesProvider_MissingStatesFieldIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"time": 1700000000}`))
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	if _, err := provider.FetchStates(context.Background(), []string{"a3581f"}); err == nil {
		t.Fatal("Expected error when states field is absent")
	} else if !IsFetchError(err) {
		t.Errorf("Expected fetch error, got %v", err)
	}
}

func TestStatesProvider_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	if _, err := provider.FetchStates(context.Background(), []string{"a3581f"}); err == nil {
		t.Fatal("Expected error for HTTP 429")
	}
}

func TestStatesProvider_SkipsShortTuples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"time": 1700000000, "states": [["a3581f", "N31401"]]}`))
	}))
	defer server.Close()

	provider := newTestStatesProvider(server.URL)
	snapshots, err := provider.FetchStates(context.Background(), []string{"a3581f"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("Expected malformed tuple to be skipped, got %d snapshots", len(snapshots))
	}
}
