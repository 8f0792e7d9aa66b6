package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ffc/aircraft-tracker/internal/constants"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/models/dtos"
)

// stateFieldCount is the minimum tuple length carrying every field this
// tracker reads (vertical rate sits at index 11).
const stateFieldCount = 12

// Positional indexes of the /states/all tuple. The upstream API publishes
// these positions as its contract.
const (
	stateIdxICAO24       = 0
	stateIdxCallsign     = 1
	stateIdxLastContact  = 4
	stateIdxLongitude    = 5
	stateIdxLatitude     = 6
	stateIdxAltitude     = 7
	stateIdxOnGround     = 8
	stateIdxVelocity     = 9
	stateIdxHeading      = 10
	stateIdxVerticalRate = 11
)

// StatesProvider polls the unauthenticated OpenSky current-states endpoint
type StatesProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewStatesProvider creates a provider for the /states/all endpoint
func NewStatesProvider(baseURL string, timeout time.Duration) *StatesProvider {
	return &StatesProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// FetchStates fetches all current states and filters them to the requested
// icao24 set (case-insensitive). An empty slice with a nil error means no
// tracked aircraft is transmitting; a non-nil error means the fetch itself
// failed and the caller must not treat the result as "all on the ground".
func (p *StatesProvider) FetchStates(ctx context.Context, icao24Set []string) ([]dtos.StateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/states/all", nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create states request",
			Err:     err,
		}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("States request returned HTTP %d", resp.StatusCode),
		}
	}

	var payload struct {
		Time   int64           `json:"time"`
		States [][]interface{} `json:"states"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode states response",
			Err:     err,
		}
	}
	if payload.States == nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "States response has no states field",
		}
	}

	wanted := make(map[string]bool, len(icao24Set))
	for _, icao := range icao24Set {
		wanted[strings.ToLower(icao)] = true
	}

	now := time.Now().Unix()
	snapshots := make([]dtos.StateSnapshot, 0, len(icao24Set))
	for _, tuple := range payload.States {
		icao, ok := tupleString(tuple, stateIdxICAO24)
		if !ok || icao == nil || !wanted[strings.ToLower(*icao)] {
			continue
		}
		snapshot, err := decodeStateTuple(tuple, now)
		if err != nil {
			logging.Warn("Skipping malformed state tuple", "icao24", *icao, "error", err.Error())
			continue
		}
		snapshots = append(snapshots, *snapshot)
	}

	return snapshots, nil
}

// decodeStateTuple converts one positional state tuple into a named
// snapshot. Null numerics are preserved as nil, never coerced to zero.
func decodeStateTuple(tuple []interface{}, now int64) (*dtos.StateSnapshot, error) {
	if len(tuple) < stateFieldCount {
		return nil, fmt.Errorf("state tuple has %d fields, want at least %d", len(tuple), stateFieldCount)
	}

	icao, ok := tupleString(tuple, stateIdxICAO24)
	if !ok || icao == nil {
		return nil, fmt.Errorf("state tuple has no icao24")
	}

	snapshot := &dtos.StateSnapshot{
		ICAO24:       strings.ToLower(*icao),
		Longitude:    tupleFloat(tuple, stateIdxLongitude),
		Latitude:     tupleFloat(tuple, stateIdxLatitude),
		Altitude:     tupleFloat(tuple, stateIdxAltitude),
		Velocity:     tupleFloat(tuple, stateIdxVelocity),
		Heading:      tupleFloat(tuple, stateIdxHeading),
		VerticalRate: tupleFloat(tuple, stateIdxVerticalRate),
		Timestamp:    now,
	}

	if callsign, ok := tupleString(tuple, stateIdxCallsign); ok && callsign != nil {
		trimmed := strings.TrimSpace(*callsign)
		if trimmed != "" {
			snapshot.Callsign = &trimmed
		}
	}
	if onGround, ok := tuple[stateIdxOnGround].(bool); ok {
		snapshot.OnGround = onGround
	}
	if lastContact := tupleFloat(tuple, stateIdxLastContact); lastContact != nil {
		snapshot.LastContact = int64(*lastContact)
	}

	return snapshot, nil
}

// tupleString reads a string element; the bool reports whether the index
// exists and holds either a string or null.
func tupleString(tuple []interface{}, idx int) (*string, bool) {
	if idx >= len(tuple) {
		return nil, false
	}
	if tuple[idx] == nil {
		return nil, true
	}
	s, ok := tuple[idx].(string)
	if !ok {
		return nil, false
	}
	return &s, true
}

// tupleFloat reads a numeric element, returning nil for null or non-numeric
// values.
func tupleFloat(tuple []interface{}, idx int) *float64 {
	if idx >= len(tuple) {
		return nil
	}
	f, ok := tuple[idx].(float64)
	if !ok {
		return nil
	}
	return &f
}
