package dtos

// StateSnapshot is one decoded entry from the OpenSky /states/all response.
// Numeric fields stay nil when the upstream value is null; a missing
// altitude is not ground level.
type StateSnapshot struct {
	ICAO24       string   `json:"icao24"`
	Callsign     *string  `json:"callsign"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Altitude     *float64 `json:"altitude"`
	Velocity     *float64 `json:"velocity"`
	Heading      *float64 `json:"heading"`
	VerticalRate *float64 `json:"vertical_rate"`
	OnGround     bool     `json:"on_ground"`
	LastContact  int64    `json:"last_contact"`
	Timestamp    int64    `json:"timestamp"`
}

// FlightRecord is one completed flight from the OpenSky flight history API.
// MaxAltitude, MaxSpeed and DistanceKm are reserved for a future enrichment
// step and stay nil here.
type FlightRecord struct {
	ICAO24              string   `json:"icao24"`
	Callsign            *string  `json:"callsign"`
	EstDepartureAirport *string  `json:"estDepartureAirport"`
	EstArrivalAirport   *string  `json:"estArrivalAirport"`
	FirstSeen           int64    `json:"firstSeen"`
	LastSeen            int64    `json:"lastSeen"`
	DurationMinutes     int64    `json:"durationMinutes"`
	MaxAltitude         *int64   `json:"maxAltitude"`
	MaxSpeed            *int64   `json:"maxSpeed"`
	DistanceKm          *float64 `json:"distanceKm"`
}

// DurationSeconds derives the flight length from the seen interval.
func (f *FlightRecord) DurationSeconds() int64 {
	return f.LastSeen - f.FirstSeen
}

// AircraftComprehensive is the merged per-aircraft view: the live state (nil
// when the aircraft is not transmitting) plus its recent flight history.
type AircraftComprehensive struct {
	Registration  string         `json:"registration"`
	CurrentState  *StateSnapshot `json:"current_state"`
	FlightHistory []FlightRecord `json:"flight_history"`
}

// LiveDataResponse is the payload of GET /api/live/all.
type LiveDataResponse struct {
	Timestamp     int64           `json:"timestamp"`
	AircraftCount int             `json:"aircraft_count"`
	Aircraft      []StateSnapshot `json:"aircraft"`
}

// ComprehensiveResponse is the payload of GET /api/comprehensive/all.
type ComprehensiveResponse struct {
	Timestamp int64                            `json:"timestamp"`
	Data      map[string]AircraftComprehensive `json:"data"`
}

// RegistrationHistoryResponse is the payload of GET /api/history/{registration}.
type RegistrationHistoryResponse struct {
	Registration  string         `json:"registration"`
	ICAO24        string         `json:"icao24"`
	FlightHistory []FlightRecord `json:"flight_history"`
	FlightCount   int            `json:"flight_count"`
}
