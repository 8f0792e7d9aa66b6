package entities

// FlightWithAircraft is a flight session row joined with its owning
// aircraft, as returned by the read queries.
type FlightWithAircraft struct {
	ID               uint      `db:"id" json:"id"`
	Callsign         *string   `db:"callsign" json:"callsign"`
	DepartureAirport *string   `db:"departure_airport" json:"departure_airport"`
	ArrivalAirport   *string   `db:"arrival_airport" json:"arrival_airport"`
	DepartureTime    int64     `db:"departure_time" json:"departure_time"`
	ArrivalTime      int64     `db:"arrival_time" json:"arrival_time"`
	DurationMinutes  int64     `db:"duration_minutes" json:"duration_minutes"`
	MaxAltitude      *int64    `db:"max_altitude" json:"max_altitude"`
	MaxSpeed         *int64    `db:"max_speed" json:"max_speed"`
	DistanceKm       *float64  `db:"distance_km" json:"distance_km"`
	FirstSeen        int64     `db:"first_seen" json:"first_seen"`
	LastSeen         int64     `db:"last_seen" json:"last_seen"`
	Registration     string    `db:"registration" json:"registration"`
	ICAO24           string    `db:"icao24" json:"icao24"`
}

// AircraftStats summarizes persisted flight sessions for one aircraft.
type AircraftStats struct {
	TotalFlights         int64   `db:"total_flights" json:"total_flights"`
	TotalFlightTimeMin   int64   `db:"total_minutes" json:"total_flight_time_minutes"`
	TotalFlightTimeHours float64 `db:"-" json:"total_flight_time_hours"`
}

// ServiceStatus reports one dependency's health
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse is the payload of GET /healthCheck
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}
