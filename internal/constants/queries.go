package constants

// Read queries run through sqlx with "?" bindvars; callers Rebind for the
// active driver (sqlite or postgres).
const (
	GetRecentFlights = `
	SELECT fs.id, fs.callsign, fs.departure_airport, fs.arrival_airport,
	       fs.departure_time, fs.arrival_time, fs.duration_minutes,
	       fs.max_altitude, fs.max_speed, fs.distance_km,
	       fs.first_seen, fs.last_seen,
	       a.registration, a.icao24
	FROM flight_sessions fs
	JOIN aircraft a ON fs.aircraft_id = a.id
	WHERE fs.last_seen >= ?
	ORDER BY fs.departure_time DESC
	`

	GetAircraftFlightHistory = `
	SELECT fs.id, fs.callsign, fs.departure_airport, fs.arrival_airport,
	       fs.departure_time, fs.arrival_time, fs.duration_minutes,
	       fs.max_altitude, fs.max_speed, fs.distance_km,
	       fs.first_seen, fs.last_seen,
	       a.registration, a.icao24
	FROM flight_sessions fs
	JOIN aircraft a ON fs.aircraft_id = a.id
	WHERE a.registration = ? AND fs.last_seen >= ?
	ORDER BY fs.departure_time DESC
	`

	GetAircraftFlightStats = `
	SELECT COUNT(*) AS total_flights,
	       COALESCE(SUM(fs.duration_minutes), 0) AS total_minutes
	FROM flight_sessions fs
	JOIN aircraft a ON fs.aircraft_id = a.id
	WHERE a.registration = ? AND fs.last_seen >= ?
	`
)
