package gorm

import "time"

// FlightSession is one completed flight persisted from the history API.
// (aircraft_id, first_seen, last_seen) is the dedup key: re-saving the same
// observed flight is a no-op.
type FlightSession struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement"`
	AircraftID       uint      `gorm:"column:aircraft_id;not null;index:idx_flight_sessions_dedup,unique"`
	Callsign         *string   `gorm:"column:callsign;type:varchar(10)"`
	DepartureAirport *string   `gorm:"column:departure_airport;type:varchar(8)"`
	ArrivalAirport   *string   `gorm:"column:arrival_airport;type:varchar(8)"`
	DepartureTime    int64     `gorm:"column:departure_time;index"`
	ArrivalTime      int64     `gorm:"column:arrival_time"`
	DurationMinutes  int64     `gorm:"column:duration_minutes"`
	MaxAltitude      *int64    `gorm:"column:max_altitude"`
	MaxSpeed         *int64    `gorm:"column:max_speed"`
	DistanceKm       *float64  `gorm:"column:distance_km"`
	FirstSeen        int64     `gorm:"column:first_seen;index:idx_flight_sessions_dedup,unique"`
	LastSeen         int64     `gorm:"column:last_seen;index:idx_flight_sessions_dedup,unique;index"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (FlightSession) TableName() string {
	return "flight_sessions"
}
