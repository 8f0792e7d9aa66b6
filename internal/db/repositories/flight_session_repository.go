package repositories

import (
	"context"
	"time"

	gormlib "gorm.io/gorm"

	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/models/dtos"
	"ffc/aircraft-tracker/internal/models/gorm"
)

// FlightSessionRepository persists completed flights with deduplication on
// (aircraft, first_seen, last_seen)
type FlightSessionRepository struct {
	db           *gormlib.DB
	aircraftRepo *AircraftRepository
}

// NewFlightSessionRepository creates a new flight session repository
func NewFlightSessionRepository(db *gormlib.DB, aircraftRepo *AircraftRepository) *FlightSessionRepository {
	return &FlightSessionRepository{db: db, aircraftRepo: aircraftRepo}
}

// Save persists one flight record. Re-saving an already-persisted flight
// returns the existing row id, so repeated poll cycles are idempotent.
// Records for untracked aircraft are dropped with a log line; the returned
// id is 0 in that case.
func (r *FlightSessionRepository) Save(ctx context.Context, record dtos.FlightRecord) (uint, error) {
	aircraft, err := r.aircraftRepo.FindByICAO24(ctx, record.ICAO24)
	if err != nil {
		return 0, err
	}
	if aircraft == nil {
		logging.Warn("Dropping flight session for untracked aircraft",
			"icao24", record.ICAO24)
		return 0, nil
	}

	session := gorm.FlightSession{
		AircraftID:       aircraft.ID,
		Callsign:         record.Callsign,
		DepartureAirport: record.EstDepartureAirport,
		ArrivalAirport:   record.EstArrivalAirport,
		DepartureTime:    record.FirstSeen,
		ArrivalTime:      record.LastSeen,
		DurationMinutes:  record.DurationMinutes,
		MaxAltitude:      record.MaxAltitude,
		MaxSpeed:         record.MaxSpeed,
		DistanceKm:       record.DistanceKm,
		FirstSeen:        record.FirstSeen,
		LastSeen:         record.LastSeen,
	}

	err = r.db.WithContext(ctx).
		Where("aircraft_id = ? AND first_seen = ? AND last_seen = ?",
			aircraft.ID, record.FirstSeen, record.LastSeen).
		FirstOrCreate(&session).Error
	if err != nil {
		return 0, err
	}

	return session.ID, nil
}

// CleanupExpired deletes sessions whose last_seen is strictly older than
// the retention cutoff and returns the number removed.
func (r *FlightSessionRepository) CleanupExpired(ctx context.Context, retentionHours int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(retentionHours) * time.Hour).Unix()

	result := r.db.WithContext(ctx).
		Where("last_seen < ?", cutoff).
		Delete(&gorm.FlightSession{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
