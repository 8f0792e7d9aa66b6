package repositories

import (
	"context"
	"time"

	gormlib "gorm.io/gorm"

	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/models/dtos"
	"ffc/aircraft-tracker/internal/models/gorm"
)

// StatusHistoryRepository persists live-status snapshots
type StatusHistoryRepository struct {
	db           *gormlib.DB
	aircraftRepo *AircraftRepository
}

// NewStatusHistoryRepository creates a new status history repository
func NewStatusHistoryRepository(db *gormlib.DB, aircraftRepo *AircraftRepository) *StatusHistoryRepository {
	return &StatusHistoryRepository{db: db, aircraftRepo: aircraftRepo}
}

// SaveBatch inserts one StatusHistory row per snapshot. Snapshots whose
// icao24 is not in the tracked set are skipped and logged; one bad snapshot
// never aborts the batch. Returns the number of rows written.
func (r *StatusHistoryRepository) SaveBatch(ctx context.Context, snapshots []dtos.StateSnapshot) (int, error) {
	saved := 0

	for _, snapshot := range snapshots {
		aircraft, err := r.aircraftRepo.FindByICAO24(ctx, snapshot.ICAO24)
		if err != nil {
			logging.Warn("Could not look up aircraft for status snapshot",
				"icao24", snapshot.ICAO24, "error", err.Error())
			continue
		}
		if aircraft == nil {
			logging.Warn("Dropping status snapshot for untracked aircraft",
				"icao24", snapshot.ICAO24)
			continue
		}

		timestamp := snapshot.LastContact
		if timestamp == 0 {
			timestamp = time.Now().Unix()
		}

		row := gorm.StatusHistory{
			AircraftID: aircraft.ID,
			Timestamp:  timestamp,
			Latitude:   snapshot.Latitude,
			Longitude:  snapshot.Longitude,
			Altitude:   snapshot.Altitude,
			Velocity:   snapshot.Velocity,
			Heading:    snapshot.Heading,
			OnGround:   snapshot.OnGround,
			Callsign:   snapshot.Callsign,
		}

		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			logging.Warn("Could not save status snapshot",
				"icao24", snapshot.ICAO24, "error", err.Error())
			continue
		}
		saved++
	}

	return saved, nil
}

// CleanupExpired deletes rows whose timestamp is strictly older than the
// retention cutoff and returns the number removed. Rows inserted during the
// cleanup are never eligible.
func (r *StatusHistoryRepository) CleanupExpired(ctx context.Context, retentionHours int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(retentionHours) * time.Hour).Unix()

	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&gorm.StatusHistory{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
