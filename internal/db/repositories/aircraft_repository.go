package repositories

import (
	"context"
	"fmt"
	"strings"

	gormlib "gorm.io/gorm"

	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/models/gorm"
)

// AircraftRepository handles the tracked-aircraft master table
type AircraftRepository struct {
	db *gormlib.DB
}

// NewAircraftRepository creates a new aircraft repository
func NewAircraftRepository(db *gormlib.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// SeedTrackedAircraft inserts one row per tracked aircraft, ignoring rows
// that already exist. Idempotent across restarts; rows are never deleted.
func (r *AircraftRepository) SeedTrackedAircraft(ctx context.Context, fleet []config.TrackedAircraft) error {
	for _, tracked := range fleet {
		aircraft := gorm.Aircraft{
			Registration: tracked.Registration,
			ICAO24:       strings.ToLower(tracked.ICAO24),
			Description:  fmt.Sprintf("FFC Training Aircraft %s", tracked.Registration),
			IsActive:     true,
		}

		err := r.db.WithContext(ctx).
			Where("registration = ? AND icao24 = ?", aircraft.Registration, aircraft.ICAO24).
			FirstOrCreate(&aircraft).Error
		if err != nil {
			return fmt.Errorf("failed to seed aircraft %s: %w", tracked.Registration, err)
		}
	}

	logging.Info("Tracked aircraft seeded", "count", len(fleet))
	return nil
}

// FindByICAO24 looks up an aircraft by its lowercase hex identifier.
// Returns (nil, nil) when the icao24 is not in the tracked set.
func (r *AircraftRepository) FindByICAO24(ctx context.Context, icao24 string) (*gorm.Aircraft, error) {
	var aircraft gorm.Aircraft

	err := r.db.WithContext(ctx).
		Where("icao24 = ?", strings.ToLower(icao24)).
		First(&aircraft).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &aircraft, nil
}

// ListActive returns all active tracked aircraft
func (r *AircraftRepository) ListActive(ctx context.Context) ([]gorm.Aircraft, error) {
	var fleet []gorm.Aircraft

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&fleet).Error
	if err != nil {
		return nil, err
	}

	return fleet, nil
}
