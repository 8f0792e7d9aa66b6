package repositories

import (
	"context"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"ffc/aircraft-tracker/internal/constants"
	"ffc/aircraft-tracker/internal/models/entities"
)

// FlightQueryRepository serves the read-only flight queries over sqlx.
// Queries use "?" bindvars and are rebound for the active driver.
type FlightQueryRepository struct {
	db *sqlx.DB
}

// NewFlightQueryRepository creates a new flight query repository
func NewFlightQueryRepository(db *sqlx.DB) *FlightQueryRepository {
	return &FlightQueryRepository{db: db}
}

// RecentFlights returns flights whose last_seen falls inside the window,
// ordered by departure time descending.
func (r *FlightQueryRepository) RecentFlights(ctx context.Context, hours int) ([]entities.FlightWithAircraft, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour).Unix()

	flights := []entities.FlightWithAircraft{}
	err := r.db.SelectContext(ctx, &flights,
		r.db.Rebind(constants.GetRecentFlights), cutoff)
	if err != nil {
		return nil, err
	}

	return flights, nil
}

// AircraftHistory returns one aircraft's flights inside the window, ordered
// by departure time descending.
func (r *FlightQueryRepository) AircraftHistory(ctx context.Context, registration string, hours int) ([]entities.FlightWithAircraft, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour).Unix()

	flights := []entities.FlightWithAircraft{}
	err := r.db.SelectContext(ctx, &flights,
		r.db.Rebind(constants.GetAircraftFlightHistory), registration, cutoff)
	if err != nil {
		return nil, err
	}

	return flights, nil
}

// AircraftStats returns flight count and summed duration over the last N
// days. Hours are rounded to one decimal.
func (r *FlightQueryRepository) AircraftStats(ctx context.Context, registration string, days int) (*entities.AircraftStats, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	var stats entities.AircraftStats
	err := r.db.GetContext(ctx, &stats,
		r.db.Rebind(constants.GetAircraftFlightStats), registration, cutoff)
	if err != nil {
		return nil, err
	}

	stats.TotalFlightTimeHours = math.Round(float64(stats.TotalFlightTimeMin)/60*10) / 10
	return &stats, nil
}
