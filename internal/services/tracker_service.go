package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ffc/aircraft-tracker/internal/common"
	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/constants"
	"ffc/aircraft-tracker/internal/db/repositories"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/metrics"
	"ffc/aircraft-tracker/internal/models/dtos"
	"ffc/aircraft-tracker/internal/providers"
)

// StatesFetcher is the current-state polling dependency
type StatesFetcher interface {
	FetchStates(ctx context.Context, icao24Set []string) ([]dtos.StateSnapshot, error)
}

// HistoryFetcher is the per-aircraft flight history dependency
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, icao24 string, windowHours int) ([]dtos.FlightRecord, error)
}

// PollSummary reports what one poll-and-persist cycle did
type PollSummary struct {
	Aircraft     int   `json:"aircraft"`
	StatusSaved  int   `json:"status_saved"`
	FlightsSaved int   `json:"flights_saved"`
	DurationMs   int64 `json:"duration_ms"`
}

// TrackerService composes the two data sources into per-aircraft records
// and drives persistence. It owns no retry logic; the providers handle
// their own failure policies.
type TrackerService struct {
	cfg         *config.Config
	states      StatesFetcher
	flights     HistoryFetcher
	statusRepo  *repositories.StatusHistoryRepository
	sessionRepo *repositories.FlightSessionRepository
	cache       common.CacheInterface
	metrics     *metrics.MetricsRegistry
}

// NewTrackerService creates the ingestion service
func NewTrackerService(
	cfg *config.Config,
	states StatesFetcher,
	flights HistoryFetcher,
	statusRepo *repositories.StatusHistoryRepository,
	sessionRepo *repositories.FlightSessionRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *TrackerService {
	return &TrackerService{
		cfg:         cfg,
		states:      states,
		flights:     flights,
		statusRepo:  statusRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		metrics:     metricsReg,
	}
}

// BuildComprehensive merges one current-states fetch with per-aircraft
// flight history. Every tracked aircraft appears in the result even when
// both sources failed for it: CurrentState stays nil and FlightHistory
// stays empty. History fetches run in configured fleet order so the
// politeness pacing is deterministic.
func (s *TrackerService) BuildComprehensive(ctx context.Context) map[string]dtos.AircraftComprehensive {
	result := make(map[string]dtos.AircraftComprehensive, len(s.cfg.Aircraft))
	for _, aircraft := range s.cfg.Aircraft {
		result[aircraft.ICAO24] = dtos.AircraftComprehensive{
			Registration:  aircraft.Registration,
			FlightHistory: []dtos.FlightRecord{},
		}
	}

	states, err := s.states.FetchStates(ctx, s.cfg.ICAO24Set())
	if err != nil {
		s.recordUpstreamError(err)
		logging.Warn("Current-states fetch failed; continuing with history only",
			"error", err.Error())
	}
	for i := range states {
		snapshot := states[i]
		if entry, ok := result[snapshot.ICAO24]; ok {
			entry.CurrentState = &snapshot
			result[snapshot.ICAO24] = entry
		}
	}

	for _, aircraft := range s.cfg.Aircraft {
		history, err := s.flights.FetchHistory(ctx, aircraft.ICAO24, s.cfg.HistoryHours)
		if err != nil {
			s.recordUpstreamError(err)
			logging.WithAircraft(aircraft.Registration, aircraft.ICAO24).
				Warnw("Flight history fetch failed", "error", err.Error())
			continue
		}
		entry := result[aircraft.ICAO24]
		entry.FlightHistory = history
		result[aircraft.ICAO24] = entry
	}

	return result
}

// PollOnce runs one full poll-and-persist cycle. Store failures are logged
// and skipped; they never abort the cycle.
func (s *TrackerService) PollOnce(ctx context.Context) PollSummary {
	start := time.Now()
	data := s.BuildComprehensive(ctx)

	var snapshots []dtos.StateSnapshot
	for _, entry := range data {
		if entry.CurrentState != nil {
			snapshots = append(snapshots, *entry.CurrentState)
		}
	}

	statusSaved, _ := s.statusRepo.SaveBatch(ctx, snapshots)

	flightsSaved := 0
	for icao24, entry := range data {
		for _, record := range entry.FlightHistory {
			if _, err := s.sessionRepo.Save(ctx, record); err != nil {
				logging.Warn("Could not save flight session",
					"icao24", icao24, "error", err.Error())
				continue
			}
			flightsSaved++
		}
	}

	summary := PollSummary{
		Aircraft:     len(data),
		StatusSaved:  statusSaved,
		FlightsSaved: flightsSaved,
		DurationMs:   time.Since(start).Milliseconds(),
	}

	if s.metrics != nil {
		s.metrics.PollCycleDuration.Observe(time.Since(start).Seconds())
		s.metrics.StatusSnapshotsTotal.Add(float64(statusSaved))
		s.metrics.FlightsProcessedTotal.Add(float64(flightsSaved))
	}

	logging.Info("Poll cycle completed",
		"aircraft", summary.Aircraft,
		"status_saved", summary.StatusSaved,
		"flights_saved", summary.FlightsSaved,
		"duration_ms", summary.DurationMs,
	)
	return summary
}

// LiveStates returns the current snapshots for all tracked aircraft
func (s *TrackerService) LiveStates(ctx context.Context) (*dtos.LiveDataResponse, error) {
	states, err := s.states.FetchStates(ctx, s.cfg.ICAO24Set())
	if err != nil {
		s.recordUpstreamError(err)
		return nil, err
	}

	return &dtos.LiveDataResponse{
		Timestamp:     time.Now().Unix(),
		AircraftCount: len(states),
		Aircraft:      states,
	}, nil
}

// ComprehensiveCached serves the merged view through the cache layer so
// bursts of web requests do not hammer the upstream API.
func (s *TrackerService) ComprehensiveCached(ctx context.Context) (interface{}, error) {
	return s.cache.GetOrSet(constants.CacheKeyComprehensive, time.Minute, func() (any, error) {
		return &dtos.ComprehensiveResponse{
			Timestamp: time.Now().Unix(),
			Data:      s.BuildComprehensive(ctx),
		}, nil
	})
}

// HistoryForRegistration fetches upstream history for a single tracked
// aircraft, addressed by registration.
func (s *TrackerService) HistoryForRegistration(ctx context.Context, registration string) (*dtos.RegistrationHistoryResponse, error) {
	aircraft, ok := s.cfg.FindByRegistration(registration)
	if !ok {
		return nil, &providers.ProviderError{
			Code:    constants.ErrCodeAircraftNotFound,
			Message: fmt.Sprintf("Aircraft %s is not in the tracking list", registration),
		}
	}

	history, err := s.flights.FetchHistory(ctx, aircraft.ICAO24, s.cfg.HistoryHours)
	if err != nil {
		s.recordUpstreamError(err)
		return nil, err
	}

	return &dtos.RegistrationHistoryResponse{
		Registration:  aircraft.Registration,
		ICAO24:        aircraft.ICAO24,
		FlightHistory: history,
		FlightCount:   len(history),
	}, nil
}

func (s *TrackerService) recordUpstreamError(err error) {
	if s.metrics == nil {
		return
	}
	var pe *providers.ProviderError
	if errors.As(err, &pe) {
		s.metrics.UpstreamErrorsTotal.WithLabelValues(pe.Code).Inc()
		return
	}
	s.metrics.UpstreamErrorsTotal.WithLabelValues("UNKNOWN").Inc()
}
