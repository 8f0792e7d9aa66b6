package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"ffc/aircraft-tracker/internal/common"
	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/db"
	"ffc/aircraft-tracker/internal/db/repositories"
	"ffc/aircraft-tracker/internal/jobs"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/providers"
	"ffc/aircraft-tracker/internal/services"
)

const usage = `trackctl <command>

Commands:
  report    print current state and flight history for the tracked fleet
  poll      run one poll-and-persist cycle
  cleanup   run one retention cleanup cycle
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "report":
		runReport(ctx, cfg)
	case "poll":
		tracker, _, _ := buildTracker(ctx, cfg)
		summary := tracker.PollOnce(ctx)
		fmt.Printf("poll cycle done: %d aircraft, %d snapshots saved, %d flights saved (%dms)\n",
			summary.Aircraft, summary.StatusSaved, summary.FlightsSaved, summary.DurationMs)
	case "cleanup":
		_, statusRepo, sessionRepo := buildTracker(ctx, cfg)
		job := jobs.NewCleanupJob(statusRepo, sessionRepo, cfg.RetentionHours, nil)
		removed, err := job.Run(ctx)
		if err != nil {
			log.Fatalf("cleanup failed: %v", err)
		}
		fmt.Printf("cleanup removed %d rows older than %dh\n", removed, cfg.RetentionHours)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

// buildTracker wires the full service stack against the configured store
func buildTracker(ctx context.Context, cfg *config.Config) (*services.TrackerService, *repositories.StatusHistoryRepository, *repositories.FlightSessionRepository) {
	if err := db.Init(cfg); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	cache := common.NewCacheService(300, 600)
	aircraftRepo := repositories.NewAircraftRepository(db.ORM)
	if err := aircraftRepo.SeedTrackedAircraft(ctx, cfg.Aircraft); err != nil {
		log.Fatalf("failed to seed tracked aircraft: %v", err)
	}
	statusRepo := repositories.NewStatusHistoryRepository(db.ORM, aircraftRepo)
	sessionRepo := repositories.NewFlightSessionRepository(db.ORM, aircraftRepo)

	tokens := providers.NewTokenProvider(cfg.OAuthTokenURL, cfg.ClientID, cfg.ClientSecret, cfg.HTTPTimeout, cache)
	states := providers.NewStatesProvider(cfg.OpenSkyBaseURL, cfg.HTTPTimeout)
	flights := providers.NewFlightsProvider(cfg.OpenSkyBaseURL, cfg.HTTPTimeout, tokens)

	tracker := services.NewTrackerService(cfg, states, flights, statusRepo, sessionRepo, cache, nil)
	return tracker, statusRepo, sessionRepo
}

// runReport prints the comprehensive view without touching the store
func runReport(ctx context.Context, cfg *config.Config) {
	cache := common.NewCacheService(300, 600)
	tokens := providers.NewTokenProvider(cfg.OAuthTokenURL, cfg.ClientID, cfg.ClientSecret, cfg.HTTPTimeout, cache)
	states := providers.NewStatesProvider(cfg.OpenSkyBaseURL, cfg.HTTPTimeout)
	flights := providers.NewFlightsProvider(cfg.OpenSkyBaseURL, cfg.HTTPTimeout, tokens)

	tracker := services.NewTrackerService(cfg, states, flights, nil, nil, cache, nil)
	data := tracker.BuildComprehensive(ctx)

	transmitting := 0
	totalFlights := 0
	for _, aircraft := range cfg.Aircraft {
		entry := data[aircraft.ICAO24]
		fmt.Printf("\n%s (%s)\n", entry.Registration, aircraft.ICAO24)

		if state := entry.CurrentState; state != nil {
			transmitting++
			status := "IN FLIGHT"
			if state.OnGround {
				status = "ON GROUND"
			}
			fmt.Printf("  status: %s\n", status)
			if state.Callsign != nil {
				fmt.Printf("  callsign: %s\n", *state.Callsign)
			}
			if state.Latitude != nil && state.Longitude != nil {
				fmt.Printf("  position: %.4f, %.4f\n", *state.Latitude, *state.Longitude)
			}
			if state.Altitude != nil {
				fmt.Printf("  altitude: %.0f m\n", *state.Altitude)
			}
			fmt.Printf("  last contact: %s\n", time.Unix(state.LastContact, 0).Format("2006-01-02 15:04:05"))
		} else {
			fmt.Println("  status: NOT TRANSMITTING")
		}

		totalFlights += len(entry.FlightHistory)
		fmt.Printf("  flights in last %dh: %d\n", cfg.HistoryHours, len(entry.FlightHistory))
		for _, flight := range entry.FlightHistory {
			from, to := "N/A", "N/A"
			if flight.EstDepartureAirport != nil {
				from = *flight.EstDepartureAirport
			}
			if flight.EstArrivalAirport != nil {
				to = *flight.EstArrivalAirport
			}
			fmt.Printf("    %s -> %s, %d min, departed %s\n",
				from, to, flight.DurationMinutes,
				time.Unix(flight.FirstSeen, 0).Format("2006-01-02 15:04"))
		}
	}

	fmt.Printf("\ntransmitting: %d/%d, flights in window: %d\n",
		transmitting, len(cfg.Aircraft), totalFlights)
}
