package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ffc/aircraft-tracker/internal/api"
	"ffc/aircraft-tracker/internal/common"
	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/db"
	"ffc/aircraft-tracker/internal/db/repositories"
	"ffc/aircraft-tracker/internal/jobs"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/metrics"
	"ffc/aircraft-tracker/internal/providers"
	"ffc/aircraft-tracker/internal/routes"
	"ffc/aircraft-tracker/internal/services"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Aircraft tracker starting up",
		"environment", cfg.AppEnv,
		"tracked_aircraft", len(cfg.Aircraft),
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if err := db.Init(cfg); err != nil {
		logging.Error("Failed to initialize database", "error", err.Error())
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer db.Close()
	logging.Info("Database ready", "driver", cfg.DBDriver)

	// Cache layer: Redis when configured, in-memory otherwise
	var cache common.CacheInterface
	if cfg.RedisHost != "" {
		redisCache, err := common.NewRedisCacheService(cfg.RedisHost, cfg.RedisPort, os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
			cache = common.NewCacheService(300, 600)
		} else {
			cache = redisCache
			logging.Info("Using Redis cache", "host", cfg.RedisHost)
		}
	} else {
		cache = common.NewCacheService(300, 600)
	}
	defer cache.Close()

	aircraftRepo := repositories.NewAircraftRepository(db.ORM)
	if err := aircraftRepo.SeedTrackedAircraft(context.Background(), cfg.Aircraft); err != nil {
		logging.Error("Failed to seed tracked aircraft", "error", err.Error())
		log.Fatalf("❌ Failed to seed tracked aircraft: %v", err)
	}

	statusRepo := repositories.NewStatusHistoryRepository(db.ORM, aircraftRepo)
	sessionRepo := repositories.NewFlightSessionRepository(db.ORM, aircraftRepo)
	queryRepo := repositories.NewFlightQueryRepository(db.DB)

	tokenProvider := providers.NewTokenProvider(cfg.OAuthTokenURL, cfg.ClientID, cfg.ClientSecret, cfg.HTTPTimeout, cache)
	statesProvider := providers.NewStatesProvider(cfg.OpenSkyBaseURL, cfg.HTTPTimeout)
	flightsProvider := providers.NewFlightsProvider(cfg.OpenSkyBaseURL, cfg.HTTPTimeout, tokenProvider)

	metricsReg := metrics.NewMetricsRegistry()

	tracker := services.NewTrackerService(cfg, statesProvider, flightsProvider, statusRepo, sessionRepo, cache, metricsReg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	jobs.InitializeJobs(ctx, cfg, tracker, statusRepo, sessionRepo, metricsReg)
	logging.Info("Background jobs started",
		"poll_interval", cfg.PollInterval.String(),
		"cleanup_interval", cfg.CleanupInterval.String(),
	)

	upSince := time.Now()
	handlers := api.NewTrackerHandlers(tracker, queryRepo)
	router := routes.RegisterRoutes(handlers, metricsReg, upSince)

	// Metrics endpoint lives outside the chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
