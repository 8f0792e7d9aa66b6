package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ffc/aircraft-tracker/internal/api"
	"ffc/aircraft-tracker/internal/db"
	"ffc/aircraft-tracker/internal/logging"
	"ffc/aircraft-tracker/internal/metrics"
	"ffc/aircraft-tracker/internal/middleware"
)

// RegisterRoutes wires the chi router with middleware and the tracker API
func RegisterRoutes(handlers *api.TrackerHandlers, metricsReg *metrics.MetricsRegistry, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	r.Route("/api", func(r chi.Router) {
		r.Get("/live/all", handlers.GetLiveAll)
		r.Get("/comprehensive/all", handlers.GetComprehensiveAll)
		r.Get("/history/{registration}", handlers.GetRegistrationHistory)
		r.Get("/flights/recent", handlers.GetRecentFlights)
		r.Get("/aircraft/{registration}/flights", handlers.GetAircraftFlights)
		r.Get("/aircraft/{registration}/stats", handlers.GetAircraftStats)
		r.Post("/poll", handlers.TriggerPoll)
	})

	return r
}
