package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ffc/aircraft-tracker/internal/constants"
	"ffc/aircraft-tracker/internal/db/repositories"
	"ffc/aircraft-tracker/internal/models/entities"
	"ffc/aircraft-tracker/internal/providers"
	"ffc/aircraft-tracker/internal/services"
)

// TrackerHandlers bundles the HTTP handlers over the ingestion service and
// the read queries
type TrackerHandlers struct {
	tracker *services.TrackerService
	queries *repositories.FlightQueryRepository
}

// NewTrackerHandlers creates the handler set
func NewTrackerHandlers(tracker *services.TrackerService, queries *repositories.FlightQueryRepository) *TrackerHandlers {
	return &TrackerHandlers{tracker: tracker, queries: queries}
}

// GetLiveAll handles GET /api/live/all
func (h *TrackerHandlers) GetLiveAll(w http.ResponseWriter, r *http.Request) {
	live, err := h.tracker.LiveStates(r.Context())
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, live)
}

// GetComprehensiveAll handles GET /api/comprehensive/all
func (h *TrackerHandlers) GetComprehensiveAll(w http.ResponseWriter, r *http.Request) {
	data, err := h.tracker.ComprehensiveCached(r.Context())
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, &data)
}

// GetRegistrationHistory handles GET /api/history/{registration}
func (h *TrackerHandlers) GetRegistrationHistory(w http.ResponseWriter, r *http.Request) {
	registration := chi.URLParam(r, "registration")

	history, err := h.tracker.HistoryForRegistration(r.Context(), registration)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, history)
}

// GetRecentFlights handles GET /api/flights/recent
func (h *TrackerHandlers) GetRecentFlights(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", constants.DefaultHistoryHours)

	flights, err := h.queries.RecentFlights(r.Context(), hours)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, &flights)
}

// GetAircraftFlights handles GET /api/aircraft/{registration}/flights
func (h *TrackerHandlers) GetAircraftFlights(w http.ResponseWriter, r *http.Request) {
	registration := chi.URLParam(r, "registration")
	hours := queryInt(r, "hours", constants.DefaultHistoryHours)

	flights, err := h.queries.AircraftHistory(r.Context(), registration, hours)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithSuccess(w, http.StatusOK, &flights)
}

// GetAircraftStats handles GET /api/aircraft/{registration}/stats
func (h *TrackerHandlers) GetAircraftStats(w http.ResponseWriter, r *http.Request) {
	registration := chi.URLParam(r, "registration")
	days := queryInt(r, "days", constants.DefaultStatsDays)

	stats, err := h.queries.AircraftStats(r.Context(), registration, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithSuccess[entities.AircraftStats](w, http.StatusOK, stats)
}

// TriggerPoll handles POST /api/poll
func (h *TrackerHandlers) TriggerPoll(w http.ResponseWriter, r *http.Request) {
	summary := h.tracker.PollOnce(r.Context())
	respondWithSuccess(w, http.StatusOK, &summary)
}

// statusForError maps provider errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case providers.IsNotFound(err):
		return http.StatusNotFound
	case providers.IsAuthError(err):
		return http.StatusBadGateway
	case providers.IsFetchError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
