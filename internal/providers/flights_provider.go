package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ffc/aircraft-tracker/internal/constants"
	"ffc/aircraft-tracker/internal/models/dtos"
)

// maxAuthRetries bounds how often a 401 triggers a token refresh and
// re-request. One retry covers an expired token; a second 401 means the
// credential itself is bad.
const maxAuthRetries = 1

// FlightsProvider polls the authenticated OpenSky flight-history endpoint.
// The shared limiter enforces the politeness pause the upstream API demands
// between consecutive per-aircraft requests; callers iterating the tracked
// set must go through the same provider instance.
type FlightsProvider struct {
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter

	tokens *TokenProvider
}

// NewFlightsProvider creates a provider for the /flights/aircraft endpoint
func NewFlightsProvider(baseURL string, timeout time.Duration, tokens *TokenProvider) *FlightsProvider {
	return &FlightsProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		tokens:  tokens,
	}
}

// FetchHistory fetches completed flights for one aircraft over the window
// [now - windowHours*3600, now].
func (p *FlightsProvider) FetchHistory(ctx context.Context, icao24 string, windowHours int) ([]dtos.FlightRecord, error) {
	if err := p.Limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Politeness pacing interrupted",
			Err:     err,
		}
	}

	end := time.Now().Unix()
	begin := end - int64(windowHours)*3600

	for attempt := 0; ; attempt++ {
		token, err := p.tokens.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		records, status, err := p.doFetch(ctx, token, icao24, begin, end)
		if status == http.StatusUnauthorized && attempt < maxAuthRetries {
			p.tokens.Invalidate()
			continue
		}
		if err != nil {
			return nil, err
		}
		return records, nil
	}
}

func (p *FlightsProvider) doFetch(ctx context.Context, token, icao24 string, begin, end int64) ([]dtos.FlightRecord, int, error) {
	url := fmt.Sprintf("%s/flights/aircraft?icao24=%s&begin=%d&end=%d",
		p.BaseURL, strings.ToLower(icao24), begin, end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create flight history request",
			Err:     err,
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: fmt.Sprintf("Flight history request for %s was rejected", icao24),
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
		}
	case resp.StatusCode == http.StatusNotFound:
		// OpenSky answers 404 when the aircraft has no flights in the window
		return []dtos.FlightRecord{}, resp.StatusCode, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(resp.Body)
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("Flight history request returned HTTP %d", resp.StatusCode),
			Details: string(body),
		}
	}

	var rawFlights []struct {
		ICAO24              string  `json:"icao24"`
		Callsign            *string `json:"callsign"`
		EstDepartureAirport *string `json:"estDepartureAirport"`
		EstArrivalAirport   *string `json:"estArrivalAirport"`
		FirstSeen           int64   `json:"firstSeen"`
		LastSeen            int64   `json:"lastSeen"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rawFlights); err != nil {
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode flight history response",
			Err:     err,
		}
	}

	records := make([]dtos.FlightRecord, 0, len(rawFlights))
	for _, raw := range rawFlights {
		record := dtos.FlightRecord{
			ICAO24:              strings.ToLower(raw.ICAO24),
			EstDepartureAirport: raw.EstDepartureAirport,
			EstArrivalAirport:   raw.EstArrivalAirport,
			FirstSeen:           raw.FirstSeen,
			LastSeen:            raw.LastSeen,
			// Seconds floor-divide to minutes, never round
			DurationMinutes: (raw.LastSeen - raw.FirstSeen) / 60,
		}
		if raw.Callsign != nil {
			trimmed := strings.TrimSpace(*raw.Callsign)
			if trimmed != "" {
				record.Callsign = &trimmed
			}
		}
		records = append(records, record)
	}

	return records, resp.StatusCode, nil
}
