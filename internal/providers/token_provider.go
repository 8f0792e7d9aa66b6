package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"ffc/aircraft-tracker/internal/common"
	"ffc/aircraft-tracker/internal/constants"
	"ffc/aircraft-tracker/internal/logging"
)

// TokenProvider manages the OpenSky OAuth2 client-credentials token. The
// provider issues 30-minute tokens; the cached copy expires after 25 so a
// token is never handed out right before it dies upstream. Concurrent
// refreshes collapse into a single exchange via singleflight.
type TokenProvider struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Client       *http.Client

	cache common.CacheInterface
	group singleflight.Group
}

// NewTokenProvider creates a token provider backed by the given cache
func NewTokenProvider(tokenURL, clientID, clientSecret string, timeout time.Duration, cache common.CacheInterface) *TokenProvider {
	return &TokenProvider{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Client:       &http.Client{Timeout: timeout},
		cache:        cache,
	}
}

// GetToken returns a valid bearer token, reusing the cached one when it has
// not expired yet.
func (p *TokenProvider) GetToken(ctx context.Context) (string, error) {
	if token, ok := p.cachedToken(); ok {
		return token, nil
	}

	val, err, _ := p.group.Do(constants.CacheKeyAccessToken, func() (interface{}, error) {
		// Another caller may have refreshed while we queued
		if token, ok := p.cachedToken(); ok {
			return token, nil
		}
		return p.exchangeCredentials(ctx)
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

// Invalidate drops the cached token. Callers invoke this after a downstream
// 401 and retry the original request once with a fresh token.
func (p *TokenProvider) Invalidate() {
	p.cache.Delete(constants.CacheKeyAccessToken)
}

func (p *TokenProvider) cachedToken() (string, bool) {
	if val, found := p.cache.Get(constants.CacheKeyAccessToken); found {
		if token, ok := val.(string); ok && token != "" {
			return token, true
		}
	}
	return "", false
}

// exchangeCredentials performs the client-credentials exchange. Failures
// leave the cache untouched.
func (p *TokenProvider) exchangeCredentials(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.ClientID},
		"client_secret": {p.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: "Failed to create token request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	logging.Info("Requesting new OAuth2 token", "token_url", p.TokenURL)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: "OAuth2 token request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: "Failed to read token response",
			Err:     readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: fmt.Sprintf("OAuth2 token request returned HTTP %d", resp.StatusCode),
			Details: string(body),
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: "Failed to decode token response",
			Details: string(body),
			Err:     err,
		}
	}
	if tokenResp.AccessToken == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthFailed,
			Message: "Token response did not contain an access token",
			Details: string(body),
		}
	}

	p.cache.Set(constants.CacheKeyAccessToken, tokenResp.AccessToken,
		constants.TokenCacheMinutes*time.Minute)

	logging.Info("OAuth2 token obtained", "cached_minutes", constants.TokenCacheMinutes)
	return tokenResp.AccessToken, nil
}
