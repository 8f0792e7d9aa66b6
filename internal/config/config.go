package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ffc/aircraft-tracker/internal/constants"
)

// TrackedAircraft maps a registration (tail number) to its icao24 hex code.
// The set is loaded once at startup and never changes during the process
// lifetime.
type TrackedAircraft struct {
	Registration string
	ICAO24       string
}

// Config holds the application configuration
type Config struct {
	AppEnv string
	Port   string

	// OpenSky API
	OpenSkyBaseURL string
	OAuthTokenURL  string
	ClientID       string
	ClientSecret   string
	HTTPTimeout    time.Duration

	// Tracked fleet, in configured order
	Aircraft []TrackedAircraft

	// Persistence
	DBDriver    string // "sqlite" or "postgres"
	SQLitePath  string
	PostgresDSN string

	// Optional Redis cache
	RedisHost string
	RedisPort string

	// Scheduling
	PollInterval    time.Duration
	CleanupInterval time.Duration
	RetentionHours  int
	HistoryHours    int
}

// Load reads configuration from environment variables, with a best-effort
// .env fallback for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		OpenSkyBaseURL:  getEnv("OPENSKY_BASE_URL", constants.DefaultOpenSkyBaseURL),
		OAuthTokenURL:   getEnv("OPENSKY_TOKEN_URL", constants.DefaultOAuthTokenURL),
		ClientID:        os.Getenv("OPENSKY_CLIENT_ID"),
		ClientSecret:    os.Getenv("OPENSKY_CLIENT_SECRET"),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		SQLitePath:      getEnv("SQLITE_PATH", "aircraft_tracker.db"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		PollInterval:    getEnvDuration("POLL_INTERVAL", 5*time.Minute),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", 1*time.Hour),
		RetentionHours:  getEnvInt("RETENTION_HOURS", constants.DefaultRetentionHrs),
		HistoryHours:    getEnvInt("HISTORY_HOURS", constants.DefaultHistoryHours),
	}

	if cfg.DBDriver == "postgres" {
		host := getEnv("PG_HOST", "localhost")
		port := getEnv("PG_PORT", "5432")
		user := os.Getenv("PG_USER")
		dbname := os.Getenv("PG_DB")
		password := os.Getenv("PG_PASSWORD")
		cfg.PostgresDSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, dbname)
	}

	aircraft, err := parseAircraft(getEnv("TRACKED_AIRCRAFT",
		"N31401:a3581f,N773SP:aa75ca,N41598:a4ea67,N700ZG:a956d4"))
	if err != nil {
		return nil, err
	}
	cfg.Aircraft = aircraft

	return cfg, nil
}

// parseAircraft parses "REG:icao24,REG:icao24,..." keeping configured order.
// ICAO24 codes are normalized to lowercase hex.
func parseAircraft(raw string) ([]TrackedAircraft, error) {
	var fleet []TrackedAircraft
	seen := make(map[string]bool)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid TRACKED_AIRCRAFT entry %q (want REG:icao24)", pair)
		}
		reg := strings.ToUpper(strings.TrimSpace(parts[0]))
		icao := strings.ToLower(strings.TrimSpace(parts[1]))
		if seen[reg] || seen[icao] {
			return nil, fmt.Errorf("duplicate aircraft entry %q", pair)
		}
		seen[reg] = true
		seen[icao] = true
		fleet = append(fleet, TrackedAircraft{Registration: reg, ICAO24: icao})
	}

	if len(fleet) == 0 {
		return nil, fmt.Errorf("TRACKED_AIRCRAFT is empty")
	}
	return fleet, nil
}

// ICAO24Set returns the lowercase icao24 codes of the fleet in configured order.
func (c *Config) ICAO24Set() []string {
	codes := make([]string, 0, len(c.Aircraft))
	for _, a := range c.Aircraft {
		codes = append(codes, a.ICAO24)
	}
	return codes
}

// FindByRegistration returns the tracked aircraft for a registration, if any.
func (c *Config) FindByRegistration(registration string) (TrackedAircraft, bool) {
	for _, a := range c.Aircraft {
		if strings.EqualFold(a.Registration, registration) {
			return a, true
		}
	}
	return TrackedAircraft{}, false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
