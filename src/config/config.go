package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"horizon-server/src/txview"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const day = 24 * time.Hour

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	PlaidClientID    string
	PlaidSecret      string
	PlaidEnv         string
	PlaidWebhookURL  string
	CountryCode      string
	Locale           string
	Location         *time.Location
	PageSize         int
	PendingThreshold time.Duration
	IsDemo           bool
	AllowedOrigins   []string
	LogLevel         string
}

// Load reads .env (if present) and the environment. Invalid configuration
// is fatal.
func Load() Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	return cfg
}

// Parse builds a Config from a lookup function shaped like os.LookupEnv.
func Parse(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		PlaidClientID:   getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:     getEnv("PLAID_SECRET", ""),
		PlaidEnv:        getEnv("PLAID_ENV", "sandbox"),
		PlaidWebhookURL: getEnv("PLAID_WEBHOOK_URL", ""),
		CountryCode:     strings.ToUpper(getEnv("COUNTRY_CODE", "US")),
		Locale:          getEnv("LOCALE", "en-US"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.PlaidEnv != "sandbox" && cfg.PlaidEnv != "production" {
		return Config{}, fmt.Errorf("invalid PLAID_ENV %q", cfg.PlaidEnv)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.PageSize, err = positiveInt(getEnv("PAGE_SIZE", strconv.Itoa(txview.DefaultPageSize)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PAGE_SIZE: %w", err)
	}

	days, err := positiveInt(getEnv("PENDING_THRESHOLD_DAYS", strconv.Itoa(int(txview.DefaultPendingThreshold/day))))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PENDING_THRESHOLD_DAYS: %w", err)
	}
	cfg.PendingThreshold = time.Duration(days) * day

	cfg.IsDemo, err = strconv.ParseBool(getEnv("DEMO_MODE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DEMO_MODE: %w", err)
	}

	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func positiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
