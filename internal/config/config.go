// Package config loads service configuration from the environment.
// A .env file is honored for local runs; real environments set variables
// directly.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full service configuration. The feature defaults must match
// the values the delay model was trained with; override them only for a
// deployment that ships a matching artifact.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Collaborators. Photon and OSRM public endpoints are free and keyless.
	PhotonBaseURL string        `envconfig:"PHOTON_BASE_URL" default:"https://photon.komoot.io" validate:"url"`
	PhotonTimeout time.Duration `envconfig:"PHOTON_TIMEOUT" default:"10s"`
	OSRMBaseURL   string        `envconfig:"OSRM_BASE_URL" default:"https://router.project-osrm.org" validate:"url"`
	OSRMTimeout   time.Duration `envconfig:"OSRM_TIMEOUT" default:"15s"`

	MaxAlternatives int `envconfig:"MAX_ALTERNATIVES" default:"3" validate:"gte=1,lte=10"`

	// Pre-trained delay model artifact.
	ModelPath string `envconfig:"MODEL_PATH" default:"models/traffic_model.json" validate:"required"`

	// Training-time feature defaults.
	DefaultDensity float64 `envconfig:"DEFAULT_DENSITY" default:"50"`
	DefaultLanes   float64 `envconfig:"DEFAULT_LANES" default:"3"`
	DefaultSignals float64 `envconfig:"DEFAULT_SIGNALS" default:"5"`

	// Geocode cache. Empty RedisAddr disables caching.
	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	GeocodeCacheTTL time.Duration `envconfig:"GEOCODE_CACHE_TTL" default:"24h"`

	// Incident store: Postgres when DatabaseURL is set, SQLite otherwise.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/app.db"`
}

// Load reads, populates and validates the configuration.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: process environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("load config: validate: %w", err)
	}

	return &cfg, nil
}
