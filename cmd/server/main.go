package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"traffic-prediction-service/internal/adapters/cache"
	"traffic-prediction-service/internal/adapters/external"
	"traffic-prediction-service/internal/adapters/repositories"
	"traffic-prediction-service/internal/api"
	"traffic-prediction-service/internal/config"
	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/model"
	"traffic-prediction-service/internal/platform/db"
	"traffic-prediction-service/internal/ports"
	"traffic-prediction-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Photon, OSRM, Redis, SQLite/Postgres) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Load the artifact up front so a broken deployment fails at startup.
	delayModel := model.NewHandle(cfg.ModelPath)
	if err := delayModel.Preload(); err != nil {
		log.Fatalf("load model artifact %q: %v", cfg.ModelPath, err)
	}

	incidents, closeStore, err := openIncidentStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	geocodeCache := newGeocodeCache(cfg)

	geocoder := external.NewPhotonGeocoder(cfg.PhotonBaseURL, cfg.PhotonTimeout, geocodeCache)
	provider := external.NewOSRMRouteProvider(cfg.OSRMBaseURL, cfg.OSRMTimeout)

	predictions := &services.PredictionService{
		Geocoder: geocoder,
		Provider: provider,
		Model:    delayModel,
		Defaults: domain.FeatureDefaults{
			Density: cfg.DefaultDensity,
			Lanes:   cfg.DefaultLanes,
			Signals: cfg.DefaultSignals,
		},
		MaxAlternatives: cfg.MaxAlternatives,
	}

	router := api.NewRouter(api.Deps{
		Predictions:    predictions,
		Incidents:      incidents,
		Model:          delayModel,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Timeouts are tuned for cold-cache prediction (two external API calls).
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openIncidentStore selects Postgres when DATABASE_URL is set, local SQLite
// otherwise.
func openIncidentStore(cfg *config.Config) (ports.IncidentRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open incident store: %w", err)
		}

		repo := repositories.NewSQLIncidentRepository(conn)
		if err := repo.InitSchema(context.Background()); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open incident store: %w", err)
		}
		return repo, func() { conn.Close() }, nil
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("open incident store: create %q: %w", dir, err)
		}
	}

	conn, err := db.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open incident store: %w", err)
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open incident store: %w", err)
	}

	return repositories.NewSqliteIncidentRepository(conn), func() { conn.Close() }, nil
}

// newGeocodeCache returns nil when no Redis address is configured; the
// geocoder treats nil as cache-off.
func newGeocodeCache(cfg *config.Config) external.GeocodeCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL)
}
