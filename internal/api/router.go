package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"traffic-prediction-service/internal/api/handlers"
	"traffic-prediction-service/internal/model"
	"traffic-prediction-service/internal/ports"
	"traffic-prediction-service/internal/services"
)

// Deps carries the wired dependencies for the HTTP layer.
type Deps struct {
	Predictions    *services.PredictionService
	Incidents      ports.IncidentRepository
	Model          *model.Handle
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	validate := validator.New()

	predictHandler := &handlers.PredictHandler{
		Service:  deps.Predictions,
		Validate: validate,
	}
	incidentHandler := &handlers.IncidentHandler{
		Repo:     deps.Incidents,
		Validate: validate,
	}
	healthHandler := &handlers.HealthHandler{Model: deps.Model}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Post("/predict-route", predictHandler.Predict)
	r.Route("/incidents", func(r chi.Router) {
		r.Post("/", incidentHandler.Report)
		r.Get("/", incidentHandler.List)
	})

	return r
}
