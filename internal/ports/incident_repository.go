package ports

import (
	"context"
	"traffic-prediction-service/internal/domain"
)

// Port: a boundary for persisting user-submitted incident reports.
type IncidentRepository interface {
	// Store a single incident report.
	SaveIncident(ctx context.Context, report *domain.IncidentReport) error
	// Retrieve the most recent incident reports, newest first.
	ListIncidents(ctx context.Context, limit int) ([]*domain.IncidentReport, error)
}
