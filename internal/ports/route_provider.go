package ports

import (
	"context"
	"traffic-prediction-service/internal/domain"
)

// Contract for fetching alternative route geometries between two points.
type RouteProvider interface {
	// Return up to maxAlternatives candidate routes from origin to destination.
	// Geometry coordinates are normalized to (lat, lon) pair order.
	Fetch(ctx context.Context, origin, destination domain.Coordinates, maxAlternatives int) ([]domain.RouteCandidate, error)
}
