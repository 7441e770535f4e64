package ports

import (
	"context"
	"traffic-prediction-service/internal/domain"
)

// Contract for resolving a place name to geographic coordinates.
type Geocoder interface {
	// Return the best-match coordinates for a free-text place name.
	Resolve(ctx context.Context, place string) (domain.Coordinates, error)
}
