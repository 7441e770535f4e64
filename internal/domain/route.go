package domain

// Represents one alternative path between origin and destination, as returned
// by the routing collaborator. Read-only within the evaluation pipeline.
type RouteCandidate struct {
	Name            string
	DistanceKM      float64
	BaseDurationMin float64
	Geometry        []Coordinates
}
