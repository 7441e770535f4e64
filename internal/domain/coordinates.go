package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon] regardless of the provider's native axis order.
func (c Coordinates) LatLon() []float64 { return []float64{c.Lat, c.Lon} }
