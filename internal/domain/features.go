package domain

// FeatureNames is the column order the delay model was fitted on.
// FeatureVector.Vector must emit values in exactly this order.
var FeatureNames = []string{
	"distance_km",
	"base_duration_min",
	"hour_sin",
	"hour_cos",
	"is_weekend",
	"weather_severity",
	"default_density",
	"default_lanes",
	"default_signals",
}

// FeatureVector is one fixed-order numeric feature row for a candidate route.
// The struct replaces the map-keyed rows of earlier iterations so the column
// order is a construction-time guarantee instead of implicit map order.
type FeatureVector struct {
	DistanceKM      float64
	BaseDurationMin float64
	HourSin         float64
	HourCos         float64
	IsWeekend       float64
	WeatherSeverity float64
	Density         float64
	Lanes           float64
	Signals         float64
}

// Vector returns the row in the fitted column order (see FeatureNames).
func (f FeatureVector) Vector() []float64 {
	return []float64{
		f.DistanceKM,
		f.BaseDurationMin,
		f.HourSin,
		f.HourCos,
		f.IsWeekend,
		f.WeatherSeverity,
		f.Density,
		f.Lanes,
		f.Signals,
	}
}

// FeatureDefaults are the process-wide static values injected into every row.
// They must match the values used at training time; deployments override them
// only through configuration.
type FeatureDefaults struct {
	Density float64
	Lanes   float64
	Signals float64
}
