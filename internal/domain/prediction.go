package domain

// RankedRoute is one evaluated candidate with its rank, predicted delay and
// the derived labels. Rank is 1-based and dense; exactly the rank-1 route is
// marked recommended.
type RankedRoute struct {
	Rank            int
	Name            string
	DistanceKM      float64
	BaseDurationMin float64
	PredictedDelay  float64 // minutes, never negative
	FinalTime       float64 // base duration + predicted delay, minutes
	Risk            string  // "Low" or "High"
	RiskScore       float64 // 0-100
	CongestionLevel string  // "Light", "Moderate" or "Heavy"
	Recommended     bool
	Confidence      float64 // 0-1, relative to the other candidates
	PeakHour        bool
	WeatherNote     string
	Geometry        []Coordinates
}

// PredictionSummary is the full result of one evaluation run.
type PredictionSummary struct {
	Routes             []RankedRoute
	Confidence         string  // overall label: "Low", "Medium" or "High"
	AverageRiskScore   float64 // mean of the per-route risk scores
	TopCongestionLevel string  // congestion level of the rank-1 route
	PeakHour           bool
	WeatherNote        string
}
