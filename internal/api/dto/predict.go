package dto

// PredictRequest is a route prediction query with unresolved place names.
// Weather and travel time are validated by the prediction pipeline so their
// failures carry specific error codes.
type PredictRequest struct {
	Source      string `json:"source" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	TravelDay   string `json:"travel_day" validate:"required"`
	TravelTime  string `json:"travel_time" validate:"required"`
	Weather     string `json:"weather" validate:"required"`

	VehicleType        string `json:"vehicle_type"`
	UrgencyLevel       string `json:"urgency_level"`
	PreferredRouteType string `json:"preferred_route_type"`
}

type RouteResponse struct {
	Rank            int         `json:"rank"`
	Name            string      `json:"name"`
	DistanceKM      float64     `json:"distance_km"`
	BaseDurationMin float64     `json:"base_duration_min"`
	PredictedDelay  float64     `json:"predicted_delay"`
	PredictedTime   float64     `json:"predicted_time"`
	Risk            string      `json:"risk"`
	RiskScore       float64     `json:"risk_score"`
	CongestionLevel string      `json:"congestion_level"`
	Recommended     bool        `json:"recommended"`
	Confidence      float64     `json:"confidence"`
	PeakHour        bool        `json:"peak_hour"`
	WeatherNote     string      `json:"weather_note"`
	Geometry        [][]float64 `json:"geometry"`
}

type PredictResponse struct {
	Routes             []RouteResponse `json:"routes"`
	Confidence         string          `json:"confidence"`
	AverageRiskScore   float64         `json:"average_risk_score"`
	TopCongestionLevel string          `json:"top_congestion_level"`
	PeakHour           bool            `json:"peak_hour"`
	WeatherNote        string          `json:"weather_note"`
}
