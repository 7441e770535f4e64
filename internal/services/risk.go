package services

import "math"

// Risk thresholds. High risk is an OR of two independent triggers, not a
// weighted combination: a long delay in clear weather and a short delay in a
// snowstorm are both High.
const (
	HighDelayThresholdMin        = 15.0
	HighWeatherSeverityThreshold = 3.0
)

const (
	RiskLow  = "Low"
	RiskHigh = "High"
)

// RiskLabel assigns "High" or "Low" from predicted delay and weather severity.
func RiskLabel(delay, weatherSeverity float64) string {
	if delay >= HighDelayThresholdMin || weatherSeverity >= HighWeatherSeverityThreshold {
		return RiskHigh
	}
	return RiskLow
}

// RiskScore produces a bounded [0,100] score, one decimal place. The delay
// and weather contributions are capped independently before summing, so
// neither factor alone can exceed its half of the scale. The score can
// disagree with the label: weather alone tops out at 50 here but still trips
// the High label above.
func RiskScore(delay, weatherSeverity float64) float64 {
	delayPart := math.Min(100, delay/HighDelayThresholdMin*50)
	weatherPart := math.Min(50, weatherSeverity/HighWeatherSeverityThreshold*50)
	return round1(math.Min(100, delayPart+weatherPart))
}
