package services

import "math"

// Peak-hour windows, 24h clock, half-open: [7,9) and [17,19).
const (
	PeakMorningStart = 7
	PeakMorningEnd   = 9
	PeakEveningStart = 17
	PeakEveningEnd   = 19
)

// IsPeakHour reports whether the given hour falls in a peak window.
// It is computed once per request and attached identically to every route.
func IsPeakHour(hour int) bool {
	return (hour >= PeakMorningStart && hour < PeakMorningEnd) ||
		(hour >= PeakEveningStart && hour < PeakEveningEnd)
}

// weatherNotes is indexed by the severity scalar clamped to [0,5], one
// template per category. Index 0 doubles as the fallback for anything
// unmapped.
var weatherNotes = [6]string{
	"Conditions look calm - minimal impact expected.",
	"Clear conditions - minimal impact expected.",
	"Fog - reduced visibility may slow traffic.",
	"Rain - moderate delays expected.",
	"Snow - significant delays likely.",
	"Severe weather - major delays possible.",
}

// WeatherNote selects the impact note template for a severity value.
func WeatherNote(weatherSeverity float64) string {
	idx := int(math.Min(5, math.Max(0, weatherSeverity)))
	return weatherNotes[idx]
}
