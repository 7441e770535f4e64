package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
)

// ParseHour extracts the hour (0-23) from an "HH:MM" 24-hour string.
// Malformed input is the caller's error, never silently defaulted.
func ParseHour(travelTime string) (int, error) {
	parts := strings.Split(strings.TrimSpace(travelTime), ":")
	if len(parts) != 2 {
		return 0, apperr.Newf(apperr.CodeInvalidTime, "travel_time %q is not in HH:MM format", travelTime)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, apperr.Newf(apperr.CodeInvalidTime, "travel_time %q has a non-numeric hour", travelTime)
	}
	if hour < 0 || hour > 23 {
		return 0, apperr.Newf(apperr.CodeInvalidTime, "travel_time %q hour out of range", travelTime)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, apperr.Newf(apperr.CodeInvalidTime, "travel_time %q has an invalid minute", travelTime)
	}

	return hour, nil
}

// isWeekend returns 1 for Saturday/Sunday, else 0. Unrecognized day names are
// treated as weekdays: day names are not this system's authority on calendars.
func isWeekend(travelDay string) float64 {
	switch strings.ToLower(strings.TrimSpace(travelDay)) {
	case "saturday", "sunday":
		return 1
	}
	return 0
}

// cyclicHour encodes hour-of-day on the unit circle (period 24h), rounded to
// six decimals to match the precision the model was fitted with.
func cyclicHour(hour int) (hourSin, hourCos float64) {
	hourSin = round6(math.Sin(2 * math.Pi * float64(hour) / 24))
	hourCos = round6(math.Cos(2 * math.Pi * float64(hour) / 24))
	return hourSin, hourCos
}

// BuildFeatures builds one feature vector per candidate route, in input order.
// Distance and base duration are copied verbatim from each candidate; the
// time/day/weather columns are shared across the request, as are the static
// defaults.
func BuildFeatures(
	routes []domain.RouteCandidate,
	travelTime string,
	travelDay string,
	weatherSeverity float64,
	defaults domain.FeatureDefaults,
) ([]domain.FeatureVector, error) {
	hour, err := ParseHour(travelTime)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}

	hourSin, hourCos := cyclicHour(hour)
	weekend := isWeekend(travelDay)

	vectors := make([]domain.FeatureVector, 0, len(routes))
	for _, r := range routes {
		vectors = append(vectors, domain.FeatureVector{
			DistanceKM:      r.DistanceKM,
			BaseDurationMin: r.BaseDurationMin,
			HourSin:         hourSin,
			HourCos:         hourCos,
			IsWeekend:       weekend,
			WeatherSeverity: weatherSeverity,
			Density:         defaults.Density,
			Lanes:           defaults.Lanes,
			Signals:         defaults.Signals,
		})
	}

	return vectors, nil
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
