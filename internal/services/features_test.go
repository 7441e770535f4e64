package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
)

func TestParseHour(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"07:30", 7},
		{"18:00", 18},
		{"23:59", 23},
		{" 09:15 ", 9},
	}
	for _, tc := range cases {
		got, err := ParseHour(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseHourRejectsMalformedInput(t *testing.T) {
	bad := []string{"", "12", "24:00", "-1:30", "ab:10", "12:60", "12:xx", "12:30:00"}
	for _, in := range bad {
		_, err := ParseHour(in)
		require.Error(t, err, "input %q", in)
		assert.Equal(t, apperr.CodeInvalidTime, apperr.CodeOf(err), "input %q", in)
	}
}

func TestIsWeekend(t *testing.T) {
	assert.Equal(t, 1.0, isWeekend("Saturday"))
	assert.Equal(t, 1.0, isWeekend("SUNDAY"))
	assert.Equal(t, 1.0, isWeekend("  sunday  "))
	assert.Equal(t, 0.0, isWeekend("monday"))
	assert.Equal(t, 0.0, isWeekend("Friday"))

	// Unrecognized day names are weekdays, not errors.
	assert.Equal(t, 0.0, isWeekend("Funday"))
	assert.Equal(t, 0.0, isWeekend(""))
}

func TestCyclicHourEncoding(t *testing.T) {
	sin18, cos18 := cyclicHour(18)
	assert.InDelta(t, -1.0, sin18, 1e-9)
	assert.InDelta(t, 0.0, cos18, 1e-9)

	sin6, cos6 := cyclicHour(6)
	assert.InDelta(t, 1.0, sin6, 1e-9)
	assert.InDelta(t, 0.0, cos6, 1e-9)

	sin0, cos0 := cyclicHour(0)
	assert.InDelta(t, 0.0, sin0, 1e-9)
	assert.InDelta(t, 1.0, cos0, 1e-9)
}

func TestBuildFeatures(t *testing.T) {
	routes := []domain.RouteCandidate{
		{Name: "Route 1", DistanceKM: 12.5, BaseDurationMin: 30},
		{Name: "Route 2", DistanceKM: 15.2, BaseDurationMin: 28.5},
	}
	defaults := domain.FeatureDefaults{Density: 50, Lanes: 3, Signals: 5}

	vectors, err := BuildFeatures(routes, "18:00", "Saturday", 3, defaults)
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	// Field-by-field against hand-computed expectations for the first route.
	v := vectors[0].Vector()
	require.Len(t, v, 9)
	assert.Equal(t, 12.5, v[0], "distance_km")
	assert.Equal(t, 30.0, v[1], "base_duration_min")
	assert.InDelta(t, -1.0, v[2], 1e-9, "hour_sin")
	assert.InDelta(t, 0.0, v[3], 1e-9, "hour_cos")
	assert.Equal(t, 1.0, v[4], "is_weekend")
	assert.Equal(t, 3.0, v[5], "weather_severity")
	assert.Equal(t, 50.0, v[6], "default_density")
	assert.Equal(t, 3.0, v[7], "default_lanes")
	assert.Equal(t, 5.0, v[8], "default_signals")

	// Per-route columns vary, shared columns repeat unchanged.
	assert.Equal(t, 15.2, vectors[1].DistanceKM)
	assert.Equal(t, 28.5, vectors[1].BaseDurationMin)
	assert.Equal(t, vectors[0].HourSin, vectors[1].HourSin)
	assert.Equal(t, vectors[0].WeatherSeverity, vectors[1].WeatherSeverity)
	assert.Equal(t, vectors[0].Density, vectors[1].Density)
}

func TestBuildFeaturesPropagatesTimeError(t *testing.T) {
	_, err := BuildFeatures(
		[]domain.RouteCandidate{{Name: "Route 1"}},
		"25:99", "monday", 1,
		domain.FeatureDefaults{},
	)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidTime, apperr.CodeOf(err))
}
