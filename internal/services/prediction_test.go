package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
)

type stubGeocoder struct {
	coords map[string]domain.Coordinates
	err    error
}

func (g *stubGeocoder) Resolve(_ context.Context, place string) (domain.Coordinates, error) {
	if g.err != nil {
		return domain.Coordinates{}, g.err
	}
	c, ok := g.coords[place]
	if !ok {
		return domain.Coordinates{}, apperr.Newf(apperr.CodeLocationNotFound, "could not geocode %q", place)
	}
	return c, nil
}

type stubProvider struct {
	routes []domain.RouteCandidate
	err    error

	gotOrigin      domain.Coordinates
	gotDestination domain.Coordinates
	gotMax         int
}

func (p *stubProvider) Fetch(_ context.Context, origin, destination domain.Coordinates, max int) ([]domain.RouteCandidate, error) {
	p.gotOrigin = origin
	p.gotDestination = destination
	p.gotMax = max
	if p.err != nil {
		return nil, p.err
	}
	return p.routes, nil
}

type stubModel struct {
	delays []float64
	err    error

	calls    int
	gotNames []string
	gotRows  [][]float64
}

func (m *stubModel) Predict(_ context.Context, names []string, rows [][]float64) ([]float64, error) {
	m.calls++
	m.gotNames = names
	m.gotRows = rows
	if m.err != nil {
		return nil, m.err
	}
	return m.delays, nil
}

func evaluationService(m *stubModel) *PredictionService {
	return &PredictionService{
		Model:           m,
		Defaults:        domain.FeatureDefaults{Density: 50, Lanes: 3, Signals: 5},
		MaxAlternatives: 3,
	}
}

func TestEvaluate(t *testing.T) {
	m := &stubModel{delays: []float64{10, 0, 5}}
	svc := evaluationService(m)

	tc := domain.TravelContext{
		TravelDay:  "Monday",
		TravelTime: "18:30",
		Weather:    domain.WeatherRain,
	}
	candidates := []domain.RouteCandidate{
		{Name: "A", DistanceKM: 12, BaseDurationMin: 30},
		{Name: "B", DistanceKM: 10, BaseDurationMin: 25},
		{Name: "C", DistanceKM: 15, BaseDurationMin: 40},
	}

	summary, err := svc.Evaluate(context.Background(), tc, candidates)
	require.NoError(t, err)
	require.Len(t, summary.Routes, 3)

	// Final times: A=40, B=25, C=45; ascending order is B, A, C.
	assert.Equal(t, "B", summary.Routes[0].Name)
	assert.Equal(t, "A", summary.Routes[1].Name)
	assert.Equal(t, "C", summary.Routes[2].Name)

	// Confidence over the sorted delay sequence [0, 10, 5], max 10.
	assert.Equal(t, 1.0, summary.Routes[0].Confidence)
	assert.Equal(t, 0.0, summary.Routes[1].Confidence)
	assert.Equal(t, 0.5, summary.Routes[2].Confidence)

	// Rain (severity 3) trips the High risk label on every route.
	for _, r := range summary.Routes {
		assert.Equal(t, RiskHigh, r.Risk)
		assert.True(t, r.PeakHour, "18:30 is inside the evening peak window")
		assert.Contains(t, r.WeatherNote, "Rain")
	}

	// Risk scores: B=50.0, A=83.3, C=66.7; mean 66.7.
	assert.Equal(t, 50.0, summary.Routes[0].RiskScore)
	assert.Equal(t, 83.3, summary.Routes[1].RiskScore)
	assert.Equal(t, 66.7, summary.Routes[2].RiskScore)
	assert.Equal(t, 66.7, summary.AverageRiskScore)

	assert.Equal(t, CongestionLight, summary.Routes[0].CongestionLevel)
	assert.Equal(t, CongestionModerate, summary.Routes[1].CongestionLevel)
	assert.Equal(t, CongestionLight, summary.TopCongestionLevel)

	// Three routes but severity 3: Medium, not High.
	assert.Equal(t, ConfidenceMedium, summary.Confidence)
	assert.True(t, summary.PeakHour)

	// The model saw one row per candidate in the declared column order.
	assert.Equal(t, domain.FeatureNames, m.gotNames)
	require.Len(t, m.gotRows, 3)
	assert.Equal(t, 12.0, m.gotRows[0][0])
}

func TestEvaluateUnknownWeatherNeverReachesModel(t *testing.T) {
	m := &stubModel{delays: []float64{1}}
	svc := evaluationService(m)

	tc := domain.TravelContext{TravelDay: "Monday", TravelTime: "10:00", Weather: "Hailstorm"}
	_, err := svc.Evaluate(context.Background(), tc, []domain.RouteCandidate{{Name: "A"}})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnknownWeather, apperr.CodeOf(err))
	assert.Zero(t, m.calls)
}

func TestEvaluateNoCandidates(t *testing.T) {
	svc := evaluationService(&stubModel{})

	tc := domain.TravelContext{TravelDay: "Monday", TravelTime: "10:00", Weather: domain.WeatherClear}
	_, err := svc.Evaluate(context.Background(), tc, nil)

	require.Error(t, err)
	assert.Equal(t, apperr.CodeNoRoute, apperr.CodeOf(err))
}

func TestEvaluateModelFailureAbortsRequest(t *testing.T) {
	m := &stubModel{err: apperr.New(apperr.CodePredictionFailed, "model inference failed")}
	svc := evaluationService(m)

	tc := domain.TravelContext{TravelDay: "Monday", TravelTime: "10:00", Weather: domain.WeatherClear}
	_, err := svc.Evaluate(context.Background(), tc, []domain.RouteCandidate{{Name: "A"}})

	require.Error(t, err)
	assert.Equal(t, apperr.CodePredictionFailed, apperr.CodeOf(err))
}

func TestPredictTripWiresCollaborators(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string]domain.Coordinates{
		"Downtown": {Lat: 40.71, Lon: -74.0},
		"Uptown":   {Lat: 40.78, Lon: -73.96},
	}}
	provider := &stubProvider{routes: []domain.RouteCandidate{
		{Name: "Route 1", DistanceKM: 8, BaseDurationMin: 22},
		{Name: "Route 2", DistanceKM: 9.5, BaseDurationMin: 25},
	}}
	m := &stubModel{delays: []float64{3, 1}}

	svc := &PredictionService{
		Geocoder:        geocoder,
		Provider:        provider,
		Model:           m,
		Defaults:        domain.FeatureDefaults{Density: 50, Lanes: 3, Signals: 5},
		MaxAlternatives: 3,
	}

	summary, err := svc.PredictTrip(context.Background(), TripQuery{
		Source:      "Downtown",
		Destination: "Uptown",
		TravelDay:   "Tuesday",
		TravelTime:  "08:15",
		Weather:     domain.WeatherClear,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinates{Lat: 40.71, Lon: -74.0}, provider.gotOrigin)
	assert.Equal(t, domain.Coordinates{Lat: 40.78, Lon: -73.96}, provider.gotDestination)
	assert.Equal(t, 3, provider.gotMax)

	require.Len(t, summary.Routes, 2)
	assert.Equal(t, "Route 1", summary.Routes[0].Name, "final time 25 ranks ahead of 26")
	assert.True(t, summary.Routes[0].PeakHour, "08:15 is inside the morning peak window")
}

func TestPredictTripGeocodeFailurePropagates(t *testing.T) {
	svc := &PredictionService{
		Geocoder:        &stubGeocoder{coords: map[string]domain.Coordinates{}},
		Provider:        &stubProvider{},
		Model:           &stubModel{},
		MaxAlternatives: 3,
	}

	_, err := svc.PredictTrip(context.Background(), TripQuery{
		Source:      "Nowhere",
		Destination: "Elsewhere",
		TravelDay:   "Monday",
		TravelTime:  "10:00",
		Weather:     domain.WeatherClear,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeLocationNotFound, apperr.CodeOf(err))
}
