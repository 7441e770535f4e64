package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/platform/obs"
	"traffic-prediction-service/internal/ports"
)

// TripQuery is a travel request with unresolved place names.
type TripQuery struct {
	Source      string
	Destination string
	TravelDay   string
	TravelTime  string
	Weather     domain.Weather

	VehicleType        string
	UrgencyLevel       string
	PreferredRouteType string
}

// PredictionService orchestrates geocoding, route fetching and the evaluation
// pipeline. All fields are read-only after construction; the service is safe
// for concurrent use.
type PredictionService struct {
	Geocoder        ports.Geocoder
	Provider        ports.RouteProvider
	Model           ports.DelayModel
	Defaults        domain.FeatureDefaults
	MaxAlternatives int
}

// PredictTrip resolves both endpoints, fetches alternative routes and runs
// the evaluation pipeline. Any stage failure aborts the whole request; there
// is no partial-result mode.
func (s *PredictionService) PredictTrip(ctx context.Context, trip TripQuery) (_ *domain.PredictionSummary, err error) {
	defer obs.Time(ctx, "prediction.PredictTrip")(&err)

	var origin, destination domain.Coordinates

	// The two endpoints are independent lookups; resolve them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		origin, err = s.Geocoder.Resolve(gctx, trip.Source)
		if err != nil {
			return fmt.Errorf("resolve source %q: %w", trip.Source, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		destination, err = s.Geocoder.Resolve(gctx, trip.Destination)
		if err != nil {
			return fmt.Errorf("resolve destination %q: %w", trip.Destination, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("predict trip: %w", err)
	}

	candidates, err := s.Provider.Fetch(ctx, origin, destination, s.MaxAlternatives)
	if err != nil {
		return nil, fmt.Errorf("predict trip: fetch routes: %w", err)
	}

	tc := domain.TravelContext{
		Origin:             origin,
		Destination:        destination,
		TravelDay:          trip.TravelDay,
		TravelTime:         trip.TravelTime,
		Weather:            trip.Weather,
		VehicleType:        trip.VehicleType,
		UrgencyLevel:       trip.UrgencyLevel,
		PreferredRouteType: trip.PreferredRouteType,
	}

	summary, err := s.Evaluate(ctx, tc, candidates)
	if err != nil {
		return nil, fmt.Errorf("predict trip: %w", err)
	}
	return summary, nil
}

// Evaluate runs the core pipeline over an already-resolved context: feature
// construction, delay prediction, ranking, risk/congestion labeling,
// confidence estimation and context annotation.
func (s *PredictionService) Evaluate(
	ctx context.Context,
	tc domain.TravelContext,
	candidates []domain.RouteCandidate,
) (*domain.PredictionSummary, error) {
	if len(candidates) == 0 {
		return nil, apperr.New(apperr.CodeNoRoute, "no candidate routes to evaluate")
	}

	severity, err := tc.Weather.Severity()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknownWeather, fmt.Sprintf("unknown weather category %q", tc.Weather), err)
	}

	vectors, err := BuildFeatures(candidates, tc.TravelTime, tc.TravelDay, severity, s.Defaults)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	rows := make([][]float64, 0, len(vectors))
	for _, v := range vectors {
		rows = append(rows, v.Vector())
	}

	delays, err := s.Model.Predict(ctx, domain.FeatureNames, rows)
	if err != nil {
		return nil, fmt.Errorf("evaluate: predict delays: %w", err)
	}
	if len(delays) != len(candidates) {
		return nil, apperr.Newf(apperr.CodePredictionFailed, "model returned %d delays for %d routes", len(delays), len(candidates))
	}

	ranked, err := RankRoutes(candidates, delays)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	// Confidence is computed over the sorted delay sequence, after ranking,
	// so its indexes line up with the ranked routes.
	sortedDelays := make([]float64, 0, len(ranked))
	for _, r := range ranked {
		sortedDelays = append(sortedDelays, r.PredictedDelay)
	}
	confidences := RouteConfidences(sortedDelays)

	// ParseHour cannot fail here: BuildFeatures already parsed the same value.
	hour, _ := ParseHour(tc.TravelTime)
	peak := IsPeakHour(hour)
	note := WeatherNote(severity)

	riskTotal := 0.0
	for i := range ranked {
		ranked[i].Risk = RiskLabel(ranked[i].PredictedDelay, severity)
		ranked[i].RiskScore = RiskScore(ranked[i].PredictedDelay, severity)
		ranked[i].CongestionLevel = CongestionLevel(ranked[i].PredictedDelay)
		ranked[i].Confidence = confidences[i]
		ranked[i].PeakHour = peak
		ranked[i].WeatherNote = note
		riskTotal += ranked[i].RiskScore
	}

	return &domain.PredictionSummary{
		Routes:             ranked,
		Confidence:         OverallConfidence(len(ranked), severity),
		AverageRiskScore:   round1(riskTotal / float64(len(ranked))),
		TopCongestionLevel: ranked[0].CongestionLevel,
		PeakHour:           peak,
		WeatherNote:        note,
	}, nil
}
