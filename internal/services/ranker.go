package services

import (
	"fmt"
	"sort"

	"traffic-prediction-service/internal/domain"
)

// RankRoutes merges each candidate with its predicted delay, orders the
// result ascending by final time and assigns dense 1-based ranks.
//
// The sort is stable: candidates with equal final times keep their original
// relative order. The rank-1 route, and only that route, is marked
// recommended. Risk/congestion/confidence fields are filled by the caller.
func RankRoutes(candidates []domain.RouteCandidate, delays []float64) ([]domain.RankedRoute, error) {
	if len(candidates) != len(delays) {
		return nil, fmt.Errorf("rank routes: %d candidates but %d delays", len(candidates), len(delays))
	}

	ranked := make([]domain.RankedRoute, 0, len(candidates))
	for i, c := range candidates {
		ranked = append(ranked, domain.RankedRoute{
			Name:            c.Name,
			DistanceKM:      c.DistanceKM,
			BaseDurationMin: c.BaseDurationMin,
			PredictedDelay:  delays[i],
			FinalTime:       round2(c.BaseDurationMin + delays[i]),
			Geometry:        c.Geometry,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalTime < ranked[j].FinalTime
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Recommended = i == 0
	}

	return ranked, nil
}
