package external

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/platform/obs"
	"traffic-prediction-service/internal/ports"
)

// OSRMRouteProvider fetches driving route alternatives from an OSRM instance.
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	client  *Client
	baseURL string
	profile string
}

var _ ports.RouteProvider = (*OSRMRouteProvider)(nil)

// NewOSRMRouteProvider builds a provider for the given OSRM base URL.
func NewOSRMRouteProvider(baseURL string, timeout time.Duration, opts ...Option) *OSRMRouteProvider {
	return &OSRMRouteProvider{
		client:  NewClient("osrm", timeout, opts...),
		baseURL: baseURL,
		profile: "driving",
	}
}

// osrmResponse covers the subset of the OSRM route payload we read. Geometry
// coordinates arrive as [lon, lat], distance in meters, duration in seconds.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Summary string `json:"summary"`
		} `json:"legs"`
	} `json:"routes"`
}

// Fetch returns up to maxAlternatives route candidates between the endpoints.
func (p *OSRMRouteProvider) Fetch(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	maxAlternatives int,
) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, "osrm.fetch")(&err)

	if maxAlternatives < 1 {
		maxAlternatives = 1
	}

	resp, err := p.client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf(
			"%s/route/v1/%s/%s,%s;%s,%s?alternatives=true&overview=full&geometries=geojson",
			p.baseURL, p.profile,
			coord(origin.Lon), coord(origin.Lat),
			coord(destination.Lon), coord(destination.Lat),
		)
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, unavailable("routing", err)
	}
	defer resp.Body.Close()

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, unavailable("routing", fmt.Errorf("decode response: %w", err))
	}

	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, apperr.Newf(apperr.CodeNoRoute, "no route between endpoints (code=%s)", body.Code)
	}

	if len(body.Routes) > maxAlternatives {
		body.Routes = body.Routes[:maxAlternatives]
	}

	candidates := make([]domain.RouteCandidate, 0, len(body.Routes))
	for i, r := range body.Routes {
		name := ""
		if len(r.Legs) > 0 {
			name = r.Legs[0].Summary
		}
		if name == "" {
			name = fmt.Sprintf("Route %d", i+1)
		}

		geometry := make([]domain.Coordinates, 0, len(r.Geometry.Coordinates))
		for _, lonLat := range r.Geometry.Coordinates {
			if len(lonLat) < 2 {
				continue
			}
			geometry = append(geometry, domain.Coordinates{Lat: lonLat[1], Lon: lonLat[0]})
		}

		candidates = append(candidates, domain.RouteCandidate{
			Name:            name,
			DistanceKM:      round2(r.Distance / 1000),
			BaseDurationMin: round2(r.Duration / 60),
			Geometry:        geometry,
		})
	}
	return candidates, nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
