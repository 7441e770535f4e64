package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/platform/obs"
	"traffic-prediction-service/internal/ports"
)

// GeocodeCache is a read-through cache for resolved place names. Implemented
// by the Redis adapter; nil disables caching.
type GeocodeCache interface {
	Get(ctx context.Context, place string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, place string, coords domain.Coordinates) error
}

// PhotonGeocoder resolves free-text place names against a Photon instance.
type PhotonGeocoder struct {
	client  *Client
	baseURL string
	cache   GeocodeCache
}

var _ ports.Geocoder = (*PhotonGeocoder)(nil)

// NewPhotonGeocoder builds a geocoder for the given Photon base URL. cache
// may be nil.
func NewPhotonGeocoder(baseURL string, timeout time.Duration, cache GeocodeCache, opts ...Option) *PhotonGeocoder {
	return &PhotonGeocoder{
		client:  NewClient("photon", timeout, opts...),
		baseURL: baseURL,
		cache:   cache,
	}
}

// photonResponse covers the subset of the GeoJSON payload we read. Photon
// returns coordinates as [lon, lat].
type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Resolve geocodes place to coordinates, serving from cache when possible.
func (g *PhotonGeocoder) Resolve(ctx context.Context, place string) (coords domain.Coordinates, err error) {
	defer obs.Time(ctx, "photon.resolve")(&err)

	norm := normalizePlace(place)
	if norm == "" {
		return domain.Coordinates{}, apperr.New(apperr.CodeValidation, "place must not be empty")
	}

	if g.cache != nil {
		cached, ok, cacheErr := g.cache.Get(ctx, norm)
		if cacheErr != nil {
			log.Printf("geocode cache read failed: %v", cacheErr)
		} else if ok {
			return cached, nil
		}
	}

	resp, err := g.client.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		q := url.Values{}
		q.Set("q", norm)
		q.Set("limit", "1")
		u := fmt.Sprintf("%s/api/?%s", g.baseURL, q.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return domain.Coordinates{}, unavailable("geocoding", err)
	}
	defer resp.Body.Close()

	var body photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, unavailable("geocoding", fmt.Errorf("decode response: %w", err))
	}

	if len(body.Features) == 0 {
		return domain.Coordinates{}, apperr.Newf(apperr.CodeLocationNotFound, "no match for %q", place)
	}
	lonLat := body.Features[0].Geometry.Coordinates
	if len(lonLat) < 2 {
		return domain.Coordinates{}, unavailable("geocoding", fmt.Errorf("malformed coordinates for %q", place))
	}

	coords = domain.Coordinates{Lat: lonLat[1], Lon: lonLat[0]}

	if g.cache != nil {
		if cacheErr := g.cache.Put(ctx, norm, coords); cacheErr != nil {
			log.Printf("geocode cache write failed: %v", cacheErr)
		}
	}
	return coords, nil
}
