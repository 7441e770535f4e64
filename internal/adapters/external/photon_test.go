package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/domain"
)

// memGeocodeCache is an in-process GeocodeCache for tests.
type memGeocodeCache struct {
	entries map[string]domain.Coordinates
}

func newMemGeocodeCache() *memGeocodeCache {
	return &memGeocodeCache{entries: map[string]domain.Coordinates{}}
}

func (c *memGeocodeCache) Get(_ context.Context, place string) (domain.Coordinates, bool, error) {
	coords, ok := c.entries[place]
	return coords, ok, nil
}

func (c *memGeocodeCache) Put(_ context.Context, place string, coords domain.Coordinates) error {
	c.entries[place] = coords
	return nil
}

func noSleep(time.Duration) {}

func photonPayload(lon, lat float64) string {
	return `{"features":[{"geometry":{"coordinates":[` +
		coord(lon) + `,` + coord(lat) + `]}}]}`
}

func TestPhotonResolveResolvesAndFlipsCoordinates(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query().Get("q"))
		w.Write([]byte(photonPayload(28.9784, 41.0082)))
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL, time.Second, nil, WithSleepFunc(noSleep))

	coords, err := g.Resolve(context.Background(), "  Istanbul   Center ")
	require.NoError(t, err)
	assert.InDelta(t, 41.0082, coords.Lat, 1e-9)
	assert.InDelta(t, 28.9784, coords.Lon, 1e-9)
	assert.Equal(t, "istanbul center", gotQuery.Load())
}

func TestPhotonResolveNoMatchIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL, time.Second, nil, WithSleepFunc(noSleep))

	_, err := g.Resolve(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeLocationNotFound, apperr.CodeOf(err))
}

func TestPhotonResolveEmptyPlaceIsValidation(t *testing.T) {
	g := NewPhotonGeocoder("http://unused.invalid", time.Second, nil)

	_, err := g.Resolve(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestPhotonResolveRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(photonPayload(2.35, 48.85)))
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL, time.Second, nil, WithSleepFunc(noSleep))

	coords, err := g.Resolve(context.Background(), "Paris")
	require.NoError(t, err)
	assert.InDelta(t, 48.85, coords.Lat, 1e-9)
	assert.EqualValues(t, 3, calls.Load())
}

func TestPhotonResolveExhaustedRetriesAreUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewPhotonGeocoder(srv.URL, time.Second, nil, WithSleepFunc(noSleep), WithMaxAttempts(2))

	_, err := g.Resolve(context.Background(), "Paris")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeServiceUnavailable, apperr.CodeOf(err))
}

func TestPhotonResolveServesFromCache(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(photonPayload(13.4, 52.52)))
	}))
	defer srv.Close()

	cache := newMemGeocodeCache()
	g := NewPhotonGeocoder(srv.URL, time.Second, cache, WithSleepFunc(noSleep))

	first, err := g.Resolve(context.Background(), "Berlin")
	require.NoError(t, err)

	second, err := g.Resolve(context.Background(), "  BERLIN ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load(), "second lookup must hit the cache")
}
