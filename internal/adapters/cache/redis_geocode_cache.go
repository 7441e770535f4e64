// Package cache provides Redis-backed caching for resolved geocodes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/platform/obs"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores place-to-coordinates lookups in Redis with a TTL.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

// Get returns the cached coordinates for place, reporting a miss through the
// second return value.
func (c *RedisGeocodeCache) Get(ctx context.Context, place string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.get")(&err)

	if c.client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: client is nil")
	}

	raw, err := c.client.Get(ctx, geocodeKeyPrefix+place).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache get %q: %w", place, err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache decode %q: %w", place, err)
	}
	return coords, true, nil
}

// Put stores the coordinates for place for the configured TTL.
func (c *RedisGeocodeCache) Put(ctx context.Context, place string, coords domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.put")(&err)

	if c.client == nil {
		return errors.New("geocode cache: client is nil")
	}

	raw, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("geocode cache encode %q: %w", place, err)
	}

	if err := c.client.Set(ctx, geocodeKeyPrefix+place, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("geocode cache set %q: %w", place, err)
	}
	return nil
}
