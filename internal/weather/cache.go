package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/julianstephens/lawnlog/internal/logger"
	"github.com/julianstephens/lawnlog/internal/models"
)

// ErrStale accompanies a cached snapshot returned after a forced refresh
// failed. The snapshot is still usable but older than requested.
var ErrStale = errors.New("weather refresh failed, showing cached conditions")

// Cache persists encoded snapshots keyed by location.
type Cache interface {
	GetWeatherCache(key string) ([]byte, time.Time, error)
	SaveWeatherCache(key string, payload []byte, fetchedAt time.Time) error
}

// CachedSource serves snapshots from a Cache while they are fresher than
// MaxAge and falls back to a stale entry when the upstream fetch fails.
type CachedSource struct {
	source Source
	cache  Cache
	maxAge time.Duration
	now    func() time.Time
}

func NewCachedSource(source Source, cache Cache, maxAge time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// CacheKey identifies a location to two decimal places (about 1 km).
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

func (c *CachedSource) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	return c.current(ctx, lat, lon, false)
}

// Refresh bypasses the freshness check and always asks the upstream source.
// When the fetch fails and a cached entry exists, that entry is returned
// together with an error wrapping ErrStale.
func (c *CachedSource) Refresh(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	return c.current(ctx, lat, lon, true)
}

func (c *CachedSource) current(ctx context.Context, lat, lon float64, force bool) (models.WeatherSnapshot, error) {
	log := logger.With("weather")
	key := CacheKey(lat, lon)

	cached, hit := c.load(key)
	if hit && !force && c.now().Sub(cached.FetchedAt) < c.maxAge {
		log.Debug("weather cache hit", "key", key, "fetched_at", cached.FetchedAt)
		return cached, nil
	}

	snap, err := c.source.Current(ctx, lat, lon)
	if err != nil {
		if hit {
			log.Warn("weather fetch failed, serving stale snapshot", "key", key, "error", err, "forced", force)
			if force {
				return cached, fmt.Errorf("%w (fetched %s): %w", ErrStale, cached.FetchedAt.Format(time.RFC3339), err)
			}
			return cached, nil
		}
		return models.WeatherSnapshot{}, err
	}

	payload, err := msgpack.Marshal(&snap)
	if err != nil {
		log.Warn("failed to encode weather snapshot", "error", err)
		return snap, nil
	}
	if err := c.cache.SaveWeatherCache(key, payload, snap.FetchedAt); err != nil {
		log.Warn("failed to save weather cache", "key", key, "error", err)
	}
	return snap, nil
}

func (c *CachedSource) load(key string) (models.WeatherSnapshot, bool) {
	payload, fetchedAt, err := c.cache.GetWeatherCache(key)
	if err != nil {
		return models.WeatherSnapshot{}, false
	}
	var snap models.WeatherSnapshot
	if err := msgpack.Unmarshal(payload, &snap); err != nil {
		logger.With("weather").Warn("discarding unreadable weather cache entry", "key", key, "error", err)
		return models.WeatherSnapshot{}, false
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = fetchedAt
	}
	return snap, true
}
