package weather

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lawnlog/internal/models"
)

type memCache struct {
	payload   []byte
	fetchedAt time.Time
	saves     int
}

func (m *memCache) GetWeatherCache(key string) ([]byte, time.Time, error) {
	if m.payload == nil {
		return nil, time.Time{}, errors.New("not found")
	}
	return m.payload, m.fetchedAt, nil
}

func (m *memCache) SaveWeatherCache(key string, payload []byte, fetchedAt time.Time) error {
	m.payload = payload
	m.fetchedAt = fetchedAt
	m.saves++
	return nil
}

type stubSource struct {
	snap  models.WeatherSnapshot
	err   error
	calls int
}

func (s *stubSource) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	s.calls++
	return s.snap, s.err
}

func TestCachedSourceServesFreshEntry(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	src := &stubSource{snap: models.WeatherSnapshot{TemperatureF: 80, Conditions: "Clear", FetchedAt: now}}
	cache := &memCache{}

	cs := NewCachedSource(src, cache, 30*time.Minute)
	cs.now = func() time.Time { return now }

	first, err := cs.Current(context.Background(), 32.78, -96.8)
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if src.calls != 1 || cache.saves != 1 {
		t.Fatalf("first call: source calls %d, saves %d", src.calls, cache.saves)
	}

	cs.now = func() time.Time { return now.Add(29 * time.Minute) }
	second, err := cs.Current(context.Background(), 32.78, -96.8)
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("fresh cache entry not used: source called %d times", src.calls)
	}
	if second.TemperatureF != first.TemperatureF || second.Conditions != first.Conditions {
		t.Errorf("cached snapshot = %+v, want %+v", second, first)
	}
	if !second.FetchedAt.Equal(now) {
		t.Errorf("cached FetchedAt = %v, want %v", second.FetchedAt, now)
	}
}

func TestCachedSourceRefetchesStaleEntry(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	src := &stubSource{snap: models.WeatherSnapshot{TemperatureF: 80, FetchedAt: now}}
	cache := &memCache{}

	cs := NewCachedSource(src, cache, 30*time.Minute)
	cs.now = func() time.Time { return now }
	if _, err := cs.Current(context.Background(), 1, 1); err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	src.snap = models.WeatherSnapshot{TemperatureF: 90, FetchedAt: now.Add(31 * time.Minute)}
	cs.now = func() time.Time { return now.Add(31 * time.Minute) }
	got, err := cs.Current(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if src.calls != 2 || got.TemperatureF != 90 {
		t.Errorf("stale entry not refreshed: calls %d, temp %v", src.calls, got.TemperatureF)
	}
}

func TestCachedSourceFallsBackToStale(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	src := &stubSource{snap: models.WeatherSnapshot{TemperatureF: 75, FetchedAt: now}}
	cache := &memCache{}

	cs := NewCachedSource(src, cache, 30*time.Minute)
	cs.now = func() time.Time { return now }
	if _, err := cs.Current(context.Background(), 1, 1); err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	src.err = errors.New("network down")
	cs.now = func() time.Time { return now.Add(3 * time.Hour) }
	got, err := cs.Current(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("stale fallback returned error: %v", err)
	}
	if got.TemperatureF != 75 {
		t.Errorf("stale snapshot temp = %v, want 75", got.TemperatureF)
	}
}

func TestCachedSourceNoCacheError(t *testing.T) {
	src := &stubSource{err: errors.New("network down")}
	cs := NewCachedSource(src, &memCache{}, 30*time.Minute)
	if _, err := cs.Current(context.Background(), 1, 1); err == nil {
		t.Error("Current() with empty cache and failing source returned nil error")
	}
}

func TestCachedSourceRefresh(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	src := &stubSource{snap: models.WeatherSnapshot{TemperatureF: 70, FetchedAt: now}}
	cs := NewCachedSource(src, &memCache{}, time.Hour)
	cs.now = func() time.Time { return now }

	_, _ = cs.Current(context.Background(), 1, 1)
	if _, err := cs.Refresh(context.Background(), 1, 1); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("Refresh() did not bypass cache: calls = %d", src.calls)
	}
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey(32.7767, -96.797); got != "32.78,-96.80" {
		t.Errorf("CacheKey() = %q", got)
	}
}

func TestCachedSourceRefreshFailureReportsStale(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
	src := &stubSource{snap: models.WeatherSnapshot{TemperatureF: 70, FetchedAt: now}}
	cs := NewCachedSource(src, &memCache{}, time.Hour)
	cs.now = func() time.Time { return now }

	if _, err := cs.Current(context.Background(), 1, 1); err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	src.err = errors.New("network down")
	got, err := cs.Refresh(context.Background(), 1, 1)
	if !errors.Is(err, ErrStale) {
		t.Fatalf("Refresh() error = %v, want ErrStale", err)
	}
	if !strings.Contains(err.Error(), "network down") {
		t.Errorf("Refresh() error %q does not carry the fetch failure", err)
	}
	if got.TemperatureF != 70 || !got.FetchedAt.Equal(now) {
		t.Errorf("Refresh() snapshot = %+v, want the cached one", got)
	}
}

func TestCachedSourceRefreshFailureWithoutCache(t *testing.T) {
	src := &stubSource{err: errors.New("network down")}
	cs := NewCachedSource(src, &memCache{}, time.Hour)
	_, err := cs.Refresh(context.Background(), 1, 1)
	if err == nil || errors.Is(err, ErrStale) {
		t.Errorf("Refresh() error = %v, want the plain fetch error", err)
	}
}
