package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lawnlog/internal/storage"
)

func (s *Store) GetWeatherCache(key string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt string
	err := s.db.QueryRow(
		"SELECT payload, fetched_at FROM weather_cache WHERE location_key = ?", key,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("weather cache %s: %w", key, storage.ErrNotFound)
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	t, err := storage.ParseTime(fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("weather cache %s: invalid fetched_at: %w", key, err)
	}
	return payload, t, nil
}

func (s *Store) SaveWeatherCache(key string, payload []byte, fetchedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO weather_cache (location_key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(location_key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, payload, storage.FormatTime(fetchedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save weather cache: %w", err)
	}
	return nil
}
