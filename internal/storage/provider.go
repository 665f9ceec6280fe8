package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/lawnlog/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load before `lawnlog init` has run
	ErrNotInitialized = errors.New("storage not initialized, run 'lawnlog init' first")
	// ErrAlreadyDeleted is returned when soft-deleting an already deleted record
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrNotDeleted is returned when restoring a record that is not deleted
	ErrNotDeleted = errors.New("not deleted")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Activities. Dates are YYYY-MM-DD; ranges are inclusive.
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetActivities(startDay, endDay string, includeDeleted bool) ([]models.Activity, error)
	GetAllActivities(includeDeleted bool) ([]models.Activity, error)
	DeleteActivity(id string) error
	RestoreActivity(id string) error

	// Task completions
	GetCompletions() ([]models.TaskCompletion, error)
	AddCompletion(models.TaskCompletion) error
	DeleteCompletion(taskKey string) error

	// Scans
	AddScan(models.Scan) error
	GetScan(id string) (models.Scan, error)
	GetScans(limit int) ([]models.Scan, error)

	// Weather cache
	GetWeatherCache(key string) ([]byte, time.Time, error)
	SaveWeatherCache(key string, payload []byte, fetchedAt time.Time) error

	// Utils
	GetConfigPath() string
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders timestamps the way every backend stores them.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime reads a timestamp written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
