// Package lawn composes the engine packages over a storage provider. The CLI,
// TUI and API server all go through a Service.
package lawn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lawnlog/internal/advisory"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/dayindex"
	"github.com/julianstephens/lawnlog/internal/growth"
	"github.com/julianstephens/lawnlog/internal/logger"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/schedule"
	"github.com/julianstephens/lawnlog/internal/stats"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/utils"
	"github.com/julianstephens/lawnlog/internal/weather"
)

var ErrUnknownTask = errors.New("unknown task")

type Service struct {
	Store storage.Provider
	// Weather overrides the forecast source built from settings.
	Weather weather.Source
	// Now overrides the wall clock.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{Store: store}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Settings() (models.Settings, error) {
	settings, err := s.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Location returns the configured timezone.
func (s *Service) Location() (*time.Location, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return loc, nil
}

// Today returns the current instant in the configured timezone.
func (s *Service) Today() (time.Time, error) {
	loc, err := s.Location()
	if err != nil {
		return time.Time{}, err
	}
	return s.now().In(loc), nil
}

// ParseDay parses YYYY-MM-DD in the configured timezone. An empty string
// yields Today.
func (s *Service) ParseDay(day string) (time.Time, error) {
	if day == "" {
		return s.Today()
	}
	loc, err := s.Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := utils.ParseDateInLocation(day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// Calendar loads the configured season file, falling back to the built-in
// season for the year of now.
func (s *Service) Calendar(now time.Time) (*schedule.Calendar, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	if settings.SeasonFile != "" {
		cal, err := schedule.LoadFile(settings.SeasonFile, now.Location())
		if err != nil {
			return nil, err
		}
		return cal, nil
	}
	return schedule.Default(now.Year(), now.Location()), nil
}

func (s *Service) Completions() (schedule.CompletionSet, error) {
	keys, err := storage.CompletedKeys(s.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to get task completions: %w", err)
	}
	return schedule.NewCompletionSet(keys...), nil
}

// Schedule returns the season's tasks annotated for now.
func (s *Service) Schedule(now time.Time) ([]schedule.Entry, error) {
	cal, err := s.Calendar(now)
	if err != nil {
		return nil, err
	}
	done, err := s.Completions()
	if err != nil {
		return nil, err
	}
	return cal.Entries(now, done), nil
}

func (s *Service) NextStep(now time.Time) (schedule.Step, error) {
	cal, err := s.Calendar(now)
	if err != nil {
		return schedule.Step{}, err
	}
	return cal.NextStep(now), nil
}

// ToggleTask flips the completion of a task in the current season.
func (s *Service) ToggleTask(key string, now time.Time) (bool, error) {
	cal, err := s.Calendar(now)
	if err != nil {
		return false, err
	}
	if _, ok := cal.Task(key); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, key)
	}
	done, err := storage.ToggleCompletion(s.Store, key, s.now())
	if err != nil {
		return false, fmt.Errorf("failed to toggle task: %w", err)
	}
	logger.Debug("Toggled task", "key", key, "done", done)
	return done, nil
}

func (s *Service) weatherSource(settings models.Settings) weather.Source {
	if s.Weather != nil {
		return s.Weather
	}
	client := weather.NewClient(constants.OpenMeteoEndpoint, constants.WeatherTimeout)
	maxAge := time.Duration(settings.WeatherRefreshMin) * time.Minute
	return weather.NewCachedSource(client, s.Store, maxAge)
}

// Forecast fetches the current conditions for the configured location.
func (s *Service) Forecast(ctx context.Context) (models.WeatherSnapshot, error) {
	settings, err := s.Settings()
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	return s.weatherSource(settings).Current(ctx, settings.Latitude, settings.Longitude)
}

// RefreshForecast fetches conditions bypassing the cache and stores them.
func (s *Service) RefreshForecast(ctx context.Context) (models.WeatherSnapshot, error) {
	settings, err := s.Settings()
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	src := s.weatherSource(settings)
	if cached, ok := src.(*weather.CachedSource); ok {
		return cached.Refresh(ctx, settings.Latitude, settings.Longitude)
	}
	return src.Current(ctx, settings.Latitude, settings.Longitude)
}

// Advice evaluates the advisory engine against the current forecast.
func (s *Service) Advice(ctx context.Context) (models.WeatherSnapshot, advisory.Result, error) {
	w, err := s.Forecast(ctx)
	if err != nil {
		return models.WeatherSnapshot{}, advisory.Result{}, err
	}
	return w, advisory.Evaluate(w), nil
}

// Dashboard is the at-a-glance view of the lawn on one day.
type Dashboard struct {
	Date     string                  `json:"date"`
	Phase    growth.Info             `json:"phase"`
	Tip      string                  `json:"tip"`
	NextStep schedule.Step           `json:"next_step"`
	Weather  *models.WeatherSnapshot `json:"weather,omitempty"`
	Advice   *advisory.Result        `json:"advice,omitempty"`
	// WeatherError is set when the forecast could not be fetched; the rest of
	// the dashboard is still valid.
	WeatherError string        `json:"weather_error,omitempty"`
	LastMow      stats.Cadence `json:"last_mow"`
}

func (s *Service) Dashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	step, err := s.NextStep(now)
	if err != nil {
		return Dashboard{}, err
	}
	d := Dashboard{
		Date:     now.Format(constants.DateFormat),
		Phase:    growth.Classify(now),
		Tip:      growth.QuickTip(now),
		NextStep: step,
	}

	cadence, err := s.Cadence(now)
	if err != nil {
		return Dashboard{}, err
	}
	for _, c := range cadence {
		if c.Type == models.ActivityMow {
			d.LastMow = c
		}
	}

	w, result, err := s.Advice(ctx)
	if err != nil {
		logger.Warn("Weather unavailable", "error", err)
		d.WeatherError = err.Error()
		return d, nil
	}
	d.Weather = &w
	d.Advice = &result
	return d, nil
}

// LogActivity validates and stores a new activity.
func (s *Service) LogActivity(typ models.ActivityType, day, notes string) (models.Activity, error) {
	if err := typ.Validate(); err != nil {
		return models.Activity{}, err
	}
	if day == "" {
		today, err := s.Today()
		if err != nil {
			return models.Activity{}, err
		}
		day = today.Format(constants.DateFormat)
	}
	a := models.Activity{
		ID:        uuid.New().String(),
		Type:      typ,
		Date:      day,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.now(),
	}
	if err := a.Validate(); err != nil {
		return models.Activity{}, err
	}
	if err := s.Store.AddActivity(a); err != nil {
		return models.Activity{}, err
	}
	logger.Info("Logged activity", "type", a.Type, "date", a.Date)
	return a, nil
}

// MonthIndex builds the day index covering the visible grid of month.
func (s *Service) MonthIndex(month time.Time) (dayindex.Index, error) {
	first := utils.StartOfMonth(month)
	last := first.AddDate(0, 1, -1)
	acts, err := s.Store.GetActivities(
		first.Format(constants.DateFormat), last.Format(constants.DateFormat), false,
	)
	if err != nil {
		return dayindex.Index{}, fmt.Errorf("failed to get activities: %w", err)
	}
	return dayindex.Build(acts), nil
}

// Cadence summarizes every live activity up to now.
func (s *Service) Cadence(now time.Time) ([]stats.Cadence, error) {
	acts, err := s.Store.GetAllActivities(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	return stats.Compute(acts, now), nil
}
