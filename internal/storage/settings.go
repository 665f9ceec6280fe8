package storage

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/utils"
)

// DefaultSettings returns the settings written by Init.
func DefaultSettings() models.Settings {
	return models.Settings{
		Latitude:          constants.DefaultLatitude,
		Longitude:         constants.DefaultLongitude,
		Timezone:          constants.DefaultTimezone,
		WeatherRefreshMin: constants.DefaultWeatherRefreshMin,
	}
}

// SettingKeys lists the persisted keys in display order.
var SettingKeys = []string{
	constants.SettingLatitude,
	constants.SettingLongitude,
	constants.SettingTimezone,
	constants.SettingWeatherRefreshMin,
	constants.SettingDiagnosisEndpoint,
	constants.SettingSeasonFile,
}

// SettingsToPairs flattens settings into key/value rows.
func SettingsToPairs(s models.Settings) [][2]string {
	return [][2]string{
		{constants.SettingLatitude, strconv.FormatFloat(s.Latitude, 'f', -1, 64)},
		{constants.SettingLongitude, strconv.FormatFloat(s.Longitude, 'f', -1, 64)},
		{constants.SettingTimezone, s.Timezone},
		{constants.SettingWeatherRefreshMin, strconv.Itoa(s.WeatherRefreshMin)},
		{constants.SettingDiagnosisEndpoint, s.DiagnosisEndpoint},
		{constants.SettingSeasonFile, s.SeasonFile},
	}
}

// ApplySetting validates value and stores it into the matching field.
// Unknown keys are rejected.
func ApplySetting(s *models.Settings, key, value string) error {
	switch key {
	case constants.SettingLatitude:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q (expected -90 to 90)", value)
		}
		s.Latitude = v
	case constants.SettingLongitude:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q (expected -180 to 180)", value)
		}
		s.Longitude = v
	case constants.SettingTimezone:
		if !utils.ValidateTimezone(value) {
			return fmt.Errorf("invalid timezone %q", value)
		}
		s.Timezone = value
	case constants.SettingWeatherRefreshMin:
		v, err := strconv.Atoi(value)
		if err != nil || v < 1 {
			return fmt.Errorf("invalid weather refresh %q (expected whole minutes, at least 1)", value)
		}
		s.WeatherRefreshMin = v
	case constants.SettingDiagnosisEndpoint:
		s.DiagnosisEndpoint = value
	case constants.SettingSeasonFile:
		s.SeasonFile = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// SettingsFromPairs rebuilds settings from stored rows, starting from the
// defaults so that keys added in later versions fall back sensibly.
func SettingsFromPairs(pairs map[string]string) (models.Settings, error) {
	if len(pairs) == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", ErrNotFound)
	}
	s := DefaultSettings()
	for _, key := range SettingKeys {
		value, ok := pairs[key]
		if !ok {
			continue
		}
		// empty optional strings are valid; skip empty numerics
		if value == "" && key != constants.SettingDiagnosisEndpoint && key != constants.SettingSeasonFile {
			continue
		}
		if err := ApplySetting(&s, key, value); err != nil {
			return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}
	return s, nil
}
