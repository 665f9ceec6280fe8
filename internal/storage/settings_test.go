package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lawnlog/internal/constants"
)

func TestSettingsPairsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Latitude = 40.7128
	s.Longitude = -74.006
	s.Timezone = "UTC"
	s.WeatherRefreshMin = 45
	s.DiagnosisEndpoint = "https://example.test/functions/v1/diagnose-lawn"

	pairs := make(map[string]string)
	for _, kv := range SettingsToPairs(s) {
		pairs[kv[0]] = kv[1]
	}
	got, err := SettingsFromPairs(pairs)
	if err != nil {
		t.Fatalf("SettingsFromPairs() error: %v", err)
	}
	if got != s {
		t.Errorf("SettingsFromPairs() = %+v, want %+v", got, s)
	}
}

func TestSettingsFromPairsDefaultsMissingKeys(t *testing.T) {
	got, err := SettingsFromPairs(map[string]string{constants.SettingLatitude: "10"})
	if err != nil {
		t.Fatalf("SettingsFromPairs() error: %v", err)
	}
	if got.Latitude != 10 || got.Longitude != constants.DefaultLongitude || got.WeatherRefreshMin != constants.DefaultWeatherRefreshMin {
		t.Errorf("SettingsFromPairs() = %+v", got)
	}

	if _, err := SettingsFromPairs(nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("SettingsFromPairs(nil) = %v, want ErrNotFound", err)
	}
}

func TestApplySetting(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr string
	}{
		{constants.SettingLatitude, "45.5", ""},
		{constants.SettingLatitude, "91", "invalid latitude"},
		{constants.SettingLongitude, "-181", "invalid longitude"},
		{constants.SettingLongitude, "east", "invalid longitude"},
		{constants.SettingTimezone, "UTC", ""},
		{constants.SettingTimezone, "Mars/Olympus", "invalid timezone"},
		{constants.SettingWeatherRefreshMin, "0", "invalid weather refresh"},
		{constants.SettingWeatherRefreshMin, "15", ""},
		{constants.SettingSeasonFile, "", ""},
		{"color", "green", "unknown setting"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := DefaultSettings()
			err := ApplySetting(&s, tt.key, tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ApplySetting() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ApplySetting() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormatTimeSortsLexically(t *testing.T) {
	a := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)
	b := a.Add(500 * time.Millisecond)
	if !(FormatTime(a) < FormatTime(b)) {
		t.Errorf("FormatTime(%v)=%s not before FormatTime(%v)=%s", a, FormatTime(a), b, FormatTime(b))
	}
	parsed, err := ParseTime(FormatTime(b))
	if err != nil || !parsed.Equal(b) {
		t.Errorf("ParseTime(FormatTime()) = %v, %v", parsed, err)
	}
}
