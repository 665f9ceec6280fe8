package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/Chicago",
			timezone: "America/Chicago",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, time.April, 9, 17, 42, 3, 99, time.UTC)
	got := StartOfDay(in)
	want := time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := ParseDateInLocation("2026-03-15", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Location() != loc || got.Hour() != 0 || got.Day() != 15 {
		t.Errorf("ParseDateInLocation() = %v, want midnight Mar 15 in %s", got, loc)
	}

	if _, err := ParseDateInLocation("03/15/2026", loc); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestParseMonthInLocation(t *testing.T) {
	got, err := ParseMonthInLocation("2026-02", time.UTC)
	if err != nil {
		t.Fatalf("ParseMonthInLocation() error = %v", err)
	}
	want := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseMonthInLocation() = %v, want %v", got, want)
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") {
		t.Error("expected Local to be valid")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("expected invalid timezone to be rejected")
	}
}
