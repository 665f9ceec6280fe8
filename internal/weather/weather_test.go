package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const forecastJSON = `{
  "current": {"temperature_2m": 71.6, "wind_speed_10m": 8.4, "rain": 0.02, "weather_code": 61},
  "daily": {
    "temperature_2m_max": [84.5, 80.1, 79.0],
    "temperature_2m_min": [62.4, 60.0, 58.3],
    "precipitation_sum": [0.31, 0.4, null]
  }
}`

func TestClientCurrent(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{}
		for k := range q {
			gotQuery[k] = q.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastJSON))
	}))
	defer srv.Close()

	fixed := time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)
	c := NewClient(srv.URL, time.Second)
	c.now = func() time.Time { return fixed }

	snap, err := c.Current(context.Background(), 32.78, -96.8)
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	wantQuery := map[string]string{
		"latitude":           "32.78",
		"longitude":          "-96.8",
		"temperature_unit":   "fahrenheit",
		"wind_speed_unit":    "mph",
		"precipitation_unit": "inch",
		"timezone":           "auto",
		"forecast_days":      "3",
	}
	for k, v := range wantQuery {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if !strings.Contains(gotQuery["current"], "weather_code") {
		t.Errorf("current fields = %q", gotQuery["current"])
	}

	if snap.TemperatureF != 72 || snap.WindSpeedMph != 8 {
		t.Errorf("temp/wind = %v/%v, want 72/8", snap.TemperatureF, snap.WindSpeedMph)
	}
	if !snap.IsRaining {
		t.Error("IsRaining = false with current rain > 0")
	}
	if snap.RainTodayInches != 0.31 {
		t.Errorf("RainTodayInches = %v, want 0.31", snap.RainTodayInches)
	}
	if got := snap.RainNext48hInches; got < 0.709 || got > 0.711 {
		t.Errorf("RainNext48hInches = %v, want 0.71", got)
	}
	if snap.HighTodayF != 85 || snap.LowTodayF != 62 {
		t.Errorf("high/low = %v/%v, want 85/62", snap.HighTodayF, snap.LowTodayF)
	}
	if snap.Conditions != "Rain" {
		t.Errorf("Conditions = %q, want Rain", snap.Conditions)
	}
	if !snap.FetchedAt.Equal(fixed) {
		t.Errorf("FetchedAt = %v, want %v", snap.FetchedAt, fixed)
	}
}

func TestClientMissingDailyValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current": {"temperature_2m": 60, "wind_speed_10m": 3, "rain": 0, "weather_code": 0}, "daily": {}}`))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL, time.Second).Current(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if snap.RainTodayInches != 0 || snap.RainNext48hInches != 0 || snap.IsRaining {
		t.Errorf("missing precipitation not treated as dry: %+v", snap)
	}
	if snap.Conditions != "Clear" {
		t.Errorf("Conditions = %q, want Clear", snap.Conditions)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "api reason",
			status:  http.StatusBadRequest,
			body:    `{"error": true, "reason": "Latitude must be in range of -90 to 90°."}`,
			wantMsg: "Latitude must be in range",
		},
		{
			name:    "bare status",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantMsg: "unexpected status code: 502",
		},
		{
			name:    "bad json",
			status:  http.StatusOK,
			body:    `{"current":`,
			wantMsg: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Current(context.Background(), 0, 0)
			if err == nil {
				t.Fatal("Current() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCodeText(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear"},
		{1, "Partly Cloudy"},
		{3, "Partly Cloudy"},
		{45, "Foggy"},
		{48, "Foggy"},
		{51, "Drizzle"},
		{63, "Rain"},
		{66, "Freezing Rain"},
		{71, "Snow"},
		{80, "Rain Showers"},
		{85, "Snow Showers"},
		{90, "Unknown"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm"},
	}

	for _, tt := range tests {
		if got := CodeText(tt.code); got != tt.want {
			t.Errorf("CodeText(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
