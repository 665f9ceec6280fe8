// Package weather fetches current conditions from Open-Meteo and caches
// snapshots between refreshes.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
)

// Source supplies the current weather snapshot for a location.
type Source interface {
	Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error)
}

// Client queries the Open-Meteo forecast API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds a Client. An empty endpoint uses the public Open-Meteo API.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = constants.OpenMeteoEndpoint
	}
	if timeout <= 0 {
		timeout = constants.WeatherTimeout
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		Rain        float64 `json:"rain"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TemperatureMax []*float64 `json:"temperature_2m_max"`
		TemperatureMin []*float64 `json:"temperature_2m_min"`
		Precipitation  []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func (c *Client) requestURL(lat, lon float64) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid weather endpoint: %w", err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", "temperature_2m,wind_speed_10m,rain,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")
	q.Set("precipitation_unit", "inch")
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(constants.ForecastDays))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Current fetches and maps the forecast for lat/lon.
func (c *Client) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	reqURL, err := c.requestURL(lat, lon)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to reach weather service: %w", err)
	}
	defer resp.Body.Close()

	var result forecastResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && result.Reason != "" {
			return models.WeatherSnapshot{}, fmt.Errorf("weather service error %d: %s", resp.StatusCode, result.Reason)
		}
		return models.WeatherSnapshot{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if result.Error {
		return models.WeatherSnapshot{}, fmt.Errorf("weather service error: %s", result.Reason)
	}

	return toSnapshot(result, c.now()), nil
}

func toSnapshot(r forecastResponse, fetchedAt time.Time) models.WeatherSnapshot {
	precip := r.Daily.Precipitation
	return models.WeatherSnapshot{
		TemperatureF:      math.Round(r.Current.Temperature),
		WindSpeedMph:      math.Round(r.Current.WindSpeed),
		IsRaining:         r.Current.Rain > 0,
		RainTodayInches:   at(precip, 0),
		RainNext48hInches: at(precip, 0) + at(precip, 1),
		HighTodayF:        math.Round(at(r.Daily.TemperatureMax, 0)),
		LowTodayF:         math.Round(at(r.Daily.TemperatureMin, 0)),
		Conditions:        CodeText(r.Current.WeatherCode),
		FetchedAt:         fetchedAt,
	}
}

// at returns xs[i], treating missing and null entries as zero.
func at(xs []*float64, i int) float64 {
	if i >= len(xs) || xs[i] == nil {
		return 0
	}
	return *xs[i]
}

// CodeText maps a WMO weather code to a short description.
func CodeText(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code < 0:
		return "Unknown"
	case code <= 3:
		return "Partly Cloudy"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 65:
		return "Rain"
	case code <= 67:
		return "Freezing Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain Showers"
	case code <= 86:
		return "Snow Showers"
	case code >= 95:
		return "Thunderstorm"
	}
	return "Unknown"
}
