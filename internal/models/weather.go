package models

import "time"

// WeatherSnapshot is the read-only forecast view the advisory engine consumes.
// Units are Fahrenheit, mph and inches.
type WeatherSnapshot struct {
	TemperatureF      float64   `json:"temperature_f" msgpack:"temperature_f"`
	WindSpeedMph      float64   `json:"wind_speed_mph" msgpack:"wind_speed_mph"`
	IsRaining         bool      `json:"is_raining" msgpack:"is_raining"`
	RainTodayInches   float64   `json:"rain_today_in" msgpack:"rain_today_in"`
	RainNext48hInches float64   `json:"rain_next_48h_in" msgpack:"rain_next_48h_in"`
	HighTodayF        float64   `json:"high_today_f" msgpack:"high_today_f"`
	LowTodayF         float64   `json:"low_today_f" msgpack:"low_today_f"`
	Conditions        string    `json:"conditions" msgpack:"conditions"`
	FetchedAt         time.Time `json:"fetched_at" msgpack:"fetched_at"`
}
