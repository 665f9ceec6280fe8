package models

// Settings represents application-wide settings
type Settings struct {
	Latitude          float64 `json:"latitude"`            // forecast location
	Longitude         float64 `json:"longitude"`           // forecast location
	Timezone          string  `json:"timezone"`            // IANA timezone name, or "Local"
	WeatherRefreshMin int     `json:"weather_refresh_min"` // minutes a cached forecast stays fresh
	DiagnosisEndpoint string  `json:"diagnosis_endpoint"`  // URL of the photo diagnosis function
	SeasonFile        string  `json:"season_file"`         // optional YAML season definition
}
