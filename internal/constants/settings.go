package constants

const (
	// Settings keys
	SettingLatitude          = "latitude"
	SettingLongitude         = "longitude"
	SettingTimezone          = "timezone"
	SettingWeatherRefreshMin = "weather_refresh_min"
	SettingDiagnosisEndpoint = "diagnosis_endpoint"
	SettingSeasonFile        = "season_file"

	// Default Settings Values
	DefaultLatitude          = 32.78
	DefaultLongitude         = -96.80
	DefaultTimezone          = "Local" // Use system local timezone by default
	DefaultWeatherRefreshMin = 30
)
