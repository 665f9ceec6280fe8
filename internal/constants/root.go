package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName              = "lawnlog"
	DefaultKeyringUser   = "database-connection"
	DiagnosisKeyringUser = "diagnosis-token"
	DefaultConfigPath    = "~/.config/lawnlog/lawnlog.db"
	Version              = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// DisplayDateFormat is the short form used in task windows ("Feb 1")
	DisplayDateFormat = "Jan 2"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lawnlog-"
	BackupFileSuffix = ".db"

	// Environment variables
	EnvDBConnection     = "LAWNLOG_DB_CONNECTION"
	EnvDiagnosisToken   = "LAWNLOG_DIAGNOSIS_TOKEN"
	EnvDiagnosisAPIKey  = "LAWNLOG_DIAGNOSIS_API_KEY"
	EnvMigrationsPath   = "LAWNLOG_MIGRATIONS_PATH"
	EnvDiagnosisTimeout = "LAWNLOG_DIAGNOSIS_TIMEOUT"

	// Weather constants
	OpenMeteoEndpoint = "https://api.open-meteo.com/v1/forecast"
	WeatherTimeout    = 10 * time.Second
	ForecastDays      = 3

	// Diagnosis constants
	DiagnosisTimeout  = 60 * time.Second
	MaxScanImageBytes = 10 << 20

	// MaxDayBadges caps the categories shown per calendar cell
	MaxDayBadges = 3

	// Server constants
	DefaultListenAddr   = "127.0.0.1:8085"
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerShutdownGrace = 5 * time.Second
)

// Session States
const (
	StateDashboard SessionState = iota
	StateSchedule
	StateLog
	StateCalendar
	StateAddActivity
	StateConfirmDelete
)
