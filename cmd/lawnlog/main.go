package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lawnlog/internal/backup"
	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/cli/activities"
	"github.com/julianstephens/lawnlog/internal/cli/backups"
	"github.com/julianstephens/lawnlog/internal/cli/scans"
	"github.com/julianstephens/lawnlog/internal/cli/season"
	"github.com/julianstephens/lawnlog/internal/cli/settings"
	"github.com/julianstephens/lawnlog/internal/cli/system"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/diagnosis"
	"github.com/julianstephens/lawnlog/internal/errors"
	"github.com/julianstephens/lawnlog/internal/keyring"
	"github.com/julianstephens/lawnlog/internal/logger"
	"github.com/julianstephens/lawnlog/internal/migration"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/storage/postgres"
	"github.com/julianstephens/lawnlog/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. Falls back to LAWNLOG_DB_CONNECTION, then the keyring. PostgreSQL passwords must NOT be embedded; use ~/.pgpass or PGPASSWORD." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize lawnlog storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the JSON API."`

	Status   season.StatusCmd `cmd:"" help:"Show growth phase, next step and today's advice."`
	Advice   season.AdviceCmd `cmd:"" help:"Show weather advice for mowing, watering and fertilizing."`
	Schedule struct {
		List season.ScheduleListCmd `cmd:"" help:"List the season's tasks." default:"1"`
		Next season.ScheduleNextCmd `cmd:"" help:"Show the next seasonal step."`
		Done season.ScheduleDoneCmd `cmd:"" help:"Toggle a task as done."`
	} `cmd:"" help:"Seasonal task calendar."`
	Log struct {
		Add      activities.LogAddCmd      `cmd:"" help:"Log lawn work."`
		List     activities.LogListCmd     `cmd:"" help:"List logged activities." default:"1"`
		Delete   activities.LogDeleteCmd   `cmd:"" help:"Delete an activity."`
		Restore  activities.LogRestoreCmd  `cmd:"" help:"Restore a deleted activity."`
		Calendar activities.LogCalendarCmd `cmd:"" help:"Show a month of activity."`
		Stats    activities.LogStatsCmd    `cmd:"" help:"Show activity cadence per type."`
	} `cmd:"" help:"Manage the activity log."`
	Scan struct {
		Diagnose scans.ScanDiagnoseCmd `cmd:"" help:"Diagnose a lawn photo."`
		List     scans.ScanListCmd     `cmd:"" help:"List past diagnoses." default:"1"`
		Show     scans.ScanShowCmd     `cmd:"" help:"Show a diagnosis."`
	} `cmd:"" help:"Photo diagnoses."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Change a setting."`
	} `cmd:"" help:"Manage application settings."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func init() {
	errors.RegisterHint(storage.ErrNotInitialized, "Run 'lawnlog init' to create the database.")
	errors.RegisterHint(migration.ErrSchemaTooNew, "Upgrade lawnlog or restore an older backup with 'lawnlog backup restore'.")
	errors.RegisterHint(postgres.ErrEmbeddedCredentials, "Store the connection string with 'lawnlog keyring set db' or use ~/.pgpass.")
	errors.RegisterHint(diagnosis.ErrNotConfigured, "Set one with 'lawnlog settings set diagnosis_endpoint <url>'.")
	errors.RegisterHint(diagnosis.ErrNotAuthenticated, "Store a token with 'lawnlog keyring set diagnosis' or set "+constants.EnvDiagnosisToken+".")
	errors.RegisterHint(backup.ErrNoDatabase, "Backups are only available for SQLite databases created with 'lawnlog init'.")
}

func main() {
	vars := kong.Vars{
		"version":        constants.Version,
		"default_config": constants.DefaultConfigPath,
	}
	for k, v := range system.DefaultVars() {
		vars[k] = v
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Warm-season lawn care planner and activity log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		vars,
	)

	config := resolveConfig(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(config)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	var store storage.Provider
	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			errors.Fatal(err)
		}
		store = postgres.NewStore(config)
	} else {
		store = sqlite.NewStore(config)
	}
	defer store.Close()

	appCtx := cli.NewContext(store)

	command := ctx.Command()
	if needsStore(command) {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// resolveConfig expands ~ and, when no location was given, falls back to
// LAWNLOG_DB_CONNECTION and then to a connection string saved in the keyring.
func resolveConfig(config string) string {
	if config == constants.DefaultConfigPath {
		if env := os.Getenv(constants.EnvDBConnection); env != "" {
			config = env
		} else if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			config = connStr
		}
	}
	if strings.HasPrefix(config, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, config[2:])
		}
	}
	return config
}

// configDir is where logs and backups live.
func configDir(config string) string {
	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(config)
}

// needsStore reports whether command runs against an opened database. Init
// opens its own and the keyring commands never touch storage.
func needsStore(command string) bool {
	return !strings.HasPrefix(command, "init") &&
		!strings.HasPrefix(command, "keyring") &&
		!strings.HasPrefix(command, "doctor")
}
