package system

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lawnlog/internal/backup"
	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/keyring"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage/sqlite"
	"github.com/julianstephens/lawnlog/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	fn   func(*cli.Context) error
	// needsDB checks are skipped when the database cannot be loaded
	needsDB bool
	// warnOnly failures do not fail the command
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", fn: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", fn: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", fn: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", fn: checkActivities, needsDB: true},
	{name: "Clock/timezone", fn: checkClockTimezone, needsDB: true},
	{name: "Season definition", fn: checkSeason, needsDB: true},
	{name: "Diagnosis configured", fn: checkDiagnosis, needsDB: true, warnOnly: true},
	{name: "OS keyring", fn: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.fn(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

type dbHandle interface {
	GetDB() *sql.DB
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	h, ok := ctx.Store.(dbHandle)
	if !ok {
		return nil
	}
	db := h.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'lawnlog migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'lawnlog backup create'")
	}
	return nil
}

func checkActivities(ctx *cli.Context) error {
	acts, err := ctx.Store.GetAllActivities(true)
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	var problems []error
	for _, a := range acts {
		if err := a.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("activity %s: %w", a.ID, err))
		}
	}
	completions, err := ctx.Store.GetCompletions()
	if err != nil {
		return fmt.Errorf("failed to get task completions: %w", err)
	}
	for _, c := range completions {
		if c.TaskKey == "" {
			problems = append(problems, fmt.Errorf("completion %s has no task key", c.ID))
		}
	}
	return errors.Join(problems...)
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q (fix with 'lawnlog settings set %s <zone>')", settings.Timezone, constants.SettingTimezone)
	}
	return nil
}

func checkSeason(ctx *cli.Context) error {
	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}
	cal, err := ctx.Service.Calendar(today)
	if err != nil {
		return err
	}
	if cal.Len() == 0 {
		return fmt.Errorf("season has no tasks")
	}
	return nil
}

func checkDiagnosis(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	return diagnosisConfigured(settings)
}

func diagnosisConfigured(settings models.Settings) error {
	if settings.DiagnosisEndpoint == "" {
		return fmt.Errorf("no endpoint set, photo scans are disabled (set with 'lawnlog settings set %s <url>')", constants.SettingDiagnosisEndpoint)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
