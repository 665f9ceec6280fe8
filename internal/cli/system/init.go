package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/storage/postgres"
	"github.com/julianstephens/lawnlog/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Validate() error {
	if c.Source != "" && postgres.IsConnString(c.Source) {
		if _, err := postgres.ValidateConnString(c.Source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use the keyring, environment variables or .pgpass instead")
			}
			return err
		}
	}
	return nil
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized lawnlog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath, err := filepath.Abs(ctx.Store.GetConfigPath())
	if err != nil {
		dbPath = ctx.Store.GetConfigPath()
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func openSource(source string) storage.Provider {
	if postgres.IsConnString(source) {
		return postgres.NewStore(source)
	}
	return sqlite.NewStore(source)
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	src := openSource(c.Source)
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying activities...")
	acts, err := src.GetAllActivities(true)
	if err != nil {
		return fmt.Errorf("failed to get activities from source: %w", err)
	}
	for _, a := range acts {
		if err := ctx.Store.AddActivity(a); err != nil {
			return fmt.Errorf("failed to add activity %s: %w", a.ID, err)
		}
		if a.DeletedAt != nil {
			if err := ctx.Store.DeleteActivity(a.ID); err != nil {
				return fmt.Errorf("failed to mark activity %s deleted: %w", a.ID, err)
			}
		}
	}
	ctx.Printf("    Copied %d activities\n", len(acts))

	ctx.Println("  Copying task completions...")
	completions, err := src.GetCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions from source: %w", err)
	}
	for _, tc := range completions {
		if err := ctx.Store.AddCompletion(tc); err != nil {
			return fmt.Errorf("failed to add completion %s: %w", tc.TaskKey, err)
		}
	}
	ctx.Printf("    Copied %d completions\n", len(completions))

	ctx.Println("  Copying scans...")
	scans, err := src.GetScans(0)
	if err != nil {
		return fmt.Errorf("failed to get scans from source: %w", err)
	}
	for _, s := range scans {
		if err := ctx.Store.AddScan(s); err != nil {
			return fmt.Errorf("failed to add scan %s: %w", s.ID, err)
		}
	}
	ctx.Printf("    Copied %d scans\n", len(scans))

	return nil
}
