package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/lawnlog/internal/backup"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/diagnosis"
	"github.com/julianstephens/lawnlog/internal/keyring"
	"github.com/julianstephens/lawnlog/internal/lawn"
	"github.com/julianstephens/lawnlog/internal/logger"
	"github.com/julianstephens/lawnlog/internal/migration"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/storage/sqlite"
)

// Diagnoser submits a photo on disk for assessment.
type Diagnoser interface {
	DiagnoseFile(ctx context.Context, path string, date time.Time) (models.Diagnosis, error)
}

// Migrator is implemented by stores backed by the migration runner.
type Migrator interface {
	MigrationStatus() (migration.Status, error)
	Migrate(logFn func(string)) (int, error)
}

type Context struct {
	Store   storage.Provider
	Service *lawn.Service
	Out     io.Writer
	// NewDiagnoser overrides how the diagnosis client is built.
	NewDiagnoser func(ctx context.Context, settings models.Settings) (Diagnoser, error)
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:   store,
		Service: lawn.New(store),
		Out:     os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.out(), args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// PerformAutomaticBackup snapshots SQLite stores after a mutation. Failures
// are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Diagnoser returns the configured diagnosis client.
func (c *Context) Diagnoser(ctx context.Context) (Diagnoser, error) {
	settings, err := c.Service.Settings()
	if err != nil {
		return nil, err
	}
	if c.NewDiagnoser != nil {
		return c.NewDiagnoser(ctx, settings)
	}
	return NewDiagnosisClient(ctx, settings)
}

// NewDiagnosisClient builds a client from settings. The token comes from
// LAWNLOG_DIAGNOSIS_TOKEN or the keyring, the API key from
// LAWNLOG_DIAGNOSIS_API_KEY.
func NewDiagnosisClient(ctx context.Context, settings models.Settings) (*diagnosis.Client, error) {
	token := os.Getenv(constants.EnvDiagnosisToken)
	if token == "" {
		t, err := keyring.GetDiagnosisToken()
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Keyring lookup failed", "error", err)
		}
		token = t
	}

	timeout := constants.DiagnosisTimeout
	if v := os.Getenv(constants.EnvDiagnosisTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", constants.EnvDiagnosisTimeout, v, err)
		}
		timeout = d
	}

	return diagnosis.NewClient(ctx, settings.DiagnosisEndpoint, token, os.Getenv(constants.EnvDiagnosisAPIKey), timeout)
}
