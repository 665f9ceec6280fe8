// Package migrations embeds the versioned schema files for each backend.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianstephens/lawnlog/internal/constants"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// For returns the migrations of one backend. LAWNLOG_MIGRATIONS_PATH points
// at an on-disk tree with the same layout and takes precedence.
func For(backend string) (fs.FS, error) {
	if dir := os.Getenv(constants.EnvMigrationsPath); dir != "" {
		path := filepath.Join(dir, backend)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: %w", constants.EnvMigrationsPath, err)
		}
		return os.DirFS(path), nil
	}
	sub, err := fs.Sub(FS, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", backend, err)
	}
	return sub, nil
}
