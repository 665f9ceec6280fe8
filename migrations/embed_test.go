package migrations

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lawnlog/internal/constants"
)

func TestForEmbedded(t *testing.T) {
	t.Setenv(constants.EnvMigrationsPath, "")
	for _, backend := range []string{"sqlite", "postgres"} {
		sub, err := For(backend)
		if err != nil {
			t.Fatalf("For(%s) error: %v", backend, err)
		}
		if _, err := fs.Stat(sub, "001_init.sql"); err != nil {
			t.Errorf("%s: 001_init.sql missing: %v", backend, err)
		}
	}
}

func TestForOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sqlite"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sqlite", "001_custom.sql"), []byte("SELECT 1;"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(constants.EnvMigrationsPath, dir)

	sub, err := For("sqlite")
	if err != nil {
		t.Fatalf("For() error: %v", err)
	}
	if _, err := fs.Stat(sub, "001_custom.sql"); err != nil {
		t.Errorf("override file missing: %v", err)
	}

	if _, err := For("postgres"); err == nil {
		t.Error("expected error for missing backend directory")
	}
}
