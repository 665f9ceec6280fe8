package main

import (
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/keyring"
)

func TestNeedsStore(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", false},
		{"keyring set <secret> <value>", false},
		{"keyring status", false},
		{"doctor", false},
		{"tui", true},
		{"log add <type>", true},
		{"schedule list", true},
		{"serve", true},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := needsStore(tt.command); got != tt.want {
				t.Errorf("needsStore(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestResolveConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(constants.EnvDBConnection, "")

	t.Run("explicit path", func(t *testing.T) {
		gokeyring.MockInit()
		if got := resolveConfig("/var/lib/lawnlog.db"); got != "/var/lib/lawnlog.db" {
			t.Errorf("resolveConfig() = %q", got)
		}
	})

	t.Run("expands home", func(t *testing.T) {
		gokeyring.MockInit()
		want := filepath.Join(home, "lawn", "lawnlog.db")
		if got := resolveConfig("~/lawn/lawnlog.db"); got != want {
			t.Errorf("resolveConfig() = %q, want %q", got, want)
		}
	})

	t.Run("default without keyring", func(t *testing.T) {
		gokeyring.MockInit()
		want := filepath.Join(home, ".config", "lawnlog", "lawnlog.db")
		if got := resolveConfig(constants.DefaultConfigPath); got != want {
			t.Errorf("resolveConfig() = %q, want %q", got, want)
		}
	})

	t.Run("default with keyring", func(t *testing.T) {
		gokeyring.MockInit()
		connStr := "postgres://lawn@db.local:5432/lawnlog"
		if err := keyring.Set(keyring.ConnectionString, connStr); err != nil {
			t.Fatal(err)
		}
		if got := resolveConfig(constants.DefaultConfigPath); got != connStr {
			t.Errorf("resolveConfig() = %q, want %q", got, connStr)
		}
	})

	t.Run("env before keyring", func(t *testing.T) {
		gokeyring.MockInit()
		if err := keyring.Set(keyring.ConnectionString, "postgres://lawn@db.local/lawnlog"); err != nil {
			t.Fatal(err)
		}
		t.Setenv(constants.EnvDBConnection, "host=pg.internal dbname=lawnlog")
		if got := resolveConfig(constants.DefaultConfigPath); got != "host=pg.internal dbname=lawnlog" {
			t.Errorf("resolveConfig() = %q", got)
		}
	})

	t.Run("explicit path ignores keyring", func(t *testing.T) {
		gokeyring.MockInit()
		if err := keyring.Set(keyring.ConnectionString, "postgres://lawn@db.local/lawnlog"); err != nil {
			t.Fatal(err)
		}
		if got := resolveConfig("/tmp/other.db"); got != "/tmp/other.db" {
			t.Errorf("resolveConfig() = %q", got)
		}
	})
}

func TestConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := configDir("/data/lawn/lawnlog.db"); got != "/data/lawn" {
		t.Errorf("configDir(sqlite) = %q", got)
	}
	want := filepath.Join(home, ".config", "lawnlog")
	if got := configDir("postgres://lawn@db.local/lawnlog"); got != want {
		t.Errorf("configDir(postgres) = %q, want %q", got, want)
	}
	if got := configDir("host=db.local dbname=lawnlog"); got != want {
		t.Errorf("configDir(dsn) = %q, want %q", got, want)
	}
}
