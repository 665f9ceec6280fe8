package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if want := filepath.Join(logDir, "lawnlog.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "key", "value")
	Error("Test error message")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Errorf("warning not written to log file: %q", data)
	}
	if strings.Contains(string(data), "Test debug message") {
		t.Errorf("debug message written outside debug mode")
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	With("weather").Debug("component message")
	Info("Test info message in debug mode")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "component=weather") {
		t.Errorf("component field missing from log output: %q", data)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	With("server").Info("discarded")
}
