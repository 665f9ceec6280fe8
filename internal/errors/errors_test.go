package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

var errNoSeason = errors.New("no season configured")

func init() {
	RegisterHint(errNoSeason, "run `lawnlog schedule list` to see the built-in season")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error with hint",
			err:      fmt.Errorf("failed to load: %w", errNoSeason),
			expected: "Error: failed to load: no season configured\nHint: run `lawnlog schedule list` to see the built-in season",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	if got := Hint(errors.New("unrelated")); got != "" {
		t.Errorf("Hint(unrelated) = %q, want empty", got)
	}
	if got := Hint(fmt.Errorf("outer: %w", errNoSeason)); got == "" {
		t.Error("Hint() did not match wrapped sentinel")
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message",
			format:   "unknown activity %q on %s",
			args:     []interface{}{"edge", "2026-05-01"},
			expected: "Error: unknown activity \"edge\" on 2026-05-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

// TestFatal runs Fatal in a helper process and checks the exit status
func TestFatal(t *testing.T) {
	if os.Getenv("LAWNLOG_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "LAWNLOG_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatalNilError(t *testing.T) {
	if os.Getenv("LAWNLOG_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalNilError")
	cmd.Env = append(os.Environ(), "LAWNLOG_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
