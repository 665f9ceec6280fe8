package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"sync"

	"github.com/julianstephens/lawnlog/internal/logger"
)

var (
	hintsMu sync.RWMutex
	hints   []hint
)

type hint struct {
	target error
	text   string
}

// RegisterHint attaches a follow-up suggestion to errors matching target.
func RegisterHint(target error, text string) {
	hintsMu.Lock()
	defer hintsMu.Unlock()
	hints = append(hints, hint{target: target, text: text})
}

// Hint returns the first registered suggestion matching err.
func Hint(err error) string {
	hintsMu.RLock()
	defer hintsMu.RUnlock()
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.text
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if h := Hint(err); h != "" {
		msg += "\nHint: " + h
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
