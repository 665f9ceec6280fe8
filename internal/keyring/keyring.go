package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/lawnlog/internal/constants"
)

// Secret names one credential slot under the application's keyring service.
type Secret string

const (
	ConnectionString Secret = constants.DefaultKeyringUser
	DiagnosisToken   Secret = constants.DiagnosisKeyringUser
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// ParseSecret accepts the short names used on the command line.
func ParseSecret(name string) (Secret, error) {
	switch name {
	case "db", "database", string(ConnectionString):
		return ConnectionString, nil
	case "diagnosis", "token", string(DiagnosisToken):
		return DiagnosisToken, nil
	}
	return "", fmt.Errorf("unknown secret %q (expected db or diagnosis)", name)
}

func Get(s Secret) (string, error) {
	v, err := keyring.Get(constants.AppName, string(s))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func Set(s Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", s)
	}
	if err := keyring.Set(constants.AppName, string(s), value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func Delete(s Secret) error {
	if err := keyring.Delete(constants.AppName, string(s)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
func GetConnectionString() (string, error) {
	return Get(ConnectionString)
}

// GetDiagnosisToken retrieves the bearer token for the diagnosis endpoint.
func GetDiagnosisToken() (string, error) {
	return Get(DiagnosisToken)
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
