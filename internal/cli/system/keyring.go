package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/keyring"
	"github.com/julianstephens/lawnlog/internal/storage/postgres"
)

// KeyringSetCmd stores a credential in the OS keyring
type KeyringSetCmd struct {
	Secret string `arg:"" enum:"db,diagnosis" help:"Which credential to store (db or diagnosis)."`
	Value  string `arg:"" help:"PostgreSQL connection string or diagnosis API token."`
}

func (cmd *KeyringSetCmd) Validate() error {
	if strings.TrimSpace(cmd.Value) == "" {
		return errors.New("value cannot be empty")
	}
	if cmd.Secret != "db" {
		return nil
	}
	if !postgres.IsConnString(cmd.Value) && !strings.Contains(cmd.Value, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if _, err := postgres.ValidateConnString(cmd.Value); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	return nil
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	if secret == keyring.ConnectionString {
		if _, err := postgres.ValidateConnString(cmd.Value); errors.Is(err, postgres.ErrEmbeddedCredentials) {
			ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(secret, cmd.Value); err != nil {
		return err
	}
	ctx.Printf("✓ %s stored in OS keyring\n", describe(secret))
	return nil
}

// KeyringGetCmd shows a stored credential with secrets masked
type KeyringGetCmd struct {
	Secret string `arg:"" enum:"db,diagnosis" help:"Which credential to show (db or diagnosis)."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	v, err := keyring.Get(secret)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'lawnlog keyring set %s' to store one", describe(secret), cmd.Secret)
		}
		return err
	}
	if secret == keyring.ConnectionString {
		ctx.Println(maskPassword(v))
	} else {
		ctx.Println(maskToken(v))
	}
	return nil
}

// KeyringDeleteCmd removes a credential from the OS keyring
type KeyringDeleteCmd struct {
	Secret string `arg:"" enum:"db,diagnosis" help:"Which credential to delete (db or diagnosis)."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", describe(secret))
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", describe(secret))
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	for _, s := range []keyring.Secret{keyring.ConnectionString, keyring.DiagnosisToken} {
		if _, err := keyring.Get(s); err == nil {
			ctx.Printf("✓ %s is stored\n", describe(s))
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored\n", describe(s))
		}
	}
	return nil
}

func describe(s keyring.Secret) string {
	if s == keyring.ConnectionString {
		return "connection string"
	}
	return "diagnosis token"
}

// maskPassword hides the password of a URL or key=value connection string
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
