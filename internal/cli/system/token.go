package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/keyring"
)

// secretName picks the keyring entry a token command works on.
func secretName(postgres bool) (name, label string) {
	if postgres {
		return constants.KeyringPostgresPassword, "PostgreSQL password"
	}
	return constants.DefaultKeyringUser, "GitHub token"
}

// TokenSetCmd stores the GitHub token (or the PostgreSQL password) in the OS keyring.
type TokenSetCmd struct {
	Value    string `arg:"" optional:"" help:"Secret to store. Prompted for when omitted."`
	Postgres bool   `help:"Store the PostgreSQL password instead of the GitHub token."`
}

// promptSecret is replaced in tests.
var promptSecret = func(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	return value, err
}

func (cmd *TokenSetCmd) Run(ctx *cli.Context) error {
	name, label := secretName(cmd.Postgres)
	value := strings.TrimSpace(cmd.Value)
	if value == "" {
		var err error
		if value, err = promptSecret(label); err != nil {
			return err
		}
		value = strings.TrimSpace(value)
	}
	if value == "" {
		return errors.New("nothing to store")
	}

	if err := keyring.Set(name, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", label, err)
	}
	ctx.Printf("✓ %s stored in OS keyring\n", label)
	return nil
}

type TokenDeleteCmd struct {
	Postgres bool `help:"Delete the PostgreSQL password instead of the GitHub token."`
}

func (cmd *TokenDeleteCmd) Run(ctx *cli.Context) error {
	name, label := secretName(cmd.Postgres)
	if err := keyring.Delete(name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", label)
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", label, err)
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", label)
	return nil
}

type TokenStatusCmd struct{}

func (cmd *TokenStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	for _, pg := range []bool{false, true} {
		name, label := secretName(pg)
		if _, err := keyring.Get(name); err == nil {
			ctx.Printf("✓ %s is stored\n", label)
		} else {
			ctx.Printf("ℹ No %s stored\n", label)
		}
	}
	return nil
}
