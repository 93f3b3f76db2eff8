// Package keyring stores goaltrack secrets in the OS keyring: the GitHub
// token used for gist sync and an optional PostgreSQL password.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/goaltrack/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the name
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get retrieves the secret stored under name.
func Get(name string) (string, error) {
	secret, err := keyring.Get(constants.AppName, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret under name, replacing any previous value.
func Set(name, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if err := keyring.Set(constants.AppName, name, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored under name.
func Delete(name string) error {
	err := keyring.Delete(constants.AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

func GetToken() (string, error)   { return Get(constants.DefaultKeyringUser) }
func SetToken(token string) error { return Set(constants.DefaultKeyringUser, token) }
func DeleteToken() error          { return Delete(constants.DefaultKeyringUser) }

// IsAvailable is a best-effort check: a lookup that fails with anything
// other than "not found" means there is no usable keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
