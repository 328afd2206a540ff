package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// systemKeyring is the OS secret store: Keychain on macOS, Secret Service
// on Linux, Credential Manager on Windows
type systemKeyring struct{}

func (systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in OS keyring", ErrNoKey)
		}
		return "", fmt.Errorf("failed to read OS keyring: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("%w: stored key is empty", ErrNoKey)
	}
	return key, nil
}

func (systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in OS keyring: %w", err)
	}
	return nil
}

func (systemKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w in OS keyring", ErrNoKey)
		}
		return fmt.Errorf("failed to delete key from OS keyring: %w", err)
	}
	return nil
}

func (systemKeyring) Source() string {
	return "OS keyring"
}
