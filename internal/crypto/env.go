package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKeyring reads the key from INVOICEGEN_DB_KEY and never writes it
type envKeyring struct{}

func (envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%w: %s not set", ErrNoKey, EnvKey)
	}
	return key, nil
}

func (envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("cannot write %s from inside the process", EnvKey)
}

func (envKeyring) DeleteKey() error {
	return fmt.Errorf("unset %s in your shell", EnvKey)
}

func (envKeyring) Source() string {
	return "$" + EnvKey
}
