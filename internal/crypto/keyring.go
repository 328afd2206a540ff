package crypto

import (
	"errors"
	"fmt"
)

// Keyring stores the database encryption key outside the database
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	// Source names where the key lives, for messages
	Source() string
}

const (
	ServiceName = "invoicegen"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the OS keyring, mostly for headless machines
	EnvKey = "INVOICEGEN_DB_KEY"
)

// ErrNoKey is returned when no source holds a key yet
var ErrNoKey = errors.New("encryption key not found")

// NewKeyring returns the environment variable backed by the OS keyring
func NewKeyring() Keyring {
	return &chain{env: envKeyring{}, system: systemKeyring{}}
}

// chain reads the environment first and writes to the OS keyring
type chain struct {
	env    Keyring
	system Keyring
}

func (c *chain) GetKey() (string, error) {
	if key, err := c.env.GetKey(); err == nil {
		return key, nil
	}
	return c.system.GetKey()
}

func (c *chain) SetKey(password string) error {
	if err := c.system.SetKey(password); err != nil {
		return fmt.Errorf("%w (set %s instead)", err, EnvKey)
	}
	return nil
}

func (c *chain) DeleteKey() error {
	return c.system.DeleteKey()
}

func (c *chain) Source() string {
	if _, err := c.env.GetKey(); err == nil {
		return c.env.Source()
	}
	return c.system.Source()
}
