package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appDirName = "invoicegen"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Key-value backend for the invoice snapshot
	Storage StorageConfig `yaml:"storage"`

	// Invoice defaults
	Invoice InvoiceConfig `yaml:"invoice"`

	// PDF export
	Export ExportConfig `yaml:"export"`

	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type StorageConfig struct {
	Driver    string `yaml:"driver"` // "sqlite", "redis" or "memory"
	Scope     string `yaml:"scope"`  // One snapshot per scope, e.g. per client
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

type InvoiceConfig struct {
	DefaultDueDays int    `yaml:"default_due_days"` // Days until invoice due
	NumberPrefix   string `yaml:"number_prefix"`    // Invoice number prefix (e.g., "INV")
}

type ExportConfig struct {
	OutputDir    string  `yaml:"output_dir"`     // Directory for generated PDFs
	PageWidthMM  float64 `yaml:"page_width_mm"`  // Width of the preview image on the page
	PageHeightMM float64 `yaml:"page_height_mm"` // Height consumed per page when paginating
	Scale        float64 `yaml:"scale"`          // Raster scale factor
}

type LogConfig struct {
	Mode string `yaml:"mode"` // "development" or "production"
	Path string `yaml:"path"` // Log file; empty logs to stderr
}

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory" // nothing survives the process
)

func appDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", appDirName)
}

// DefaultConfigPath returns ~/.config/invoicegen/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(appDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := appDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "invoicegen.db"),
		},
		Storage: StorageConfig{
			Driver:    DriverSQLite,
			Scope:     "default",
			RedisAddr: "localhost:6379",
		},
		Invoice: InvoiceConfig{
			DefaultDueDays: 30,
			NumberPrefix:   "INV",
		},
		Export: ExportConfig{
			OutputDir:    filepath.Join(dir, "invoices"),
			PageWidthMM:  210,
			PageHeightMM: 295,
			Scale:        2,
		},
		Log: LogConfig{
			Mode: "development",
			Path: filepath.Join(dir, "invoicegen.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML over the defaults so missing keys keep their default
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, invoices, etc.)
func (c *Config) EnsureDirectories() error {
	if c.Storage.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
			return err
		}
	}

	return os.MkdirAll(c.Export.OutputDir, 0755)
}
