package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/andy/invoicegen/internal/clipboard"
	"github.com/andy/invoicegen/internal/config"
	"github.com/andy/invoicegen/internal/crypto"
	"github.com/andy/invoicegen/internal/db"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/export"
	"github.com/andy/invoicegen/internal/logger"
	"github.com/andy/invoicegen/internal/repository"
	"github.com/andy/invoicegen/internal/service"
	"golang.org/x/term"
)

// Options select the config file and snapshot scope for this run
type Options struct {
	ConfigPath string // empty means the default path
	Scope      string // empty means the configured scope
}

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	Log        *logger.Logger

	// Storage; DB is nil unless the sqlite driver is in use
	DB        *db.DB
	KV        repository.KVStore
	Snapshots *repository.SnapshotRepo

	// Services
	Builder   *service.Builder
	Exporter  *export.PDFExporter
	Clipboard clipboard.System

	closers []func() error
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config and the logger
// 2. Opening the configured key-value store
// 3. Restoring the invoice being edited
// 4. Creating the exporter and clipboard
func New(ctx context.Context, opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Scope != "" {
		cfg.Storage.Scope = opts.Scope
	}

	a, err := NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.ConfigPath = path
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &App{
		Config:     cfg,
		ConfigPath: config.DefaultConfigPath(),
		Log:        log,
		Clipboard:  clipboard.New(),
	}

	if err := a.openStore(ctx); err != nil {
		log.Sync()
		return nil, err
	}

	a.Snapshots = repository.NewSnapshotRepo(a.KV, log.With("scope", cfg.Storage.Scope))
	a.Builder = service.NewBuilder(ctx, a.Snapshots,
		service.WithDefaults(domain.DefaultOptions{
			NumberPrefix: cfg.Invoice.NumberPrefix,
			DueDays:      cfg.Invoice.DefaultDueDays,
		}),
		service.WithLogger(log),
	)
	a.Exporter = export.NewPDFExporter(cfg.Export, log)

	log.Info("app started", "driver", cfg.Storage.Driver, "scope", cfg.Storage.Scope)
	return a, nil
}

// openStore connects the configured backend. An unreachable redis falls back
// to memory so the builder still works for this session.
func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config

	switch cfg.Storage.Driver {
	case config.DriverSQLite, "":
		database, err := openDatabase(cfg.Database.Path)
		if err != nil {
			return err
		}
		a.DB = database
		a.KV = repository.NewKVRepo(database, cfg.Storage.Scope)
		a.closers = append(a.closers, database.Close)

	case config.DriverRedis:
		kv, err := repository.OpenRedisKV(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisDB, cfg.Storage.Scope)
		if err != nil {
			a.Log.Warn("redis unavailable, changes will not be saved", "addr", cfg.Storage.RedisAddr, "error", err)
			fmt.Fprintf(os.Stderr, "warning: redis at %s is unavailable, changes will not be saved\n", cfg.Storage.RedisAddr)
			a.KV = repository.NewMemoryKV()
			return nil
		}
		a.KV = kv
		a.closers = append(a.closers, kv.Close)

	case config.DriverMemory:
		a.KV = repository.NewMemoryKV()

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return nil
}

// openDatabase unlocks the encrypted database, asking for a password on
// first run
func openDatabase(path string) (*db.DB, error) {
	// Get keyring for secure password storage
	keyring := crypto.NewKeyring()

	// Try to get existing encryption key
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Printf("Setting up database encryption for the first time (key goes to %s)...\n", keyring.Source())
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		// Store the key in keyring; without one the password only lasts this run
		if err := keyring.SetKey(password); err != nil {
			fmt.Fprintf(os.Stderr, "warning: encryption key not stored: %v\n", err)
		}
	}

	// Open the database with encryption
	database, err := db.Open(path, password)
	if err != nil {
		if errors.Is(err, db.ErrWrongKey) {
			return nil, fmt.Errorf("%w (key from %s; `invoicegen config forget-key` to enter it again)", err, keyring.Source())
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations to ensure schema is up to date
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// Actions returns the user commands reporting through n
func (a *App) Actions(n service.Notifier) *service.Actions {
	return service.NewActions(a.Builder, a.Exporter, a.Clipboard, n, a.Log)
}

// Scopes lists the scopes that have a stored snapshot. Only the sqlite
// store can enumerate them.
func (a *App) Scopes(ctx context.Context) ([]repository.ScopeInfo, error) {
	kv, ok := a.KV.(*repository.KVRepo)
	if !ok {
		return nil, fmt.Errorf("listing scopes requires the %s driver", config.DriverSQLite)
	}
	return kv.Scopes(ctx)
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	if a.Log != nil {
		a.Log.Sync()
	}
	return firstErr
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your invoices will be saved in an encrypted database.")
	fmt.Printf("Set %s to skip this prompt on systems without a keyring.\n", crypto.EnvKey)
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	// Check if passwords match
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to the file it was loaded from
func (a *App) SaveConfig() error {
	return a.Config.Save(a.ConfigPath)
}
