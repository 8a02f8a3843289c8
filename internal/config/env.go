package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the ledger daemon.
// Passwords and PINs are never part of it; they arrive per request.
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	DatabasePath  string        `envconfig:"DATABASE_PATH" default:"ledger.db"`
	Difficulty    int           `envconfig:"MINING_DIFFICULTY" default:"4"`
	MiningTimeout time.Duration `envconfig:"MINING_TIMEOUT" default:"30s"`
	MiningReward  int64         `envconfig:"MINING_REWARD" default:"50"`
	GrantReward   bool          `envconfig:"GRANT_MINING_REWARD" default:"false"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	AccountHeader string        `envconfig:"ACCOUNT_HEADER" default:"X-Account-Number"`
	// RateLimit is the sustained number of money-moving requests per second, 0 disables it
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"5"`
	RateBurst int     `envconfig:"RATE_BURST" default:"10"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates a Config without touching the global instance
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges envconfig cannot express
func (c *Config) Validate() error {
	if c.Difficulty < 0 || c.Difficulty > 64 {
		return fmt.Errorf("MINING_DIFFICULTY must be between 0 and 64, got %d", c.Difficulty)
	}
	if c.MiningTimeout < 0 {
		return errors.New("MINING_TIMEOUT must not be negative")
	}
	if c.MiningReward < 0 {
		return errors.New("MINING_REWARD must not be negative")
	}
	if c.AccountHeader == "" {
		return errors.New("ACCOUNT_HEADER must not be empty")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("RATE_LIMIT and RATE_BURST must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetDatabasePath returns the SQLite file path
func GetDatabasePath() string {
	return Get().DatabasePath
}

// GetAccountHeader returns the request header carrying the authenticated account number
func GetAccountHeader() string {
	return Get().AccountHeader
}

// NewLogger builds a production zap logger at the configured level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// PromptSecret prints label and reads a secret from the terminal without echoing it.
// Caller must clear the returned slice after use.
func PromptSecret(label string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively to enter secrets")
	}
	fmt.Fprint(os.Stderr, label+": ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("secret cannot be empty")
	}
	return raw, nil
}
