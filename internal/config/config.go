package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	App       AppConfig
	Account   AccountConfig
	Inventory InventoryConfig
	Cache     CacheConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"vending-sim"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
}

// AccountConfig holds balance account limits.
type AccountConfig struct {
	InitialBalance int `envconfig:"ACCOUNT_INITIAL_BALANCE" default:"0"`
	MinCharge      int `envconfig:"ACCOUNT_MIN_CHARGE" default:"100"`
	MaxBalance     int `envconfig:"ACCOUNT_MAX_BALANCE" default:"20000"`
}

// InventoryConfig holds drink inventory store settings.
type InventoryConfig struct {
	Store string `envconfig:"INVENTORY_STORE" default:"memory"` // memory or sqlite
	// SQLiteDSN defaults to a shared in-memory database so no state
	// survives a restart.
	SQLiteDSN string `envconfig:"INVENTORY_SQLITE_DSN" default:"file:vendsim?mode=memory&cache=shared"`
}

// CacheConfig holds price cache settings.
type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Account.MinCharge < 1 {
		return fmt.Errorf("ACCOUNT_MIN_CHARGE must be at least 1, got %d", c.Account.MinCharge)
	}
	if c.Account.MaxBalance < c.Account.MinCharge {
		return fmt.Errorf("ACCOUNT_MAX_BALANCE (%d) must not be below ACCOUNT_MIN_CHARGE (%d)",
			c.Account.MaxBalance, c.Account.MinCharge)
	}
	if c.Account.InitialBalance < 0 {
		return fmt.Errorf("ACCOUNT_INITIAL_BALANCE must not be negative, got %d", c.Account.InitialBalance)
	}
	switch c.Inventory.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("INVENTORY_STORE must be memory or sqlite, got %q", c.Inventory.Store)
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
