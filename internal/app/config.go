package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/Flarenzy/site-ipam/internal/auth"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"4040"`
	InventoryPath string        `env:"INVENTORY_PATH" envDefault:"data/devices.yaml"`
	ExportDir     string        `env:"EXPORT_DIR" envDefault:"exports"`
	PlanLogPath   string        `env:"PLAN_LOG_PATH" envDefault:"vlan_calculations.csv"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	ReadTimeout   time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout  time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`

	AuthEnabled   bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer    string `env:"AUTH_ISSUER"`
	AuthJWKSURL   string `env:"AUTH_JWKS_URL"`
	AuthAudience  string `env:"AUTH_AUDIENCE"`
	AuthWriteRole string `env:"AUTH_WRITE_ROLE"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.InventoryPath == "" {
		return fmt.Errorf("INVENTORY_PATH is required")
	}
	if c.AuthEnabled && c.AuthIssuer == "" {
		return fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is set")
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func (c Config) authConfig() auth.Config {
	return auth.Config{
		Enabled:   c.AuthEnabled,
		Issuer:    c.AuthIssuer,
		JWKSURL:   c.AuthJWKSURL,
		Audience:  c.AuthAudience,
		WriteRole: c.AuthWriteRole,
	}
}
