package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/core/registry"
	"github.com/leofalp/aibridge/providers/ai"
)

// Config is the aibridge CLI configuration file.
type Config struct {
	Log       LogConfig                 `yaml:"log"`
	Providers map[string]ProviderConfig `yaml:"providers" validate:"dive"`
}

// LogConfig selects the log backend and output. Empty format and level defer
// to the AIBRIDGE_LOG_FORMAT and AIBRIDGE_LOG_LEVEL environment variables.
type LogConfig struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=slog zap"` // Defaults to slog
	Format  string `yaml:"format" validate:"omitempty,oneof=text json"`
	Level   string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
}

// ProviderConfig holds the settings of one provider.
type ProviderConfig struct {
	// Enabled defaults to true when omitted.
	Enabled   *bool             `yaml:"enabled"`
	APIKeyEnv string            `yaml:"api_key_env"`
	Resolved  ai.ResolvedConfig `yaml:",inline"`
}

// Default returns an empty configuration: every provider enabled, keys read
// from <ID>_API_KEY, all models from the catalog defaults.
func Default() *Config {
	return &Config{Providers: make(map[string]ProviderConfig)}
}

// Load reads and parses a YAML config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	return cfg, nil
}

// LoadOrDefault loads config from path. A missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks the log settings and the numeric ranges of every provider
// section. Image sizes are checked again by the provider factory.
func (c *Config) Validate() error {
	if err := registry.NewValidator().Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if !errors.As(err, &invalid) {
			return err
		}
		errs := make([]error, 0, len(invalid))
		for _, fe := range invalid {
			errs = append(errs, fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag()))
		}
		return errors.Join(errs...)
	}
	return nil
}

// IsEnabled implements capability.EnabledLookup.
func (c *Config) IsEnabled(_ context.Context, providerID string) (bool, error) {
	p, ok := c.Providers[providerID]
	if !ok || p.Enabled == nil {
		return true, nil
	}
	return *p.Enabled, nil
}

// ResolvedConfig returns the resolved config of a provider; zero when not configured.
func (c *Config) ResolvedConfig(providerID string) ai.ResolvedConfig {
	return c.Providers[providerID].Resolved
}

// ResolveAPIKey reads the credential of a provider from the environment
// variable named by api_key_env, or from <ID>_API_KEY.
func (c *Config) ResolveAPIKey(providerID string) (string, error) {
	envKey := c.Providers[providerID].APIKeyEnv
	if envKey == "" {
		envKey = strings.ToUpper(providerID) + "_API_KEY"
	}
	key := os.Getenv(envKey)
	if key == "" {
		return "", fmt.Errorf("environment variable %s for provider %q is not set", envKey, providerID)
	}
	return key, nil
}

var _ capability.EnabledLookup = (*Config)(nil)
