package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	platformobservability "github.com/Apurer/go-gin-design-library/internal/platform/observability"
)

// ConfigPathEnv names the optional YAML file read before the environment.
const ConfigPathEnv = "LIBRARY_CONFIG_PATH"

// Config carries settings for the API process. Environment variables override the YAML file.
type Config struct {
	Port              string `yaml:"port"`
	PostgresDSN       string `yaml:"postgresDsn"`
	AutoMigrate       bool   `yaml:"autoMigrate"`
	TemporalAddress   string `yaml:"temporalAddress"`
	TemporalNamespace string `yaml:"temporalNamespace"`
	TemporalDisabled  bool   `yaml:"temporalDisabled"`
	LogLevel          string `yaml:"logLevel"`
}

// LoadConfig reads the optional file, applies environment overrides and defaults, and validates.
func LoadConfig() (Config, error) {
	cfg := Config{AutoMigrate: true}
	if path := strings.TrimSpace(os.Getenv(ConfigPathEnv)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.PostgresDSN, "POSTGRES_DSN")
	overrideString(&cfg.TemporalAddress, "TEMPORAL_ADDRESS")
	overrideString(&cfg.TemporalNamespace, "TEMPORAL_NAMESPACE")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	if err := overrideBool(&cfg.TemporalDisabled, "TEMPORAL_DISABLED"); err != nil {
		return Config{}, err
	}
	if err := overrideBool(&cfg.AutoMigrate, "DB_AUTO_MIGRATE"); err != nil {
		return Config{}, err
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port))
	}
	if platformobservability.LogLevel(c.LogLevel).String() != strings.ToUpper(strings.TrimSpace(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func overrideString(dst *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*dst = val
	}
}

func overrideBool(dst *bool, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		*dst = true
	case "0", "false", "no":
		*dst = false
	default:
		return fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return nil
}
