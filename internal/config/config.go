// Package config loads studentdb settings from defaults, a .env file, a YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/enunezf/studentdb/internal/core/domain"
	"github.com/enunezf/studentdb/internal/logger"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "studentdb.yaml"

// Config structure represents the application configuration
type Config struct {
	Database struct {
		Driver         string `yaml:"driver" env:"DB_DRIVER"`
		Host           string `yaml:"host" env:"DB_HOST"`
		Port           int    `yaml:"port" env:"DB_PORT"`
		Name           string `yaml:"name" env:"DB_NAME"`
		User           string `yaml:"user" env:"DB_USER"`
		Password       string `yaml:"password" env:"DB_PASSWORD"`
		SSLMode        string `yaml:"sslmode" env:"DB_SSLMODE"`
		TrustCert      bool   `yaml:"trust_cert" env:"DB_TRUST_CERT"`
		Path           string `yaml:"path" env:"DB_PATH"`
		ConnectTimeout string `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// Load builds the configuration. Layers applied in order: defaults, .env in
// the working directory, the YAML file at path, environment variables.
// Missing .env or YAML files are skipped. The result is not validated so that
// command-line flags can still override it; call Validate once they are applied.
func Load(path string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Only variables that are set override the fields tagged with env
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	return config, nil
}

// setDefaults sets local development defaults
func setDefaults(config *Config) {
	conn := domain.NewConnectionConfig()

	config.Database.Driver = conn.Driver
	config.Database.Host = conn.Host
	config.Database.Port = conn.Port
	config.Database.Name = conn.Database
	config.Database.User = conn.User
	config.Database.Password = conn.Password
	config.Database.SSLMode = conn.SSLMode
	config.Database.Path = conn.Path
	config.Database.ConnectTimeout = conn.ConnectTimeout.String()

	config.Logging.Level = string(logger.WarnLevel)
	config.Logging.Format = "console"
}

// Validate ensures that the configuration is usable
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Database.ConnectTimeout); err != nil {
		return fmt.Errorf("invalid connect timeout: %w", err)
	}

	if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format %q (want console or json)", c.Logging.Format)
	}

	return c.ConnectionConfig().Validate()
}

// ConnectionConfig converts the database section into a domain connection
// config. Call Validate first; an unparsable timeout falls back to the default.
func (c *Config) ConnectionConfig() *domain.ConnectionConfig {
	conn := domain.NewConnectionConfig()
	conn.Driver = c.Database.Driver
	conn.Host = c.Database.Host
	conn.Port = c.Database.Port
	conn.Database = c.Database.Name
	conn.User = c.Database.User
	conn.Password = c.Database.Password
	conn.SSLMode = c.Database.SSLMode
	conn.TrustServer = c.Database.TrustCert
	conn.Path = c.Database.Path
	if d, err := time.ParseDuration(c.Database.ConnectTimeout); err == nil {
		conn.ConnectTimeout = d
	}
	return conn
}

// LoggerConfig converts the logging section into a logger config
func (c *Config) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(c.Logging.Level)
	return logger.Config{
		Level:  level,
		Pretty: c.Logging.Format == "console",
		Output: os.Stderr,
	}
}
