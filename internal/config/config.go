package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Logger   LoggerConfig   `envPrefix:"LOG_"`
	Ingest   IngestConfig   `envPrefix:"INGEST_"`
	Console  ConsoleConfig  `envPrefix:"CONSOLE_"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `env:"HOST" envDefault:"localhost"`
	Port            int    `env:"PORT" envDefault:"5432"`
	User            string `env:"USER" envDefault:"postgres"`
	Password        string `env:"PASSWORD" envDefault:""`
	Database        string `env:"NAME" envDefault:"cereal"`
	MaxConnections  int    `env:"MAX_CONNECTIONS" envDefault:"25"`
	MinConnections  int    `env:"MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime int    `env:"MAX_CONN_LIFETIME" envDefault:"300"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // "json" or "console"
}

// IngestConfig holds CSV ingestion configuration.
type IngestConfig struct {
	File string `env:"FILE" envDefault:"data/cereal.csv"`
}

// ConsoleConfig holds interactive console client configuration.
type ConsoleConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	BaseURL string `env:"BASE_URL" envDefault:""` // derived from the server address when empty
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Console.BaseURL == "" {
		cfg.Console.BaseURL = fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Ingest.File == "" {
		return fmt.Errorf("ingest file path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
