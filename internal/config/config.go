package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
	Timezone  string          `yaml:"timezone"`
}

// DatasetConfig selects where the properties and tenants tables come from
type DatasetConfig struct {
	Source         string `yaml:"source"` // csv, mysql or postgres
	PropertiesPath string `yaml:"properties_path"`
	TenantsPath    string `yaml:"tenants_path"`
	Delimiter      string `yaml:"delimiter"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	Burst             int  `yaml:"burst"`
}

// ReportConfig controls the daily occupancy digest
type ReportConfig struct {
	DailyRunEnabled bool   `yaml:"daily_run_enabled"`
	DailyRunTime    string `yaml:"daily_run_time"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // text, json or color
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:         "csv",
			PropertiesPath: "data/properties.csv",
			TenantsPath:    "data/tenants.csv",
			Delimiter:      ",",
		},
		Database: DatabaseConfig{
			MySQL: MySQLConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "rentals",
			},
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "rentals",
				SSLMode:  "disable",
			},
		},
		Server: ServerConfig{
			Port:           "8084",
			AllowedOrigins: []string{"http://localhost:5176"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 600,
			Burst:             50,
		},
		Report: ReportConfig{
			DailyRunEnabled: false,
			DailyRunTime:    "07:00",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "color",
			LogRequests: true,
		},
		Timezone: "Europe/London",
	}
}

// LoadConfig loads configuration from a YAML file, then applies
// environment overrides. A missing file is not an error.
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment without overriding variables already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// applyEnv overrides file values with environment variables when set
func (c *Config) applyEnv() {
	c.Dataset.Source = getEnv("DATASET_SOURCE", c.Dataset.Source)
	c.Dataset.PropertiesPath = getEnv("PROPERTIES_PATH", c.Dataset.PropertiesPath)
	c.Dataset.TenantsPath = getEnv("TENANTS_PATH", c.Dataset.TenantsPath)

	switch c.Dataset.Source {
	case "mysql":
		c.Database.MySQL.Host = getEnv("DB_HOST", c.Database.MySQL.Host)
		c.Database.MySQL.Port = getEnvAsInt("DB_PORT", c.Database.MySQL.Port)
		c.Database.MySQL.User = getEnv("DB_USER", c.Database.MySQL.User)
		c.Database.MySQL.Password = getEnv("DB_PASSWORD", c.Database.MySQL.Password)
		c.Database.MySQL.Database = getEnv("DB_NAME", c.Database.MySQL.Database)
	case "postgres":
		c.Database.Postgres.Host = getEnv("DB_HOST", c.Database.Postgres.Host)
		c.Database.Postgres.Port = getEnvAsInt("DB_PORT", c.Database.Postgres.Port)
		c.Database.Postgres.User = getEnv("DB_USER", c.Database.Postgres.User)
		c.Database.Postgres.Password = getEnv("DB_PASSWORD", c.Database.Postgres.Password)
		c.Database.Postgres.Database = getEnv("DB_NAME", c.Database.Postgres.Database)
	}

	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Timezone = getEnv("TZ_NAME", c.Timezone)
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case "csv":
		if c.Dataset.PropertiesPath == "" || c.Dataset.TenantsPath == "" {
			return fmt.Errorf("dataset: properties_path and tenants_path are required for csv source")
		}
		if _, err := c.Dataset.Comma(); err != nil {
			return err
		}
	case "mysql", "postgres":
	default:
		return fmt.Errorf("dataset: unknown source %q", c.Dataset.Source)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("rate_limit: requests_per_minute must be positive when enabled, got %d", c.RateLimit.RequestsPerMinute)
		}
		if c.RateLimit.Burst < 0 {
			return fmt.Errorf("rate_limit: burst must not be negative, got %d", c.RateLimit.Burst)
		}
	}

	if c.Report.DailyRunEnabled {
		if _, err := time.Parse("15:04", c.Report.DailyRunTime); err != nil {
			return fmt.Errorf("report: invalid daily_run_time %q (want HH:MM)", c.Report.DailyRunTime)
		}
	}
	return nil
}

// Comma returns the delimiter as a rune. Empty means ','.
func (c *DatasetConfig) Comma() (rune, error) {
	if c.Delimiter == "" {
		return ',', nil
	}
	if c.Delimiter == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("dataset: delimiter must be a single character, got %q", c.Delimiter)
	}
	return r, nil
}

// Location resolves Timezone. Empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RequestsPerSecond converts the per-minute limit for the limiter
func (c *RateLimitConfig) RequestsPerSecond() float64 {
	return float64(c.RequestsPerMinute) / 60
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
