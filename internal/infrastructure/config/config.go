package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Backend   BackendConfig   `toml:"backend"`
	Logging   LogConfig       `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Console   ConsoleConfig   `toml:"console"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"3000" toml:"port"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0" toml:"host"`
	Gzip            bool     `envconfig:"SERVER_GZIP" default:"true" toml:"gzip"`
	ShutdownTimeout Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" toml:"shutdown_timeout"`
}

// BackendConfig holds the disk backend connection settings.
type BackendConfig struct {
	URL             string   `envconfig:"BACKEND_URL" default:"http://localhost:3001" toml:"url"`
	Timeout         Duration `envconfig:"BACKEND_TIMEOUT" default:"30s" toml:"timeout"`
	Retries         int      `envconfig:"BACKEND_RETRIES" default:"2" toml:"retries"`
	RPS             float64  `envconfig:"BACKEND_RPS" default:"0" toml:"rps"`
	BreakerFailures uint32   `envconfig:"BACKEND_BREAKER_FAILURES" default:"5" toml:"breaker_failures"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20" toml:"rps"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" toml:"enabled"`
}

// ConsoleConfig bounds the scripts accepted by the console.
type ConsoleConfig struct {
	MaxScriptBytes int64 `envconfig:"CONSOLE_MAX_SCRIPT_BYTES" default:"1048576" toml:"max_script_bytes"`
	MaxLines       int   `envconfig:"CONSOLE_MAX_LINES" default:"5000" toml:"max_lines"`
}

// Duration is a time.Duration read from strings such as "10s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads the environment configuration and applies the TOML file at
// path on top of it. Keys missing from the file keep their environment value.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			Host:            "0.0.0.0",
			Gzip:            true,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Backend: BackendConfig{
			URL:             "http://localhost:3001",
			Timeout:         Duration(30 * time.Second),
			Retries:         2,
			RPS:             0,
			BreakerFailures: 5,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
		Console: ConsoleConfig{
			MaxScriptBytes: 1 << 20,
			MaxLines:       5000,
		},
	}
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
