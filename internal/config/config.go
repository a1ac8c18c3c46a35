package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	DB          DBConfig          `yaml:"db"`
	Log         LogConfig         `yaml:"log"`
	Transport   TransportConfig   `yaml:"transport"`
	Auth        AuthConfig        `yaml:"auth"`
	Recognition RecognitionConfig `yaml:"recognition"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// TransportConfig selects how MCP clients connect: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// AuthConfig controls bearer token auth on the HTTP transport.
type AuthConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DefaultTenant string `yaml:"default_tenant"`
}

// RecognitionConfig tunes the matcher.
type RecognitionConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
	BatchWorkers  int     `yaml:"batch_workers"` // 0 means GOMAXPROCS
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "intentcat.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			DefaultTenant: "default",
		},
		Recognition: RecognitionConfig{
			MinConfidence: 0.6,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("INTENTCAT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("INTENTCAT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("INTENTCAT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INTENTCAT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("INTENTCAT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("INTENTCAT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("INTENTCAT_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("INTENTCAT_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if enabled := os.Getenv("INTENTCAT_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INTENTCAT_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if minStr := os.Getenv("INTENTCAT_MIN_CONFIDENCE"); minStr != "" {
		v, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INTENTCAT_MIN_CONFIDENCE: %w", err)
		}
		cfg.Recognition.MinConfidence = v
	}
	if workers := os.Getenv("INTENTCAT_BATCH_WORKERS"); workers != "" {
		v, err := strconv.Atoi(workers)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INTENTCAT_BATCH_WORKERS: %w", err)
		}
		cfg.Recognition.BatchWorkers = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if !(c.Recognition.MinConfidence > 0 && c.Recognition.MinConfidence <= 1) {
		return fmt.Errorf("min confidence %v outside (0, 1]", c.Recognition.MinConfidence)
	}
	if c.Recognition.BatchWorkers < 0 {
		return fmt.Errorf("batch workers must not be negative")
	}
	if c.Auth.DefaultTenant == "" {
		return fmt.Errorf("default tenant must not be empty")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
