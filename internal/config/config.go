package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig describes the remote object-listing store the feed reads
// from. PublicBaseURL is the prefix event endpoints are built from.
type StoreConfig struct {
	BaseURL       string
	Bucket        string
	PublicBaseURL string
	Timeout       time.Duration
}

type RateLimitConfig struct {
	PublicPerMinute int
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load builds the configuration from environment variables.
func Load() (Config, error) {
	cfg := defaults()
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file, then lets environment variables
// override it.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := defaults()
	file.apply(&cfg)
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			BaseURL: "https://storage.googleapis.com",
			Timeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Environment: "development",
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)

	cfg.Store.BaseURL = getEnv("STORE_BASE_URL", cfg.Store.BaseURL)
	cfg.Store.Bucket = getEnv("STORE_BUCKET", cfg.Store.Bucket)
	cfg.Store.PublicBaseURL = getEnv("STORE_PUBLIC_BASE_URL", cfg.Store.PublicBaseURL)
	cfg.Store.Timeout = getEnvDuration("STORE_TIMEOUT", cfg.Store.Timeout)

	cfg.RateLimit.PublicPerMinute = getEnvInt("RATE_LIMIT_PUBLIC", cfg.RateLimit.PublicPerMinute)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = splitList(origins)
	}

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
}

func (c *Config) validate() error {
	if c.Store.Bucket == "" {
		return fmt.Errorf("STORE_BUCKET is required")
	}
	if c.Store.BaseURL == "" {
		return fmt.Errorf("STORE_BASE_URL is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	c.Store.BaseURL = strings.TrimSuffix(c.Store.BaseURL, "/")
	if c.Store.PublicBaseURL == "" {
		c.Store.PublicBaseURL = fmt.Sprintf("%s/%s", c.Store.BaseURL, c.Store.Bucket)
	}

	// Only development trusts every origin.
	c.CORS.AllowAllOrigins = c.Environment == "development" && len(c.CORS.AllowedOrigins) == 0

	return nil
}

// fileConfig mirrors Config for YAML parsing; zero values leave the
// defaults untouched.
type fileConfig struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Store struct {
		BaseURL       string `yaml:"base_url"`
		Bucket        string `yaml:"bucket"`
		PublicBaseURL string `yaml:"public_base_url"`
		Timeout       string `yaml:"timeout"`
	} `yaml:"store"`
	RateLimit struct {
		PublicPerMinute int `yaml:"public_per_minute"`
	} `yaml:"rate_limit"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Environment string `yaml:"environment"`
}

func (f fileConfig) apply(cfg *Config) {
	if f.Server.Host != "" {
		cfg.Server.Host = f.Server.Host
	}
	if f.Server.Port != 0 {
		cfg.Server.Port = f.Server.Port
	}
	if f.Store.BaseURL != "" {
		cfg.Store.BaseURL = f.Store.BaseURL
	}
	if f.Store.Bucket != "" {
		cfg.Store.Bucket = f.Store.Bucket
	}
	if f.Store.PublicBaseURL != "" {
		cfg.Store.PublicBaseURL = f.Store.PublicBaseURL
	}
	if f.Store.Timeout != "" {
		if parsed, err := time.ParseDuration(f.Store.Timeout); err == nil {
			cfg.Store.Timeout = parsed
		}
	}
	if f.RateLimit.PublicPerMinute != 0 {
		cfg.RateLimit.PublicPerMinute = f.RateLimit.PublicPerMinute
	}
	if len(f.CORS.AllowedOrigins) > 0 {
		cfg.CORS.AllowedOrigins = f.CORS.AllowedOrigins
	}
	if f.Logging.Level != "" {
		cfg.Logging.Level = f.Logging.Level
	}
	if f.Logging.Format != "" {
		cfg.Logging.Format = f.Logging.Format
	}
	if f.Environment != "" {
		cfg.Environment = f.Environment
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
