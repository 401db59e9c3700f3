package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pevans/newspulse/headlines"
	"gopkg.in/yaml.v3"
)

// File configuration validation errors.
var (
	ErrInvalidPageSize    = errors.New("provider.page_size must be between 1 and 100")
	ErrInvalidFailureRate = errors.New("summarizer.failure_rate must be between 0 and 1")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidRetry       = errors.New("retry.max_tries must be at least 1")
)

// ProviderConfig configures the headlines provider.
type ProviderConfig struct {
	BaseURL    string            `yaml:"base_url"`
	APIKey     string            `yaml:"api_key"`
	Country    string            `yaml:"country"`
	PageSize   int               `yaml:"page_size"`
	Categories map[string]string `yaml:"categories"`
	Timeout    time.Duration     `yaml:"timeout"`
}

// StorageConfig configures local storage.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SummarizerConfig configures the simulated summarizer.
type SummarizerConfig struct {
	Delay       time.Duration `yaml:"delay"`
	Jitter      time.Duration `yaml:"jitter"`
	FailureRate *float64      `yaml:"failure_rate"`
}

// RetryConfig configures how readers retry unreachable providers.
type RetryConfig struct {
	MaxTries        uint          `yaml:"max_tries"`
	InitialInterval time.Duration `yaml:"initial_interval"`
}

// FileConfig represents the structure of ~/.newspulse/config.yaml.
type FileConfig struct {
	Provider   ProviderConfig   `yaml:"provider"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Retry      RetryConfig      `yaml:"retry"`
}

// DefaultConfigPath returns ~/.newspulse/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".newspulse", "config.yaml"), nil
}

// LoadConfigFile loads configuration from path, or from
// ~/.newspulse/config.yaml when path is empty. A missing file is not an
// error; defaults apply. Environment overrides are applied last.
func LoadConfigFile(path string) (*FileConfig, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// File doesn't exist -- not an error
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// applyEnv overrides file values with NEWSPULSE_* environment variables.
func (c *FileConfig) applyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"NEWSPULSE_API_KEY", &c.Provider.APIKey},
		{"NEWSPULSE_BASE_URL", &c.Provider.BaseURL},
		{"NEWSPULSE_DSN", &c.Storage.DSN},
		{"NEWSPULSE_ADDR", &c.Server.Addr},
		{"NEWSPULSE_LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if value := os.Getenv(o.key); value != "" {
			*o.dst = value
		}
	}
}

// setDefaults applies default values to unset fields.
func (c *FileConfig) setDefaults() {
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = headlines.DefaultBaseURL
	}
	if c.Provider.Country == "" {
		c.Provider.Country = "us"
	}
	if c.Provider.PageSize == 0 {
		c.Provider.PageSize = 30
	}
	if c.Provider.Categories == nil {
		c.Provider.Categories = make(map[string]string, len(headlines.DefaultCategoryTokens))
		for k, v := range headlines.DefaultCategoryTokens {
			c.Provider.Categories[string(k)] = v
		}
	}
	if c.Storage.DSN == "" {
		c.Storage.DSN = "newspulse.db"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Summarizer.Delay == 0 {
		c.Summarizer.Delay = 1100 * time.Millisecond
	}
	if c.Summarizer.Jitter == 0 {
		c.Summarizer.Jitter = 900 * time.Millisecond
	}
	if c.Summarizer.FailureRate == nil {
		rate := 0.13
		c.Summarizer.FailureRate = &rate
	}
	if c.Retry.MaxTries == 0 {
		c.Retry.MaxTries = 3
	}
	if c.Retry.InitialInterval == 0 {
		c.Retry.InitialInterval = 500 * time.Millisecond
	}
}

// Validate checks the configuration for values no component can use.
func (c *FileConfig) Validate() error {
	if c.Provider.PageSize < 1 || c.Provider.PageSize > 100 {
		return ErrInvalidPageSize
	}
	for name := range c.Provider.Categories {
		if err := ValidateCategories([]string{name}); err != nil {
			return fmt.Errorf("provider.categories: %w", err)
		}
	}
	if rate := c.Summarizer.FailureRate; rate != nil && (*rate < 0 || *rate > 1) {
		return ErrInvalidFailureRate
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if c.Retry.MaxTries < 1 {
		return ErrInvalidRetry
	}
	return nil
}

// HeadlinesConfig builds the retrieval service configuration.
func (c *FileConfig) HeadlinesConfig() *headlines.Config {
	tokens := make(map[headlines.Category]string, len(c.Provider.Categories))
	for name, token := range c.Provider.Categories {
		tokens[headlines.Category(name)] = token
	}

	return &headlines.Config{
		BaseURL:        c.Provider.BaseURL,
		APIKey:         c.Provider.APIKey,
		Country:        c.Provider.Country,
		PageSize:       c.Provider.PageSize,
		CategoryTokens: tokens,
		HTTPClient:     &http.Client{Timeout: c.Provider.Timeout},
		Now:            time.Now,
	}
}
