// Package config loads agentdesk settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentdesk/logging"
)

// Supported model providers.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ErrMissingAPIKey is returned by Validate when the selected provider has no key.
var ErrMissingAPIKey = errors.New("api key is not set")

// Config represents the application configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Agents  AgentsConfig  `yaml:"agents"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig selects and tunes the chat-completion backend.
type ModelConfig struct {
	Provider       string        `yaml:"provider"` // groq, openai, anthropic
	Name           string        `yaml:"name"`
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Temperature    float64       `yaml:"temperature"`
	MaxTokens      int           `yaml:"max_tokens"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// AgentsConfig is applied uniformly to every agent the manager builds.
type AgentsConfig struct {
	MaxRetries    *int          `yaml:"max_retries"`
	Verbose       *bool         `yaml:"verbose"`
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	retries, verbose := 2, true
	return &Config{
		Model: ModelConfig{
			Provider:       ProviderGroq,
			Temperature:    0.7,
			MaxTokens:      2048,
			RequestTimeout: 60 * time.Second,
		},
		Agents: AgentsConfig{
			MaxRetries:    &retries,
			Verbose:       &verbose,
			RetryInterval: time.Second,
		},
		Server: ServerConfig{
			Port:            3001,
			AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:3001"},
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (if non-empty) over the defaults and then applies
// environment overrides. It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("AGENTDESK_PROVIDER"); ok && v != "" {
		c.Model.Provider = v
	}
	if v, ok := lookup("AGENTDESK_MODEL"); ok && v != "" {
		c.Model.Name = v
	}
	if c.Model.APIKey == "" {
		if v, ok := lookup(apiKeyEnv(c.Model.Provider)); ok {
			c.Model.APIKey = v
		}
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Logging.Format = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Model.Provider == "" {
		c.Model.Provider = d.Model.Provider
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = d.Model.MaxTokens
	}
	if c.Model.RequestTimeout == 0 {
		c.Model.RequestTimeout = d.Model.RequestTimeout
	}
	if c.Agents.MaxRetries == nil {
		c.Agents.MaxRetries = d.Agents.MaxRetries
	}
	if c.Agents.Verbose == nil {
		c.Agents.Verbose = d.Agents.Verbose
	}
	if c.Agents.RetryInterval == 0 {
		c.Agents.RetryInterval = d.Agents.RetryInterval
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// apiKeyEnv names the environment variable holding the provider's key.
func apiKeyEnv(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if c.Model.APIKey == "" {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, apiKeyEnv(c.Model.Provider))
	}
	if c.MaxRetries() < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries())
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// MaxRetries returns the configured retry count.
func (c *Config) MaxRetries() int {
	if c.Agents.MaxRetries == nil {
		return *Default().Agents.MaxRetries
	}
	return *c.Agents.MaxRetries
}

// Verbose returns the configured verbosity.
func (c *Config) Verbose() bool {
	if c.Agents.Verbose == nil {
		return *Default().Agents.Verbose
	}
	return *c.Agents.Verbose
}
