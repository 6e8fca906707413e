// Package config provides configuration loading and management for Jia.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete Jia configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	History HistoryConfig `yaml:"history"`
	Intent  IntentConfig  `yaml:"intent"`
	NATS    NATSConfig    `yaml:"nats"`
}

// ServerConfig configures the HTTP gateway
type ServerConfig struct {
	// Addr is the listen address (default: ":8080")
	Addr string `yaml:"addr"`
	// APIPrefix is the path prefix the assistant API is mounted under
	APIPrefix string `yaml:"api_prefix"`
}

// ModelConfig configures the LLM model settings
type ModelConfig struct {
	// RegistryFile is an optional JSON model registry; empty uses the
	// built-in Groq defaults
	RegistryFile string `yaml:"registry_file"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig configures conversation retention
type HistoryConfig struct {
	// Limit is the maximum messages kept per conversation
	Limit int `yaml:"limit"`
	// PromptWindow is how many trailing messages are embedded in prompts
	PromptWindow int `yaml:"prompt_window"`
}

// IntentConfig configures planning-intent classification
type IntentConfig struct {
	// MinWords is the word count a message must exceed
	MinWords int `yaml:"min_words"`
	// MinKeywords is the minimum number of distinct planning keywords
	MinKeywords int `yaml:"min_keywords"`
}

// NATSConfig configures the NATS connection for durable storage
type NATSConfig struct {
	// URL is the NATS server URL (empty = in-memory stores)
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			APIPrefix: "/api/ai",
		},
		Model: ModelConfig{
			RegistryFile: "",
			Timeout:      60 * time.Second,
		},
		History: HistoryConfig{
			Limit:        20,
			PromptWindow: 5,
		},
		Intent: IntentConfig{
			MinWords:    50,
			MinKeywords: 3,
		},
		NATS: NATSConfig{
			URL: "",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive")
	}
	if c.History.PromptWindow <= 0 {
		return fmt.Errorf("history.prompt_window must be positive")
	}
	if c.Intent.MinWords < 0 {
		return fmt.Errorf("intent.min_words must not be negative")
	}
	if c.Intent.MinKeywords <= 0 {
		return fmt.Errorf("intent.min_keywords must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.APIPrefix != "" {
		c.Server.APIPrefix = other.Server.APIPrefix
	}

	// Model
	if other.Model.RegistryFile != "" {
		c.Model.RegistryFile = other.Model.RegistryFile
	}
	if other.Model.Timeout != 0 {
		c.Model.Timeout = other.Model.Timeout
	}

	// History
	if other.History.Limit != 0 {
		c.History.Limit = other.History.Limit
	}
	if other.History.PromptWindow != 0 {
		c.History.PromptWindow = other.History.PromptWindow
	}

	// Intent
	if other.Intent.MinWords != 0 {
		c.Intent.MinWords = other.Intent.MinWords
	}
	if other.Intent.MinKeywords != 0 {
		c.Intent.MinKeywords = other.Intent.MinKeywords
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}
