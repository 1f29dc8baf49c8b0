package clientcli

import (
	"os"

	"github.com/takeshixx/kleber"
)

// DefaultEndpoint is the default service URL.
const DefaultEndpoint = kleber.DefaultURL

// Config holds resolved client configuration.
type Config struct {
	Endpoint string
	APIKey   string
}

// WithDefaults returns a copy of the config with default values applied.
// If Endpoint is empty, it defaults to DefaultEndpoint.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &cfg
}

// ValidateWithAuth checks that an API key is set.
func (c *Config) ValidateWithAuth() error {
	if c.APIKey == "" {
		return kleber.ErrCredentialMissing
	}
	return nil
}

// ConfigFromEnv loads config from environment variables.
func ConfigFromEnv() *Config {
	return &Config{
		Endpoint: os.Getenv("KLEBER_ENDPOINT"),
		APIKey:   os.Getenv("KLEBER_API_KEY"),
	}
}

// MergeConfig merges multiple configs, with later configs taking precedence.
// Empty strings in later configs do not override non-empty values in earlier configs.
func MergeConfig(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Endpoint != "" {
			result.Endpoint = cfg.Endpoint
		}
		if cfg.APIKey != "" {
			result.APIKey = cfg.APIKey
		}
	}
	return result
}
