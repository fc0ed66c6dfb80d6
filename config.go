package client

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPrefix is the environment variable prefix read by [LoadConfig]
// when called with an empty prefix.
const DefaultEnvPrefix = "CLEARPASS"

// Config holds connection settings read from the environment, e.g.
// CLEARPASS_BASE_URL or CLEARPASS_CLIENT_SECRET.
type Config struct {
	BaseURL      string `envconfig:"BASE_URL" required:"true"`
	ClientID     string `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"CLIENT_SECRET" required:"true"`
	Username     string `envconfig:"USERNAME"`
	Password     string `envconfig:"PASSWORD"`
	GrantType    string `envconfig:"GRANT_TYPE" default:"client_credentials"`
	Debug        bool   `envconfig:"DEBUG" default:"false"`
}

// LoadConfig reads a [Config] from environment variables named
// <prefix>_<KEY>.
func LoadConfig(prefix string) (*Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", prefix, err)
	}

	return &cfg, nil
}

// Credentials returns the OAuth parameters held by cfg.
func (cfg *Config) Credentials() Credentials {
	return Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
		GrantType:    cfg.GrantType,
	}
}

// NewFromConfig is [New] with the base URL, credentials and debug flag taken
// from cfg. opts are applied after the settings derived from cfg.
func NewFromConfig(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	all := append([]Option{WithDebug(cfg.Debug)}, opts...)
	return New(ctx, cfg.BaseURL, cfg.Credentials(), all...)
}
