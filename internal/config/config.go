// Package config reads runtime configuration from environment variables.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by the CLI binaries. Flags may override
// individual fields.
type Config struct {
	// APIBaseURL is the extraction service base URL.
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8000"`

	// AccessToken is the opaque credential passed through to the batch
	// submission call. Usually obtained via the OAuth flow.
	AccessToken string `envconfig:"ACCESS_TOKEN"`

	// Bucket is the cloud storage bucket holding receipt images.
	Bucket string `envconfig:"GCS_BUCKET"`

	// OAuth client registration for the storage provider.
	OAuthClientID     string `envconfig:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `envconfig:"OAUTH_CLIENT_SECRET"`
	OAuthRedirectURL  string `envconfig:"OAUTH_REDIRECT_URL" default:"http://localhost:8080/callback"`
	OAuthAuthURL      string `envconfig:"OAUTH_AUTH_URL"`
	OAuthTokenURL     string `envconfig:"OAUTH_TOKEN_URL"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the RECEIPT_LENS_* environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("RECEIPT_LENS", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
