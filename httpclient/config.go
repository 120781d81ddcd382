package httpclient

import (
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}

// AuthConfig describes request authentication.
type AuthConfig struct {
	// Token is sent as a Bearer token when non-empty.
	Token string
	// Header overrides the header name (default "Authorization").
	Header string
}

// BearerAuth creates an AuthConfig for a Bearer token.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Token: token}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	header := a.Header
	if header == "" {
		header = "Authorization"
	}
	req.Header.Set(header, "Bearer "+a.Token)
}
