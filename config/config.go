package config

import (
	"time"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/validation"
)

// Config is the root configuration for the scribe library and tools.
type Config struct {
	// Logger configures structured logging.
	Logger logger.Config `yaml:"logger" mapstructure:"logger"`

	// Backend configures the remote transcription/inference backend.
	Backend BackendConfig `yaml:"backend" mapstructure:"backend"`

	// Review configures the review navigator.
	Review ReviewConfig `yaml:"review" mapstructure:"review"`

	// DevServer configures the development mock backend.
	DevServer DevServerConfig `yaml:"devserver" mapstructure:"devserver"`
}

// BackendConfig configures the scribe backend client.
type BackendConfig struct {
	// BaseURL is the backend origin, e.g. "https://care.example.com".
	// Defaults to the local dev server.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Token is the bearer token attached to backend requests.
	Token string `yaml:"token" mapstructure:"token"`

	// PathPrefix is the API prefix for scribe resources.
	PathPrefix string `yaml:"path_prefix" mapstructure:"path_prefix"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// PollInterval is the session polling cadence.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
}

// ReviewConfig configures the review navigator.
type ReviewConfig struct {
	// AdvanceDelay is the pause after a verdict before moving to the next
	// suggestion, letting the value-write animation settle.
	AdvanceDelay time.Duration `yaml:"advance_delay" mapstructure:"advance_delay"`
}

// DevServerConfig configures the development mock backend.
type DevServerConfig struct {
	// Host to bind, defaults to localhost.
	Host string `yaml:"host" mapstructure:"host"`
	// Port to bind, defaults to 8425.
	Port int `yaml:"port" mapstructure:"port" validate:"min=0,max=65535"`
	// AuthSecret enables JWT bearer auth when non-empty.
	AuthSecret string `yaml:"auth_secret" mapstructure:"auth_secret"`
	// SignSecret signs upload URLs.
	SignSecret string `yaml:"sign_secret" mapstructure:"sign_secret"`
	// StepDelay is the simulated processing time per lifecycle step.
	StepDelay time.Duration `yaml:"step_delay" mapstructure:"step_delay"`
	// Transcript is the canned transcript returned for every session.
	Transcript string `yaml:"transcript" mapstructure:"transcript"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Logger.ApplyDefaults()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:8425"
	}
	if c.Backend.PathPrefix == "" {
		c.Backend.PathPrefix = "/api/scribe"
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 30 * time.Second
	}
	if c.Backend.PollInterval <= 0 {
		c.Backend.PollInterval = 2500 * time.Millisecond
	}
	if c.Review.AdvanceDelay < 0 {
		c.Review.AdvanceDelay = 0
	} else if c.Review.AdvanceDelay == 0 {
		c.Review.AdvanceDelay = 150 * time.Millisecond
	}
	if c.DevServer.Host == "" {
		c.DevServer.Host = "localhost"
	}
	if c.DevServer.Port == 0 {
		c.DevServer.Port = 8425
	}
	if c.DevServer.SignSecret == "" {
		c.DevServer.SignSecret = "dev-sign-secret"
	}
	if c.DevServer.StepDelay <= 0 {
		c.DevServer.StepDelay = 250 * time.Millisecond
	}
	if c.DevServer.Transcript == "" {
		c.DevServer.Transcript = "No transcript configured for the dev server."
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
