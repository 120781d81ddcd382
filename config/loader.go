package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderConfig holds optional file overrides for Load.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads configuration into cfg. Search order when no explicit paths
// are given: ./config.yml, ./config/config.yml for the config file and
// ./.env for the env file. Environment variables override file values
// (SCRIBE_BACKEND_BASE_URL -> backend.base_url).
func Load(cfg *Config, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.ConfigFile == "" {
		lc.ConfigFile = findFirst("./config.yml", "./config/config.yml")
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFirst("./.env")
	}

	v := viper.New()

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", lc.ConfigFile, err)
		}
	}

	if lc.EnvFile != "" {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return fmt.Errorf("config: load %s: %w", lc.EnvFile, err)
		}
	}

	v.SetEnvPrefix("SCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

// bindEnvKeys registers the known keys so AutomaticEnv can resolve nested
// values that never appear in a config file.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"logger.level", "logger.format", "logger.output", "logger.no_color", "logger.timestamp",
		"backend.base_url", "backend.token", "backend.path_prefix", "backend.timeout", "backend.poll_interval",
		"review.advance_delay",
		"devserver.host", "devserver.port", "devserver.auth_secret", "devserver.sign_secret",
		"devserver.step_delay", "devserver.transcript",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
