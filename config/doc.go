// Package config loads scribe configuration from a YAML file, a .env file,
// and environment variables, in that order of increasing precedence.
package config
