// Package config resolves the API credential from the process environment so
// the rest of the program receives an explicit value instead of reading
// os.Getenv ad hoc.
package config

import (
	"errors"
	"os"
)

// EnvAPIKey is the only environment variable the tool reads.
const EnvAPIKey = "OPENAI_API_KEY"

// ErrMissingCredential is returned when the credential variable is unset or
// empty. It is fatal at startup, no files are touched.
var ErrMissingCredential = errors.New(EnvAPIKey + " is not set")

// Config carries the resolved credential.
type Config struct {
	APIKey string
}

// Load reads the credential from the environment.
func Load() (*Config, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, ErrMissingCredential
	}

	return &Config{APIKey: key}, nil
}
