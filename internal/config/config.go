// Package config loads provider credentials from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvAPIKey names the environment variable carrying the Apify token.
const EnvAPIKey = "APIFY_API_KEY"

// Config holds application configuration.
type Config struct {
	APIToken string
}

type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory if one exists. Returns an error if the
// provider token is missing; this is checked before any network activity.
func Load() (*Config, error) {
	// Best effort: a missing .env file is fine, real env vars still apply.
	_ = godotenv.Load()

	cfg := Config{APIToken: os.Getenv(EnvAPIKey)}
	if cfg.APIToken == "" {
		return nil, &MissingEnvError{Name: EnvAPIKey}
	}
	return &cfg, nil
}
