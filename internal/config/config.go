package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"mesa-console/internal/config/configs"
)

// Config aggregates all configuration sections for the console. Fields are
// populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). Outside
	// of prod the session cookie is not marked Secure.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection used by the preference
	// store. Environment variables prefixed with PSQL_ will populate this
	// struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Prefs selects the preference store backend.
	Prefs configs.Preferences `envPrefix:"PREFS_"`

	// Backend points at the upstream REST services.
	Backend configs.Backend `envPrefix:"BACKEND_"`

	// Auth configures token verification.
	Auth configs.Auth `envPrefix:"AUTH_"`

	// Session configures the browser session cookie.
	Session configs.Session `envPrefix:"SESSION_"`

	// Otel configures trace export.
	Otel configs.Otel `envPrefix:"OTEL_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
