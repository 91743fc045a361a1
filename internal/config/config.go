// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	Tracing Tracing `envPrefix:"PUBSUB_TRACING_"`
	Spool   Spool   `envPrefix:"SPOOL_"`
	Avatar  Avatar  `envPrefix:"AVATAR_"`
}

// Tracing configures OpenTelemetry export of bus traces.
type Tracing struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"fedocal-messages" validate:"required"`
	ZipkinURL   string `env:"ZIPKIN_URL" envDefault:"http://localhost:9411/api/v2/spans" validate:"omitempty,url"`
}

// Spool configures the directory watcher.
type Spool struct {
	Dir             string `env:"DIR"`
	RemoveProcessed bool   `env:"REMOVE_PROCESSED" envDefault:"true"`
}

// Avatar configures libravatar URLs.
type Avatar struct {
	Size    int    `env:"SIZE" envDefault:"64" validate:"min=1,max=512"`
	Default string `env:"DEFAULT" envDefault:"retro" validate:"oneof=404 mm mp identicon monsterid wavatar retro robohash pagan blank"`
}

// validatorInstance is a package-level validator instance.
var validatorInstance = validator.New()

// Load reads .env when present, then parses and validates the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return parse(env.Options{})
}

// FromMap parses configuration from vars instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validatorInstance.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
