// Package config loads the configuration of the librarian command.
//
// Values come from LIBRARIAN_ prefixed environment variables, optionally
// read from a `.env` file in the working directory. Nested keys use a dot,
// or an underscore after the section name:
//
//	LIBRARIAN_LOG_LEVEL=debug      -> log.level
//	LIBRARIAN_OUTPUT.PRETTY=true   -> output.pretty
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment, if one exists.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LIBRARIAN_"

// Config is the root configuration object of the command.
type Config struct {
	Log    LogConfig    `koanf:"log" validate:"required"`
	Output OutputConfig `koanf:"output"`
}

// LogConfig controls the diagnostic log written to stderr.
type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error disabled"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Pretty bool `koanf:"pretty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Pretty: true},
	}
}

// Load reads the environment on top of [Default] and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// envKey maps LIBRARIAN_LOG_LEVEL to log.level. Only the first underscore
// after the prefix nests, so keys may themselves contain underscores.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if strings.Contains(key, ".") {
		return key
	}
	return strings.Replace(key, "_", ".", 1)
}
