// Package config loads bookshelf settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// Prefix is prepended to every variable name.
	Prefix = "BOOKSHELF_"
	// DefaultEnvFile is loaded when present and BOOKSHELF_ENV_FILE is unset.
	DefaultEnvFile = ".env"
)

// Format values accepted for rendering the current book.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// Config holds settings read from BOOKSHELF_* variables.
type Config struct {
	// CatalogPath is a YAML catalog file; empty means the built-in catalog.
	CatalogPath string `env:"CATALOG"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Format selects text, json or html output.
	Format string `env:"FORMAT" envDefault:"text"`
	// NoColor disables ANSI colours in logs and highlighted output.
	NoColor bool `env:"NO_COLOR"`
	// Style is the chroma style used for highlighted JSON.
	Style string `env:"STYLE" envDefault:"monokai"`
}

// Load reads the optional .env file and then parses the environment.
// Variables already set in the process win over the file.
func Load() (Config, error) {
	path, explicit := os.LookupEnv(Prefix + "ENV_FILE")
	if !explicit || strings.TrimSpace(path) == "" {
		path, explicit = DefaultEnvFile, false
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %q: %w", path, err)
		}
	}
	return Parse()
}

// Parse reads configuration from the process environment only. The result
// is not validated; flags may still replace any field.
func Parse() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields once flags have been applied.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatHTML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", c.Format, FormatText, FormatJSON, FormatHTML)
	}
}
