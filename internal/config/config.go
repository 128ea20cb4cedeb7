// Package config carries the CLI's runtime configuration. Defaults may
// come from an optional YAML settings file; CLAUDEKEY_* environment
// variables override the file; command-line flags override both. The
// keychain store list is deliberately not configurable.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	ckerrors "github.com/agencykit/claudekey/internal/errors"
	"github.com/agencykit/claudekey/internal/logging"
)

// Settings are the user-tunable knobs
type Settings struct {
	// Account is the keychain account name to query with (optional;
	// empty means the store's default item).
	Account string `yaml:"account" env:"CLAUDEKEY_ACCOUNT"`

	// Debug enables per-store diagnostic logging
	Debug bool `yaml:"debug" env:"CLAUDEKEY_DEBUG"`

	// NoColor disables ANSI color in log output
	NoColor bool `yaml:"no_color" env:"NO_COLOR"`
}

// Config holds the runtime configuration shared by all commands
type Config struct {
	Path           string
	Logger         *logging.Logger
	Settings       Settings
	NonInteractive bool
}

// DefaultPath returns the default settings file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "claudekey", "settings.yaml")
}

// Load reads the optional settings file and applies environment
// overrides. A missing file is not an error; a malformed one is.
func (c *Config) Load() error {
	if c.Path != "" {
		data, err := os.ReadFile(c.Path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &c.Settings); err != nil {
				return ckerrors.ConfigError{
					Field:      "path",
					Value:      c.Path,
					Message:    "invalid YAML in settings file",
					Suggestion: "Fix the syntax error or delete the file to use defaults",
				}
			}
		case os.IsNotExist(err):
			// Optional file; defaults apply
		default:
			return ckerrors.UserError{
				Message:    "Failed to read settings file",
				Details:    err.Error(),
				Suggestion: "Check file permissions and path",
				Err:        err,
			}
		}
	}

	if err := env.Parse(&c.Settings); err != nil {
		return ckerrors.UserError{
			Message: "Failed to parse CLAUDEKEY_* environment variables",
			Details: err.Error(),
			Err:     err,
		}
	}

	return nil
}
