// Package config loads the optional azup.yaml defaults file. Everything in it
// can be overridden by explicit command-line arguments; everything missing
// falls back to hardcoded defaults at resolution time.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/azup/internal/errors"
	"github.com/systmms/azup/internal/logging"
)

// Config holds the runtime configuration shared by all commands.
type Config struct {
	Path     string
	Logger   *logging.Logger
	Defaults Defaults
}

// Defaults is the azup.yaml structure: flat fallback values for the
// invocation context.
type Defaults struct {
	Project      string `yaml:"project"`
	Environment  string `yaml:"environment"`
	Location     string `yaml:"location"`
	Subscription string `yaml:"subscription"`
	Template     string `yaml:"template"`
}

// Load reads the defaults file. A missing file is not an error, the file is
// optional; a malformed one is.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return dserrors.UserError{
			Message:    "Failed to read defaults file " + c.Path,
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var defaults Defaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return dserrors.ConfigError{
			Field:      "path",
			Value:      c.Path,
			Message:    "invalid YAML syntax in defaults file",
			Suggestion: "Check for indentation errors or missing quotes",
		}
	}

	c.Defaults = defaults
	return nil
}
