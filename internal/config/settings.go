// Package config resolves the command line defaults from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/wesleyorama2/restkit/http"
	"github.com/wesleyorama2/restkit/internal/output"
)

// EnvPrefix is prepended to every variable name, e.g. RESTKIT_TIMEOUT.
const EnvPrefix = "RESTKIT"

// Settings holds the defaults applied before command line flags.
type Settings struct {
	// Timeout is the request timeout in seconds
	Timeout int `envconfig:"TIMEOUT" default:"30"`

	// UserAgent is sent when no User-Agent header is given
	UserAgent string `envconfig:"USER_AGENT" default:"restkit/0.1.0"`

	// Output is the response rendering: text, json or yaml
	Output string `envconfig:"OUTPUT" default:"text"`

	NoColor bool `envconfig:"NO_COLOR"`
	Debug   bool `envconfig:"DEBUG"`

	// DemoURL is the API exercised by the demo command
	DemoURL string `envconfig:"DEMO_URL" default:"https://jsonplaceholder.typicode.com"`
}

// ValidationError represents a settings validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads the settings from the environment and validates them.
func Load() (*Settings, error) {
	var settings Settings
	if err := envconfig.Process(EnvPrefix, &settings); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	if errs := Validate(&settings); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, err := range errs {
			messages[i] = err.Error()
		}
		return nil, fmt.Errorf("invalid settings: %s", strings.Join(messages, "; "))
	}

	return &settings, nil
}

// Validate checks the settings and returns every problem found.
func Validate(settings *Settings) []ValidationError {
	var errors []ValidationError

	if settings.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Path:    EnvPrefix + "_TIMEOUT",
			Message: fmt.Sprintf("must be a positive number of seconds, got %d", settings.Timeout),
		})
	}

	if _, err := output.ParseFormat(settings.Output); err != nil {
		errors = append(errors, ValidationError{
			Path:    EnvPrefix + "_OUTPUT",
			Message: err.Error(),
		})
	}

	if settings.DemoURL != "" {
		if err := http.ValidateURL(settings.DemoURL); err != nil {
			errors = append(errors, ValidationError{
				Path:    EnvPrefix + "_DEMO_URL",
				Message: err.Error(),
			})
		}
	}

	return errors
}
