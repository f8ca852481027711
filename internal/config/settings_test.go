package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, settings.Timeout)
	assert.Equal(t, "restkit/0.1.0", settings.UserAgent)
	assert.Equal(t, "text", settings.Output)
	assert.False(t, settings.Debug)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", settings.DemoURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("RESTKIT_TIMEOUT", "5")
	t.Setenv("RESTKIT_OUTPUT", "yaml")
	t.Setenv("RESTKIT_NO_COLOR", "true")
	t.Setenv("RESTKIT_DEBUG", "1")
	t.Setenv("RESTKIT_USER_AGENT", "ci-bot/2")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, settings.Timeout)
	assert.Equal(t, "yaml", settings.Output)
	assert.True(t, settings.NoColor)
	assert.True(t, settings.Debug)
	assert.Equal(t, "ci-bot/2", settings.UserAgent)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero timeout", "RESTKIT_TIMEOUT", "0"},
		{"non numeric timeout", "RESTKIT_TIMEOUT", "soon"},
		{"unknown output", "RESTKIT_OUTPUT", "xml"},
		{"bad demo url", "RESTKIT_DEMO_URL", "file:///etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	errs := Validate(&Settings{Timeout: -1, Output: "csv"})
	require.Len(t, errs, 2)
	assert.Equal(t, "RESTKIT_TIMEOUT", errs[0].Path)
	assert.Equal(t, "RESTKIT_OUTPUT", errs[1].Path)
}
