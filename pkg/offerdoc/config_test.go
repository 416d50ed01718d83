package offerdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.StrictMode)
	assert.False(t, config.NormalizeFonts)
	assert.Equal(t, "Times New Roman", config.DefaultFont)
	assert.Equal(t, 12, config.DefaultSizePt)
	require.NoError(t, config.Validate())
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("OFFERDOC_LOG_LEVEL", "debug")
	t.Setenv("OFFERDOC_STRICT_MODE", "true")
	t.Setenv("OFFERDOC_NORMALIZE_FONTS", "yes")
	t.Setenv("OFFERDOC_DEFAULT_FONT", "Arial")
	t.Setenv("OFFERDOC_DEFAULT_SIZE_PT", "11")

	config := ConfigFromEnvironment()
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.StrictMode)
	assert.True(t, config.NormalizeFonts)
	assert.Equal(t, "Arial", config.DefaultFont)
	assert.Equal(t, 11, config.DefaultSizePt)
}

func TestConfigFromEnvironmentIgnoresBadSize(t *testing.T) {
	t.Setenv("OFFERDOC_DEFAULT_SIZE_PT", "not-a-number")

	config := ConfigFromEnvironment()
	assert.Equal(t, 12, config.DefaultSizePt)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "off level", mutate: func(c *Config) { c.LogLevel = "off" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, expectError: true},
		{name: "zero size", mutate: func(c *Config) { c.DefaultSizePt = 0 }, expectError: true},
		{
			name: "normalization without font",
			mutate: func(c *Config) {
				c.NormalizeFonts = true
				c.DefaultFont = ""
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGlobalConfigReturnsCopy(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	config := GetGlobalConfig()
	config.DefaultFont = "Mutated"

	assert.NotEqual(t, "Mutated", GetGlobalConfig().DefaultFont)
}

func TestSetGlobalConfig(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	custom := DefaultConfig()
	custom.StrictMode = true
	SetGlobalConfig(custom)

	assert.True(t, GetGlobalConfig().StrictMode)
}

func TestParseBool(t *testing.T) {
	for _, val := range []string{"true", "1", "yes", "on", " TRUE "} {
		assert.True(t, parseBool(val), val)
	}
	for _, val := range []string{"false", "0", "no", "off", ""} {
		assert.False(t, parseBool(val), val)
	}
}
