package offerdoc

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config contains all configuration options for the composition engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// StrictMode makes a failing validation report fatal before save
	StrictMode bool
	// NormalizeFonts enables the opt-in formatting normalization pass on
	// inserted content. Bold/italic/underline flags are never touched.
	NormalizeFonts bool
	// DefaultFont is the font applied by normalization
	DefaultFont string
	// DefaultSizePt is the font size in points applied by normalization
	DefaultSizePt int
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		StrictMode:     false,
		NormalizeFonts: false,
		DefaultFont:    "Times New Roman",
		DefaultSizePt:  12,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("OFFERDOC_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("OFFERDOC_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	if val := os.Getenv("OFFERDOC_NORMALIZE_FONTS"); val != "" {
		config.NormalizeFonts = parseBool(val)
	}

	if val := os.Getenv("OFFERDOC_DEFAULT_FONT"); val != "" {
		config.DefaultFont = val
	}

	if val := os.Getenv("OFFERDOC_DEFAULT_SIZE_PT"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.DefaultSizePt = size
		}
	}

	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.DefaultSizePt <= 0 {
		return errors.New("default font size must be positive")
	}

	if c.NormalizeFonts && c.DefaultFont == "" {
		return errors.New("normalization requires a default font")
	}

	return nil
}

func ensureGlobalConfig() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	ensureGlobalConfig()

	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	ensureGlobalConfig()

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
