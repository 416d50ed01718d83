package offerdoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogOff)

	logger.Error("should not appear")
	assert.Empty(t, buf.String())
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo)

	logger.Info("merged %d blocks", 3)

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[INFO] merged 3 blocks")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo)

	logger.WithFields(Fields{"anchor": "1.2 Details"}).Info("merge done")

	output := buf.String()
	assert.Contains(t, output, "merge done")
	assert.Contains(t, output, "anchor=1.2 Details")
}

func TestLoggerWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo)

	child := logger.WithField("fragment", 2)
	require.NotSame(t, logger, child)

	logger.Info("parent message")
	assert.NotContains(t, buf.String(), "fragment=2")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogDebug},
		{"info", LogInfo},
		{"warn", LogWarn},
		{"error", LogError},
		{"off", LogOff},
		{"unknown", LogInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.input), tt.input)
	}
}

func TestNilWriterDiscards(t *testing.T) {
	logger := NewLogger(nil, LogDebug)
	// must not panic
	logger.Info("to the void")
}
