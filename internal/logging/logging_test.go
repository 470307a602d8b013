package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerIsNoop(t *testing.T) {
	var logger Logger
	assert.True(t, logger.IsZero())
	assert.NotPanics(t, func() {
		logger.Info("ignored", String("k", "v"))
	})
}

func TestWriterLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "debug").With(String("component", "scheduler"))

	logger.Warn("announce failed", Int("attempt", 2), Err(errors.New("boom")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "announce failed", entry["message"])
	assert.Equal(t, "scheduler", entry["component"])
	assert.EqualValues(t, 2, entry["attempt"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry["caller"], "logging_test.go")
}

func TestWriterLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "warn")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pomodoro.log")
	logger, closer, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	logger, closer, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, logger.IsZero())
	assert.NoError(t, closer())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG", zerolog.InfoLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("", zerolog.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("nonsense", zerolog.WarnLevel))
}
