package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()
	filename := filepath.Join(t.TempDir(), "test.log")

	cfg := &Config{
		Level:      "DEBUG",
		Filename:   filename,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Fields:     map[string]string{"service": "laboratorio", "storage": "memory"},
	}

	err := InitLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, Log)

	Log.Info("Test log message")
	Sync()

	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Test log message", entry["msg"])
	assert.Equal(t, "laboratorio", entry["service"])
	assert.Equal(t, "memory", entry["storage"])
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test_invalid.log")
	err := InitLogger(&Config{Level: "INVALID", Filename: filename})
	assert.Error(t, err)

	_, statErr := os.Stat(filename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	l, err := New(&Config{Level: "INFO"})
	require.NoError(t, err)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Log.Info("logging before init")
		Sync()
	})
}
