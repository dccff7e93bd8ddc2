package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
)

func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	logger, err := New(&config.LoggingConfig{Level: level, Format: "json", Output: "stdout"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	return logger, buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "loud", Format: "json", Output: "stdout"})
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	logger, err := New(&config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestLogDestination_Success(t *testing.T) {
	logger, buf := newBufferLogger(t, "info")

	logger.LogDestination("64b7f0c2a1b2c3d4e5f60718", "user-1", "create", true, map[string]interface{}{
		"shipping_lines": 2,
	})

	entry := decodeEntry(t, buf)
	assert.Equal(t, "Destination event", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "destination", entry["type"])
	assert.Equal(t, "create", entry["action"])
	assert.EqualValues(t, 2, entry["shipping_lines"])
}

func TestLogDestination_Rejected(t *testing.T) {
	logger, buf := newBufferLogger(t, "info")

	logger.LogDestination("64b7f0c2a1b2c3d4e5f60718", "user-1", "add_shipping_line", false, nil)

	entry := decodeEntry(t, buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, false, entry["success"])
}

func TestLogDatabase_Error(t *testing.T) {
	logger, buf := newBufferLogger(t, "debug")

	logger.LogDatabase("mongodb", "find", "pod_destinations", 12, errors.New("connection reset"))

	entry := decodeEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "connection reset", entry["error"])
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	assert.False(t, logger.IsDebug())
	logger.Error("dropped")
}
