package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "session_id", "s-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "s-1", entry["session_id"])
}

func TestNewTextDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("session started", "class_id", "S6-CSE")
	assert.Contains(t, buf.String(), "class_id=S6-CSE")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	require.ErrorContains(t, err, "parse log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.ErrorContains(t, err, "unsupported log format")
}
