package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(0, FormatJSON, &buf)

	l.Info("hello", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "value", rec["key"])
}

func TestNewWithFormat_TextFallback(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(0, Format("yaml"), &buf)

	l.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewWithFormat_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(4, FormatText, &buf)

	l.Info("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(0, FormatText, &buf).With("component", "test")

	l.Info("hello")

	assert.Contains(t, buf.String(), "component=test")
}
