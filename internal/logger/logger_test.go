package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesConsoleAndJSON(t *testing.T) {
	var console, file bytes.Buffer
	l := NewWithWriters(&console, &file, DEBUG)

	l.Info("catalog", "loaded 8 events")

	assert.Contains(t, console.String(), "INFO")
	assert.Contains(t, console.String(), "[CATALOG   ]")
	assert.Contains(t, console.String(), "loaded 8 events")
	assert.Contains(t, console.String(), "logger_test.go:")

	var entry LogEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(file.Bytes()), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "CATALOG", entry.Category)
	assert.Equal(t, "loaded 8 events", entry.Message)
	assert.Equal(t, "logger_test.go", entry.File)
}

func TestLogger_LevelFilter(t *testing.T) {
	var console bytes.Buffer
	l := NewWithWriters(&console, nil, WARN)

	l.Debug("cache", "hit")
	l.Info("cache", "refresh")
	l.Warn("cache", "redis unavailable")
	l.Error("cache", "invalidate failed")

	out := console.String()
	assert.NotContains(t, out, "hit")
	assert.NotContains(t, out, "refresh")
	assert.Contains(t, out, "redis unavailable")
	assert.Contains(t, out, "invalidate failed")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLogger_SpecializedHelpers(t *testing.T) {
	var console bytes.Buffer
	l := NewWithWriters(&console, nil, DEBUG)

	l.LogCatalog("REGISTER", 1, "a@b.com registered")
	l.LogAPI("GET", "/events", 200, 3*time.Millisecond)
	l.LogCache("MISS", "events")

	out := console.String()
	assert.Contains(t, out, "[REGISTER] event 1 - a@b.com registered")
	assert.Contains(t, out, "GET /events - 200 (3ms)")
	assert.Contains(t, out, "[MISS] events")
}

func TestDiscardAndNil(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("x", "dropped")
		var l *Logger
		l.Info("x", "dropped")
		l.Close()
	})
}

func TestNew_CreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Options{Dir: dir, Service: "catalog", Level: INFO})
	require.NoError(t, err)
	l.console = nil
	l.Warn("test", "to file")
	l.Close()

	matches, err := filepath.Glob(filepath.Join(dir, "catalog-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel(" ERROR "))
	assert.Equal(t, INFO, ParseLevel(""))
}
