package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	logger := slog.New(h)

	logger.Info("wipe complete", "path", "/tmp/a", "passes", 3)

	assert.Contains(t, a.String(), "wipe complete")
	assert.Contains(t, a.String(), "path=/tmp/a")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &rec))
	assert.Equal(t, "wipe complete", rec["msg"])
	assert.Equal(t, "/tmp/a", rec["path"])
}

func TestMultiHandler_LevelFiltering(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(h)

	logger.Debug("pass started")
	logger.Warn("sync degraded")

	assert.Contains(t, debugBuf.String(), "pass started")
	assert.Contains(t, debugBuf.String(), "sync degraded")

	assert.NotContains(t, warnBuf.String(), "pass started")
	assert.Contains(t, warnBuf.String(), "sync degraded")
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandler_EmptyNeverEnabled(t *testing.T) {
	h := NewMultiHandler()
	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)
	logger := slog.New(h).With("run", "abc123")

	logger.Info("started")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		assert.Contains(t, buf.String(), "run=abc123")
	}
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(h).WithGroup("file")

	logger.Info("wiped", "path", "/tmp/a")

	assert.Contains(t, buf.String(), "file.path=/tmp/a")
}

func TestMultiHandler_CloneIsolatesRecords(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	logger := slog.New(h)

	logger.Info("event", "n", 1)

	// Both handlers received an independent, complete record.
	require.Equal(t, 1, strings.Count(a.String(), "\n"))
	require.Equal(t, 1, strings.Count(b.String(), "\n"))

	var ra, rb map[string]any
	require.NoError(t, json.Unmarshal(a.Bytes(), &ra))
	require.NoError(t, json.Unmarshal(b.Bytes(), &rb))
	assert.Equal(t, ra["n"], rb["n"])
}
