package slogx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected slog.Level
		isError  bool
	}{
		"Debug":      {input: "debug", expected: slog.LevelDebug},
		"Upper case": {input: "WARN", expected: slog.LevelWarn},
		"Error":      {input: "Error", expected: slog.LevelError},
		"Invalid":    {input: "loud", expected: slog.LevelInfo, isError: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.isError {
				assert.ErrorIs(t, err, ErrLevel)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestNewConsoleHandler(t *testing.T) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(slog.LevelWarn)
	log := slog.New(NewConsoleHandler(&buf, &level))

	log.Info("Hidden message")
	assert.Empty(t, buf.String())

	log.Warn("Shown message", "command", "server_list")
	assert.Contains(t, buf.String(), "Shown message")
	assert.Contains(t, buf.String(), "command=server_list")

	buf.Reset()
	level.Set(slog.LevelDebug)
	log.With("prog", "cloud").Debug("Parsed arguments")
	assert.Contains(t, buf.String(), "Parsed arguments")
	assert.Contains(t, buf.String(), "prog=cloud")
}

func TestNewConsoleHandler_WithoutColor(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsoleHandler(&buf, slog.LevelInfo, WithColor(false)))
	log.Error("Plain message", "command", "server_list")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "Plain message")
	assert.NotContains(t, buf.String(), "\x1b[", "No escape sequences should be written")
}

func TestNewFileHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewFileHandler(&buf, slog.LevelInfo))
	log.Debug("Hidden")
	log.Info("Shown", "size", 5)
	assert.NotContains(t, buf.String(), "Hidden")
	assert.Contains(t, buf.String(), `"size":5`)
}

func TestLevelHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLevelHandler(nil, slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	require.NotNil(t, h)
	log := slog.New(h)
	log.Debug("Hidden")
	log.WithGroup("g").Info("Shown", "k", "v")
	assert.NotContains(t, buf.String(), "Hidden", "A nil level should default to info")
	assert.Contains(t, buf.String(), "g.k=v")

	assert.Panics(t, func() {
		NewLevelHandler(slog.LevelInfo, nil)
	})
}
