// Package slogx provides [slog.Handler] implementations for a command line tool.
//
// Console output is rendered by charmbracelet/log with colored levels, and may be merged with a JSON file handler.
package slogx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

var ErrLevel = errors.New("invalid log level")

// ParseLevel parses a level name like "debug" or "WARN", case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %s", ErrLevel, s)
	}
	return level, nil
}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))
	return styles
}

// ConsoleOption configures [NewConsoleHandler].
type ConsoleOption func(logger *log.Logger)

// WithColor turns colored output on or off. By default, color depends on whether the output is a terminal.
func WithColor(color bool) ConsoleOption {
	return func(logger *log.Logger) {
		if !color {
			logger.SetColorProfile(termenv.Ascii)
		}
	}
}

// NewConsoleHandler creates a handler for human readers that writes records at or above level to w.
// The level is checked for every record, so a [slog.LevelVar] may be changed after the handler is created.
func NewConsoleHandler(w io.Writer, level slog.Leveler, opts ...ConsoleOption) slog.Handler {
	logger := log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	logger.SetStyles(levelStyles())
	for _, opt := range opts {
		opt(logger)
	}
	return NewLevelHandler(level, logger)
}

// NewFileHandler creates a JSON handler for records at or above level, for consumption by other tools.
func NewFileHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

var _ slog.Handler = (*LevelHandler)(nil)

// LevelHandler drops records below a level before they reach the wrapped handler.
type LevelHandler struct {
	level slog.Leveler
	impl  slog.Handler
}

func NewLevelHandler(level slog.Leveler, impl slog.Handler) *LevelHandler {
	if impl == nil {
		panic("nil implementing handler")
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &LevelHandler{level: level, impl: impl}
}

func (h *LevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.impl.Enabled(ctx, level)
}

func (h *LevelHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.impl.Handle(ctx, record)
}

func (h *LevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LevelHandler{level: h.level, impl: h.impl.WithAttrs(attrs)}
}

func (h *LevelHandler) WithGroup(name string) slog.Handler {
	return &LevelHandler{level: h.level, impl: h.impl.WithGroup(name)}
}
