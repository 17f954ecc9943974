package slogx

import (
	"context"
	"errors"
	"log/slog"
)

var _ slog.Handler = (*handlerJoiner)(nil)

type handlerJoiner struct {
	handlers []slog.Handler
}

func (h *handlerJoiner) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes record to each handler that's enabled for its level.
func (h *handlerJoiner) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, handler.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *handlerJoiner) WithAttrs(attrs []slog.Attr) slog.Handler {
	joined := &handlerJoiner{handlers: make([]slog.Handler, len(h.handlers))}
	for i, handler := range h.handlers {
		joined.handlers[i] = handler.WithAttrs(attrs)
	}
	return joined
}

func (h *handlerJoiner) WithGroup(name string) slog.Handler {
	joined := &handlerJoiner{handlers: make([]slog.Handler, len(h.handlers))}
	for i, handler := range h.handlers {
		joined.handlers[i] = handler.WithGroup(name)
	}
	return joined
}

// MergeHandlers will merge many [slog.Handler] into one for a single interface for both.
// Each handler keeps its own level.
func MergeHandlers(a, b slog.Handler, others ...slog.Handler) slog.Handler {
	return &handlerJoiner{handlers: append([]slog.Handler{a, b}, others...)}
}
