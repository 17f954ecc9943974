package slogx

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

var _ slog.Handler = (*DedupeHandler)(nil)

// DedupeHandler keeps only the latest value of an attribute, so that a logger derived many times with the same key
// writes it once.
type DedupeHandler struct {
	group   string
	attrSet map[string]int
	attrs   []slog.Attr
	impl    slog.Handler
}

func NewDedupeHandler(impl slog.Handler) slog.Handler {
	if impl == nil {
		panic("nil implementing handler")
	}
	return &DedupeHandler{
		attrSet: map[string]int{},
		impl:    impl,
	}
}

func (s *DedupeHandler) prefix() string {
	if len(s.group) == 0 {
		return ""
	}
	return s.group + "."
}

func (s *DedupeHandler) dupe() *DedupeHandler {
	return &DedupeHandler{
		group:   s.group,
		attrSet: maps.Clone(s.attrSet),
		attrs:   slices.Clone(s.attrs),
		impl:    s.impl,
	}
}

func (s *DedupeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.impl.Enabled(ctx, level)
}

func (s *DedupeHandler) Handle(ctx context.Context, record slog.Record) error {
	h := s
	if record.NumAttrs() > 0 {
		addtlAttrs := make([]slog.Attr, 0, record.NumAttrs())
		record.Attrs(func(attr slog.Attr) bool {
			addtlAttrs = append(addtlAttrs, attr)
			return true
		})
		record = slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		h = s.WithAttrs(addtlAttrs).(*DedupeHandler)
	}
	return h.impl.WithAttrs(h.attrs).Handle(ctx, record)
}

// WithAttrs replaces attributes with the same key in place, keeping the order they were first added in.
func (s *DedupeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	cp := s.dupe()
	prefix := cp.prefix()
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		if i, ok := cp.attrSet[attr.Key]; ok {
			cp.attrs[i] = attr
			continue
		}
		cp.attrSet[attr.Key] = len(cp.attrs)
		cp.attrs = append(cp.attrs, attr)
	}
	return cp
}

func (s *DedupeHandler) WithGroup(name string) slog.Handler {
	cp := s.dupe()
	cp.group = cp.prefix() + name
	return cp
}
