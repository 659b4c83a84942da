// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/lookalike/internal/ui/output"
	"go.trai.ch/lookalike/internal/ui/style"
)

// PrettyHandler is a slog.Handler for interactive use: a colored level badge,
// the message itself, and faint key=value attributes. Debug lines render
// faint as a whole so verbose runs stay scannable.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// badge returns the level icon and its color. Info and debug lines carry no
// badge.
func badge(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Amber))
	default:
		return "", nil
	}
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if icon, color := badge(r.Level); icon != "" {
		b.WriteString(h.out.String(icon).Foreground(color).String())
		b.WriteString(" ")
	}

	msg := h.out.String(r.Message)
	if r.Level < slog.LevelInfo {
		msg = msg.Faint()
	}
	b.WriteString(msg.String())

	h.appendAttrs(&b, r)
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
}

// appendAttrs writes handler attributes followed by record attributes, faint
// and space separated.
func (h *PrettyHandler) appendAttrs(b *strings.Builder, r slog.Record) {
	write := func(attr slog.Attr) {
		b.WriteString(" ")
		b.WriteString(h.out.String(h.formatAttr(attr)).Faint().String())
	}

	for _, attr := range h.attrs {
		write(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		write(attr)
		return true
	})
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

// formatAttr renders one attribute as key=value, prefixing the key with the
// group name when one is set.
func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + attr.Value.String()
}
