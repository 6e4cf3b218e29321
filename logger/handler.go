package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
)

type Options struct {
	Output       io.Writer
	TimeFormat   string
	Level        slog.Level
	EnableColors bool
}

func DefaultOptions() *Options {
	return &Options{
		Level:        slog.LevelInfo,
		TimeFormat:   "15:04:05",
		Output:       os.Stderr,
		EnableColors: true,
	}
}

// textHandler renders records as a single colored line. No JSON mode, no
// source locations; this is a terminal tool.
type textHandler struct {
	opts  *Options
	mu    sync.Mutex
	attrs []slog.Attr
}

func newTextHandler(opts *Options) *textHandler {
	return &textHandler{opts: opts}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := &textHandler{opts: h.opts}
	h2.attrs = append(append(h2.attrs, h.attrs...), attrs...)
	return h2
}

func (h *textHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *textHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var builder strings.Builder

	if h.opts.EnableColors {
		builder.WriteString(Blue)
	}
	builder.WriteString(record.Time.Format(h.opts.TimeFormat))
	if h.opts.EnableColors {
		builder.WriteString(Reset)
	}
	builder.WriteString(" ")

	levelStr := fmt.Sprintf("%-5s", strings.ToUpper(record.Level.String()))
	if h.opts.EnableColors {
		builder.WriteString(levelColor(record.Level))
		builder.WriteString(Bold)
	}
	builder.WriteString(levelStr)
	if h.opts.EnableColors {
		builder.WriteString(Reset)
	}
	builder.WriteString(" ")

	builder.WriteString(record.Message)

	writeAttr := func(a slog.Attr) {
		builder.WriteString(fmt.Sprintf(" %s=%v", a.Key, a.Value.Any()))
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})

	_, err := fmt.Fprintln(h.opts.Output, builder.String())
	return err
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return Red
	case level >= slog.LevelWarn:
		return Yellow
	default:
		return Green
	}
}
