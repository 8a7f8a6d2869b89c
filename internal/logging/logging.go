// Package logging wires the application logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

const seqFlushInterval = 500 * time.Millisecond

// Options configures the logger.
type Options struct {
	Level  string
	File   string
	SeqURL string
}

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a logger writing text records to w, fanned out to Seq when
// a SeqURL is set. The returned func flushes and closes the sinks.
func New(w io.Writer, opts Options) (*slog.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	hopts := slog.HandlerOptions{Level: level}
	text := slog.NewTextHandler(w, &hopts)

	if opts.SeqURL == "" {
		return slog.New(text), func() {}, nil
	}

	_, seq := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithFlushInterval(seqFlushInterval),
		slogseq.WithHandlerOptions(&hopts),
	)
	if seq == nil {
		return slog.New(text), func() {}, nil
	}

	multi := multiHandler{handlers: []slog.Handler{text, seq}}
	return slog.New(&multi), func() { seq.Close() }, nil
}

// Setup opens the log file and installs the default logger.
func Setup(opts Options) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", opts.File, err)
	}

	log, closeFn, err := New(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	slog.SetDefault(log)

	return log, func() {
		closeFn()
		_ = f.Close()
	}, nil
}
