package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]struct {
		level slog.Level
		err   bool
	}{
		"":      {level: slog.LevelInfo},
		"debug": {level: slog.LevelDebug},
		"WARN":  {level: slog.LevelWarn},
		"error": {level: slog.LevelError},
		"loud":  {level: slog.LevelInfo, err: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l, err := ParseLevel(name)
			if tt.err {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.level, l)
		})
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(&buf, Options{Level: "warn"})
	require.NoError(t, err)
	defer closeFn()

	log.Info("page loaded", "page", 1)
	log.Warn("page failed", "page", 2)

	assert.NotContains(t, buf.String(), "page loaded")
	assert.Contains(t, buf.String(), "page failed")
	assert.Contains(t, buf.String(), "page=2")
}

func TestMultiHandler(t *testing.T) {
	var info, errs bytes.Buffer
	m := multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug))

	log := slog.New(&m).With("query", "users:")
	log.Info("fetch")
	log.Error("boom")

	assert.Contains(t, info.String(), "msg=fetch")
	assert.Contains(t, info.String(), "query=users:")
	assert.NotContains(t, errs.String(), "msg=fetch")
	assert.Contains(t, errs.String(), "msg=boom")
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "pagetable.log")
	log, closeFn, err := Setup(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	log.Debug("hello")
	closeFn()

	bb, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bb), "msg=hello")
}
