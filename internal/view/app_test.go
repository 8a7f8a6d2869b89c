package view

import (
	"errors"
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/pagetable/pagetable/internal/config"
	"github.com/pagetable/pagetable/internal/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash(t *testing.T) {
	f := NewFlash(nil)

	f.Info("loaded")
	assert.Contains(t, f.GetText(false), "INFO")
	assert.Contains(t, f.GetText(false), "loaded")

	f.Err(errors.New("GET /api/users: unexpected status 500"))
	assert.Contains(t, f.GetText(false), "ERROR")
	assert.Contains(t, f.GetText(false), "unexpected status 500")

	f.Err(nil)
	assert.Contains(t, f.GetText(false), "unexpected status 500", "nil errors are ignored")

	f.Clear()
	assert.Empty(t, f.GetText(false))
}

func TestAppInit(t *testing.T) {
	srv, _ := newDemoServer(t, 5)

	cfg := config.NewConfig(nil)
	cfg.Pagetable.SetTable(config.DemoTable(srv.URL + demo.UsersPath))

	a := NewApp(cfg, "0.1.0", nil)
	require.NoError(t, a.Init())
	t.Cleanup(a.Table().Stop)

	assert.Equal(t, tablePage, a.Main.Current())
	assert.Equal(t, a.Table().Table(), a.GetFocus())

	var descs []string
	for _, h := range a.Hints() {
		descs = append(descs, h.Description)
	}
	assert.Contains(t, descs, "Help")
	assert.Contains(t, descs, "Search")

	assert.Nil(t, a.keyboard(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone)))
	assert.Equal(t, helpPage, a.Main.Current())
	assert.Equal(t, a.help, a.GetFocus())

	evt := tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.Equal(t, evt, a.keyboard(evt), "help owns its keys")

	a.help.closeFn()
	assert.Equal(t, tablePage, a.Main.Current())
	assert.Equal(t, a.Table().Table(), a.GetFocus())
}

func TestAppInitNoURL(t *testing.T) {
	a := NewApp(config.NewConfig(nil), "0.1.0", nil)
	assert.ErrorIs(t, a.Init(), config.ErrNoURL)
}
