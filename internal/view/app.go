// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/config"
	"github.com/pagetable/pagetable/internal/ui"
)

const tablePage = "table"

// App represents the main application container.
type App struct {
	*tview.Application

	version  string
	cfg      *config.Config
	log      *slog.Logger
	Main     *ui.Pages
	table    *InfiniteTable
	menu     *ui.Menu
	flash    *Flash
	help     *Help
	cancelFn context.CancelFunc
	running  bool
	mx       sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, version string, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	a := App{
		Application: tview.NewApplication(),
		version:     version,
		cfg:         cfg,
		log:         log,
		Main:        ui.NewPages(),
		menu:        ui.NewMenu(),
	}
	a.flash = NewFlash(&a)
	a.Application.SetInputCapture(a.keyboard)

	return &a
}

// Init builds the table and the application layout.
func (a *App) Init() error {
	opts, err := OptionsFor(a.cfg, a.log)
	if err != nil {
		return fmt.Errorf("failed to configure table: %w", err)
	}
	if a.table, err = NewInfiniteTable(a, opts); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.mx.Lock()
	a.cancelFn = cancel
	a.mx.Unlock()

	if err := a.table.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize table: %w", err)
	}
	a.table.SetErrorFn(a.flash.Err)

	a.help = NewHelp(a.table.Hints())
	a.help.SetCloseFn(func() {
		a.Main.Dismiss(helpPage)
		a.SetFocus(a.table.Table())
	})
	a.menu.HydrateMenu(a.Hints())

	a.Main.Push(tablePage, a.buildLayout(), true)
	a.SetRoot(a.Main, true)
	a.EnableMouse(a.cfg.Pagetable.UI.EnableMouse)
	a.SetFocus(a.table.Table())

	return nil
}

// Run starts loading and runs the event loop until Stop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	a.table.Start()
	a.flash.Infof("%s %s, press ? for help", config.AppName, a.version)
	defer a.table.Stop()

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	defer a.mx.Unlock()

	if a.cancelFn != nil {
		a.cancelFn()
		a.cancelFn = nil
	}
	a.running = false
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Table returns the hosted table.
func (a *App) Table() *InfiniteTable {
	return a.table
}

// Hints returns the menu hints of the table and the application.
func (a *App) Hints() ui.MenuHints {
	hh := append(a.table.Hints(),
		ui.MenuHint{Mnemonic: "?", Description: "Help", Visible: true},
		ui.MenuHint{Mnemonic: "q", Description: "Quit", Visible: true},
	)
	sort.Sort(hh)

	return hh
}

// Focus implements Host.
func (a *App) Focus(p tview.Primitive) {
	a.SetFocus(p)
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// buildLayout creates the main UI layout.
func (a *App) buildLayout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.menu, 2, 0, false)
}

// keyboard handles global keys while the table grid has focus.
func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}
	if a.table == nil || a.GetFocus() != a.table.Table() {
		return evt
	}

	switch ui.AsKey(evt) {
	case ui.KeyHelp:
		a.showHelp()
		return nil
	case ui.KeyQ:
		a.Stop()
		return nil
	}

	return evt
}

func (a *App) showHelp() {
	a.Main.Push(helpPage, a.help, true)
	a.SetFocus(a.help)
}
