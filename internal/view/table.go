// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/dao"
	"github.com/pagetable/pagetable/internal/debounce"
	"github.com/pagetable/pagetable/internal/model"
	"github.com/pagetable/pagetable/internal/model1"
	"github.com/pagetable/pagetable/internal/ui"
	"github.com/tidwall/gjson"
)

const (
	mainPage    = "main"
	columnsPage = "columns"
	filterPage  = "filter"

	titleFmt    = " %s [%d] "
	titleErrFmt = " %s [red::b]%s[-::-] "
)

// Host is the application hosting a table.
type Host interface {
	// QueueUpdateDraw runs fn on the UI loop and redraws.
	QueueUpdateDraw(fn func())

	// Focus moves keyboard focus to p.
	Focus(p tview.Primitive)
}

// InfiniteTable is a searchable table loading pages as it is scrolled.
type InfiniteTable struct {
	*ui.Pages

	host     Host
	opts     Options
	layout   *tview.Flex
	search   *ui.SearchBar
	table    *ui.DataTable
	footer   *ui.Footer
	columns  *ui.ColumnsMenu
	model    *model.TableData
	sentinel *model.Sentinel
	debounce *debounce.Debouncer[string]
	state    *model1.TableState
	data     *model1.TableData
	errFn    func(error)
	log      *slog.Logger
	ctx      context.Context
	mx       sync.RWMutex
}

// NewInfiniteTable returns a table for the given options.
func NewInfiniteTable(host Host, opts Options) (*InfiniteTable, error) {
	opts = opts.withDefaults()
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}

	f, err := opts.fetcher()
	if err != nil {
		return nil, fmt.Errorf("failed to build fetcher: %w", err)
	}

	loader := model.NewLoader(f,
		model.WithCache(dao.NewPageCache(opts.CacheTTL)),
		model.WithNextPage(opts.NextPage),
		model.WithLogger(opts.Logger),
	)

	t := InfiniteTable{
		Pages:   ui.NewPages(),
		host:    host,
		opts:    opts,
		search:  ui.NewSearchBar(opts.SearchPlaceholder),
		table:   ui.NewDataTable(),
		footer:  ui.NewFooter(),
		columns: ui.NewColumnsMenu(),
		model:   model.NewTableData(opts.CacheKey, opts.Columns, loader, opts.RefreshRate),
		state:   model1.NewTableState(opts.Columns),
		data:    model1.NewTableData(opts.Columns),
		log:     opts.Logger,
		ctx:     context.Background(),
	}
	t.data.SetFlags(model1.LoadFlags{Loading: true})
	t.sentinel = model.NewSentinel(t.model, model.DefaultThreshold)
	t.debounce = debounce.New(opts.Debounce, t.searchSettled)

	return &t, nil
}

// Init initializes the component.
func (t *InfiniteTable) Init(ctx context.Context) error {
	t.mx.Lock()
	t.ctx = ctx
	t.mx.Unlock()

	if err := t.table.Init(ctx); err != nil {
		return err
	}
	t.table.SetTitle(fmt.Sprintf(titleFmt, t.title(), 0))
	t.table.SetViewportFn(t.viewportChanged)
	t.bindKeys()

	t.search.SetChangeFn(t.debounce.Set)
	t.search.SetDoneFn(func(string) {
		t.debounce.Flush()
		t.host.Focus(t.table)
	})
	t.search.SetCancelFn(func() {
		t.debounce.Flush()
		t.host.Focus(t.table)
	})

	t.columns.SetToggleFn(func(c model1.Column) {
		if t.state.ToggleVisibility(c) {
			t.render()
		}
	})
	t.columns.SetCloseFn(t.closeOverlay(columnsPage))

	t.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.search, 1, 0, false).
		AddItem(t.table, 0, 1, true).
		AddItem(t.footer, 1, 0, false)
	t.Push(mainPage, t.layout, true)

	t.model.AddListener(t)
	t.render()

	return nil
}

// Start mounts the loader.
func (t *InfiniteTable) Start() {
	if err := t.model.Watch(t.context()); err != nil {
		t.log.Error("watch failed", "error", err)
	}
}

// Stop stops refreshing and drops any pending search.
func (t *InfiniteTable) Stop() {
	t.debounce.Stop()
	t.model.Stop()
	t.model.RemoveListener(t)
}

// Name returns the component name.
func (t *InfiniteTable) Name() string {
	return t.title()
}

// Hints returns the table key hints.
func (t *InfiniteTable) Hints() ui.MenuHints {
	return t.table.Hints()
}

// Table returns the data table.
func (t *InfiniteTable) Table() *ui.DataTable {
	return t.table
}

// SearchBar returns the search input.
func (t *InfiniteTable) SearchBar() *ui.SearchBar {
	return t.search
}

// Model returns the table model.
func (t *InfiniteTable) Model() *model.TableData {
	return t.model
}

// State returns the table state.
func (t *InfiniteTable) State() *model1.TableState {
	return t.state
}

// SetErrorFn sets the callback receiving load failures.
func (t *InfiniteTable) SetErrorFn(fn func(error)) {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.errFn = fn
}

// SetCacheKey rescopes the table. A new key resets pagination.
func (t *InfiniteTable) SetCacheKey(key string) {
	t.mx.Lock()
	t.opts.CacheKey = key
	t.mx.Unlock()

	t.model.SetCacheKey(t.context(), key)
}

// View returns the current projection.
func (t *InfiniteTable) View() model1.View {
	t.mx.RLock()
	data := t.data
	t.mx.RUnlock()

	return data.Project(t.state)
}

// TableDataChanged implements model.TableListener.
func (t *InfiniteTable) TableDataChanged(data *model1.TableData) {
	t.mx.Lock()
	t.data = data
	t.mx.Unlock()

	t.host.QueueUpdateDraw(t.render)
}

// TableLoadFailed implements model.TableListener.
func (t *InfiniteTable) TableLoadFailed(err error) {
	t.mx.RLock()
	fn := t.errFn
	t.mx.RUnlock()

	if fn != nil {
		fn(err)
	}
}

func (t *InfiniteTable) context() context.Context {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.ctx
}

func (t *InfiniteTable) title() string {
	t.mx.RLock()
	defer t.mx.RUnlock()

	if t.opts.CacheKey != "" {
		return t.opts.CacheKey
	}
	return t.opts.URL
}

func (t *InfiniteTable) searchSettled(s string) {
	t.model.SetSearch(t.context(), s)
}

func (t *InfiniteTable) viewportChanged(v model.Viewport) {
	t.sentinel.Observe(t.context(), v)
}

// render projects the last snapshot into the widgets. Runs on the UI loop.
func (t *InfiniteTable) render() {
	t.mx.RLock()
	data := t.data
	t.mx.RUnlock()

	v, flags := data.Project(t.state), data.Flags()
	t.table.Update(v, flags)
	t.footer.Update(v, flags)

	if data.HasError() {
		t.table.SetTitle(fmt.Sprintf(titleErrFmt, t.title(), data.Error()))
		return
	}
	t.table.SetTitle(fmt.Sprintf(titleFmt, t.title(), v.Total))
}

func (t *InfiniteTable) bindKeys() {
	t.table.Actions().Bulk(ui.KeyMap{
		ui.KeySlash:     ui.NewKeyAction("Search", t.searchCmd, true),
		ui.KeySpace:     ui.NewKeyAction("Toggle Row", t.toggleRowCmd, true),
		tcell.KeyCtrlA:  ui.NewKeyAction("Toggle All", t.toggleAllCmd, true),
		ui.KeyS:         ui.NewKeyAction("Sort", t.sortCmd, true),
		ui.KeyF:         ui.NewKeyAction("Filter", t.filterCmd, true),
		ui.KeyC:         ui.NewKeyAction("Columns", t.columnsCmd, true),
		ui.KeyR:         ui.NewKeyAction("Refresh", t.refreshCmd, true),
		tcell.KeyEnter:  ui.NewKeyAction("Details", t.detailsCmd, true),
		tcell.KeyEscape: ui.NewKeyAction("Clear Filters", t.clearCmd, false),
	})
}

func (t *InfiniteTable) searchCmd(*tcell.EventKey) *tcell.EventKey {
	t.host.Focus(t.search)
	return nil
}

func (t *InfiniteTable) toggleRowCmd(*tcell.EventKey) *tcell.EventKey {
	r, ok := t.table.SelectedRow()
	if !ok {
		return nil
	}
	t.state.ToggleRow(r.Index)
	t.render()
	return nil
}

func (t *InfiniteTable) toggleAllCmd(*tcell.EventKey) *tcell.EventKey {
	t.state.ToggleAll(t.View().Indices())
	t.render()
	return nil
}

func (t *InfiniteTable) sortCmd(*tcell.EventKey) *tcell.EventKey {
	c, ok := t.table.SelectedColumn()
	if !ok {
		return nil
	}
	if t.state.ToggleSort(c) {
		t.render()
	}
	return nil
}

func (t *InfiniteTable) filterCmd(*tcell.EventKey) *tcell.EventKey {
	c, ok := t.table.SelectedColumn()
	if !ok || !c.Filterable {
		return nil
	}

	in := tview.NewInputField()
	in.SetLabel(fmt.Sprintf("Filter %s: ", c.Title()))
	in.SetText(t.state.Filter(c.ID))
	in.SetBorder(true)
	in.SetChangedFunc(func(text string) {
		if t.state.SetFilter(c, text) {
			t.render()
		}
	})
	in.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			t.state.SetFilter(c, "")
			t.render()
		}
		t.closeOverlay(filterPage)()
	})

	t.Overlay(filterPage, in, 50, 3)
	t.host.Focus(in)
	return nil
}

func (t *InfiniteTable) columnsCmd(*tcell.EventKey) *tcell.EventKey {
	t.columns.Populate(t.opts.Columns, t.state.IsVisible)
	if t.columns.Len() == 0 {
		return nil
	}
	t.Overlay(columnsPage, t.columns, 30, t.columns.Len()+2)
	t.host.Focus(t.columns)
	return nil
}

func (t *InfiniteTable) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	t.model.Refresh(t.context())
	return nil
}

func (t *InfiniteTable) detailsCmd(*tcell.EventKey) *tcell.EventKey {
	r, ok := t.table.SelectedRow()
	if !ok {
		return nil
	}
	doc := gjson.GetBytes(r.Raw, "@pretty").String()
	d := ui.DetailsDialog(t.Pages, doc).
		SetDoneFn(func() { t.host.Focus(t.table) })
	d.Show()
	t.host.Focus(d)
	return nil
}

func (t *InfiniteTable) clearCmd(evt *tcell.EventKey) *tcell.EventKey {
	if len(t.state.Filters()) == 0 && len(t.state.Selection()) == 0 {
		return evt
	}
	t.state.ClearFilters()
	t.state.ClearSelection()
	t.render()
	return nil
}

func (t *InfiniteTable) closeOverlay(name string) func() {
	return func() {
		t.Dismiss(name)
		t.host.Focus(t.table)
	}
}
