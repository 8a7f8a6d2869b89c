package model

import (
	"context"
	"sync"
	"time"

	"github.com/pagetable/pagetable/internal/dao"
	"github.com/pagetable/pagetable/internal/model1"
)

// TableData binds a Loader to column descriptors and publishes table snapshots.
type TableData struct {
	key         string
	search      string
	columns     model1.Columns
	loader      *Loader
	refreshRate time.Duration
	listeners   []TableListener
	cancelFn    context.CancelFunc
	mx          sync.RWMutex
}

// NewTableData creates a new table data model.
func NewTableData(key string, cols model1.Columns, loader *Loader, refreshRate time.Duration) *TableData {
	t := &TableData{
		key:         key,
		columns:     cols,
		loader:      loader,
		refreshRate: refreshRate,
		listeners:   make([]TableListener, 0, 2),
	}
	loader.AddListener(t)
	return t
}

// Columns returns the column descriptors.
func (t *TableData) Columns() model1.Columns {
	return t.columns
}

// Loader returns the underlying loader.
func (t *TableData) Loader() *Loader {
	return t.loader
}

// Query returns the query identity currently requested.
func (t *TableData) Query() dao.Query {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return dao.Query{Key: t.key, Search: t.search}
}

// State returns the loader state.
func (t *TableData) State() LoaderState {
	return t.loader.State()
}

// FetchNextPage requests the next page.
func (t *TableData) FetchNextPage(ctx context.Context) bool {
	return t.loader.FetchNextPage(ctx)
}

// SetSearch changes the search text; a new value restarts from page 1.
func (t *TableData) SetSearch(ctx context.Context, s string) {
	t.mx.Lock()
	t.search = s
	q := dao.Query{Key: t.key, Search: t.search}
	t.mx.Unlock()

	t.loader.SetQuery(ctx, q)
}

// SetCacheKey changes the cache key; a new key restarts from page 1.
func (t *TableData) SetCacheKey(ctx context.Context, key string) {
	t.mx.Lock()
	t.key = key
	q := dao.Query{Key: t.key, Search: t.search}
	t.mx.Unlock()

	t.loader.SetQuery(ctx, q)
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch mounts the loader and starts the periodic refresh, if any.
func (t *TableData) Watch(ctx context.Context) error {
	// Cancel any existing watch
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	q := dao.Query{Key: t.key, Search: t.search}
	refreshRate := t.refreshRate
	t.mx.Unlock()

	t.loader.SetQuery(watchCtx, q)

	if refreshRate > 0 {
		go t.watchLoop(watchCtx, refreshRate)
	}
	return nil
}

// watchLoop periodically refreshes the loaded pages.
func (t *TableData) watchLoop(ctx context.Context, rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.loader.Refresh(ctx)
		}
	}
}

// Refresh re-fetches the loaded pages immediately.
func (t *TableData) Refresh(ctx context.Context) bool {
	return t.loader.Refresh(ctx)
}

// Stop stops the watch loop.
func (t *TableData) Stop() {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
}

// Peek returns a snapshot of the current table data.
func (t *TableData) Peek() *model1.TableData {
	return t.snapshot(t.loader.State())
}

func (t *TableData) snapshot(st LoaderState) *model1.TableData {
	data := model1.NewTableData(t.columns)
	data.SetKey(st.Query.String())
	data.SetRows(model1.NewRows(st.Rows(), t.columns, st.Events))
	data.SetFlags(model1.LoadFlags{
		Loading:      st.IsLoading,
		FetchingNext: st.IsFetchingNextPage,
		Refreshing:   st.IsRefreshing,
		HasNext:      st.HasNextPage,
	})
	if st.Err != nil {
		data.SetError(st.Err.Error())
	}
	return data
}

// LoaderChanged implements LoaderListener.
func (t *TableData) LoaderChanged(st LoaderState) {
	t.notifyDataChanged(t.snapshot(st))
}

// LoaderFailed implements LoaderListener.
func (t *TableData) LoaderFailed(err error) {
	t.notifyLoadFailed(err)
}

// notifyDataChanged notifies listeners that data has changed.
func (t *TableData) notifyDataChanged(data *model1.TableData) {
	t.mx.RLock()
	listeners := make([]TableListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mx.RUnlock()

	for _, l := range listeners {
		l.TableDataChanged(data)
	}
}

// notifyLoadFailed notifies listeners that loading failed.
func (t *TableData) notifyLoadFailed(err error) {
	t.mx.RLock()
	listeners := make([]TableListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mx.RUnlock()

	for _, l := range listeners {
		l.TableLoadFailed(err)
	}
}
