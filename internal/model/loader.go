package model

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pagetable/pagetable/internal/dao"
	"github.com/pagetable/pagetable/internal/model1"
	"github.com/wI2L/jsondiff"
)

// FirstPage is the page number requested on mount and on identity change.
const FirstPage = 1

// LoaderState is a snapshot of an infinite query.
type LoaderState struct {
	Query              dao.Query
	Pages              []dao.Page
	HasNextPage        bool
	IsLoading          bool // initial load in progress
	IsFetchingNextPage bool
	IsRefreshing       bool
	Err                error
	Generation         uint64
	Events             map[int]model1.ResEvent // row changes seen by the last refresh
}

// InFlight returns true if any request is outstanding.
func (s LoaderState) InFlight() bool {
	return s.IsLoading || s.IsFetchingNextPage || s.IsRefreshing
}

// RowCount returns the number of accumulated rows.
func (s LoaderState) RowCount() int {
	n := 0
	for _, p := range s.Pages {
		n += p.Len()
	}
	return n
}

// Rows returns the rows of all pages, in order.
func (s LoaderState) Rows() []json.RawMessage {
	return flatten(s.Pages)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache scopes accumulated pages in c.
func WithCache(c *dao.PageCache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithNextPage overrides the next page token extractor.
func WithNextPage(fn dao.NextPageFunc) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.nextPage = fn
		}
	}
}

// WithLogger sets the loader logger.
func WithLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// Loader accumulates pages of a query. It fetches page 1 on mount or on
// identity change and page N+1 only on request, once page N was applied.
// Every request is tagged with the query generation at issue time and its
// response is dropped if the identity changed meanwhile.
type Loader struct {
	fetcher   dao.Fetcher
	cache     *dao.PageCache
	nextPage  dao.NextPageFunc
	log       *slog.Logger
	state     LoaderState
	mounted   bool
	listeners []LoaderListener
	inflight  sync.WaitGroup
	mx        sync.RWMutex
}

// NewLoader returns a loader fetching pages through f.
func NewLoader(f dao.Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:   f,
		nextPage:  dao.DefaultNextPage,
		log:       slog.Default(),
		listeners: make([]LoaderListener, 0, 2),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns a snapshot of the loader state.
func (l *Loader) State() LoaderState {
	l.mx.RLock()
	defer l.mx.RUnlock()
	return l.state
}

// Rows returns the flattened rows of all pages.
func (l *Loader) Rows() []json.RawMessage {
	return l.State().Rows()
}

// AddListener registers a loader listener.
func (l *Loader) AddListener(ll LoaderListener) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.listeners = append(l.listeners, ll)
}

// RemoveListener unregisters a loader listener.
func (l *Loader) RemoveListener(ll LoaderListener) {
	l.mx.Lock()
	defer l.mx.Unlock()

	for i, lis := range l.listeners {
		if lis == ll {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return
		}
	}
}

// Wait blocks until no fetch is in flight.
func (l *Loader) Wait() {
	l.inflight.Wait()
}

// SetQuery switches the loader to q. The first call mounts the loader.
// A new identity discards accumulated pages and restarts from page 1, unless
// fresh pages for it are cached. The same identity is a no-op.
func (l *Loader) SetQuery(ctx context.Context, q dao.Query) {
	l.mx.Lock()
	if l.mounted && l.state.Query == q {
		l.mx.Unlock()
		return
	}
	l.mounted = true
	gen := l.state.Generation + 1

	if pages, ok := l.cache.Get(q); ok && len(pages) > 0 {
		l.state = LoaderState{
			Query:       q,
			Pages:       pages,
			HasNextPage: l.hasNext(pages),
			Generation:  gen,
		}
		st := l.state
		l.mx.Unlock()

		l.log.Debug("restored cached pages", "query", q.String(), "pages", len(pages))
		l.notifyChanged(st)
		return
	}

	l.state = LoaderState{
		Query:      q,
		IsLoading:  true,
		Generation: gen,
	}
	st := l.state
	l.inflight.Add(1)
	l.mx.Unlock()

	l.notifyChanged(st)
	go l.fetch(ctx, gen, q, FirstPage, false)
}

// FetchNextPage requests the page following the last one applied. It returns
// false without issuing anything if there is no next page, a request is in
// flight, or the last request failed.
func (l *Loader) FetchNextPage(ctx context.Context) bool {
	l.mx.Lock()
	st := l.state
	if !l.mounted || !st.HasNextPage || st.InFlight() || st.Err != nil || len(st.Pages) == 0 {
		l.mx.Unlock()
		return false
	}
	next, ok := l.nextPage(st.Pages[len(st.Pages)-1], st.Pages)
	if !ok {
		l.mx.Unlock()
		return false
	}

	l.state.IsFetchingNextPage = true
	st = l.state
	l.inflight.Add(1)
	l.mx.Unlock()

	l.notifyChanged(st)
	go l.fetch(ctx, st.Generation, st.Query, next, true)
	return true
}

// Refresh re-fetches pages 1..N of the current query in order, clearing any
// error. Rows whose content changed are flagged updated, new rows added.
// Returns false if the loader is not mounted or a request is in flight.
func (l *Loader) Refresh(ctx context.Context) bool {
	l.mx.Lock()
	if !l.mounted || l.state.InFlight() {
		l.mx.Unlock()
		return false
	}
	l.state.IsRefreshing = true
	l.state.Err = nil
	st := l.state
	l.inflight.Add(1)
	l.mx.Unlock()

	l.notifyChanged(st)
	go l.refresh(ctx, st.Generation, st.Query, st.Pages)
	return true
}

func (l *Loader) fetch(ctx context.Context, gen uint64, q dao.Query, page int, next bool) {
	defer l.inflight.Done()

	p, err := l.fetcher.FetchPage(ctx, q, page)

	l.mx.Lock()
	if gen != l.state.Generation {
		l.mx.Unlock()
		l.log.Debug("discarding stale page", "query", q.String(), "page", page, "generation", gen)
		return
	}

	if next {
		l.state.IsFetchingNextPage = false
	} else {
		l.state.IsLoading = false
	}

	if err != nil {
		l.state.Err = err
		st := l.state
		l.mx.Unlock()

		l.log.Error("page fetch failed", "query", q.String(), "page", page, "error", err)
		l.notifyChanged(st)
		l.notifyFailed(err)
		return
	}

	pages := make([]dao.Page, 0, len(l.state.Pages)+1)
	pages = append(pages, l.state.Pages...)
	pages = append(pages, p)
	l.state.Pages = pages
	l.state.HasNextPage = l.hasNext(pages)
	l.cache.Set(q, pages)
	st := l.state
	l.mx.Unlock()

	l.log.Debug("page applied", "query", q.String(), "page", page, "rows", p.Len(), "has_next", st.HasNextPage)
	l.notifyChanged(st)
}

func (l *Loader) refresh(ctx context.Context, gen uint64, q dao.Query, old []dao.Page) {
	defer l.inflight.Done()

	want := max(len(old), 1)
	pages := make([]dao.Page, 0, want)
	page := FirstPage
	var err error
	for len(pages) < want {
		var p dao.Page
		if p, err = l.fetcher.FetchPage(ctx, q, page); err != nil {
			err = fmt.Errorf("refresh page %d: %w", page, err)
			break
		}
		pages = append(pages, p)

		next, ok := l.nextPage(p, pages)
		if !ok {
			break
		}
		page = next
	}

	l.mx.Lock()
	if gen != l.state.Generation {
		l.mx.Unlock()
		l.log.Debug("discarding stale refresh", "query", q.String(), "generation", gen)
		return
	}
	l.state.IsRefreshing = false

	if err != nil {
		l.state.Err = err
		st := l.state
		l.mx.Unlock()

		l.log.Error("refresh failed", "query", q.String(), "error", err)
		l.notifyChanged(st)
		l.notifyFailed(err)
		return
	}

	l.state.Pages = pages
	l.state.HasNextPage = l.hasNext(pages)
	l.state.Events = diffRows(flatten(old), flatten(pages))
	l.cache.Set(q, pages)
	st := l.state
	l.mx.Unlock()

	l.log.Debug("refresh applied", "query", q.String(), "pages", len(pages), "changed", len(st.Events))
	l.notifyChanged(st)
}

func (l *Loader) hasNext(pages []dao.Page) bool {
	if len(pages) == 0 {
		return false
	}
	_, ok := l.nextPage(pages[len(pages)-1], pages)
	return ok
}

func (l *Loader) notifyChanged(st LoaderState) {
	for _, lis := range l.copyListeners() {
		lis.LoaderChanged(st)
	}
}

func (l *Loader) notifyFailed(err error) {
	for _, lis := range l.copyListeners() {
		lis.LoaderFailed(err)
	}
}

func (l *Loader) copyListeners() []LoaderListener {
	l.mx.RLock()
	defer l.mx.RUnlock()

	listeners := make([]LoaderListener, len(l.listeners))
	copy(listeners, l.listeners)
	return listeners
}

func flatten(pages []dao.Page) []json.RawMessage {
	n := 0
	for _, p := range pages {
		n += p.Len()
	}
	out := make([]json.RawMessage, 0, n)
	for _, p := range pages {
		out = append(out, p.Data...)
	}
	return out
}

// diffRows compares rows position by position.
func diffRows(old, cur []json.RawMessage) map[int]model1.ResEvent {
	events := make(map[int]model1.ResEvent)
	for i, raw := range cur {
		if i >= len(old) {
			events[i] = model1.EventAdd
			continue
		}
		patch, err := jsondiff.CompareJSON(old[i], raw)
		if err != nil || len(patch) > 0 {
			events[i] = model1.EventUpdate
		}
	}
	return events
}
