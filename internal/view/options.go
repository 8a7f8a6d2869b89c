package view

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pagetable/pagetable/internal/config"
	"github.com/pagetable/pagetable/internal/dao"
	"github.com/pagetable/pagetable/internal/model1"
)

// Option defaults.
const (
	DefaultPageSize    = 20
	DefaultDebounce    = 300 * time.Millisecond
	DefaultPlaceholder = "Search..."
)

// ErrNoColumns is returned when a table is configured without columns.
var ErrNoColumns = errors.New("no columns configured")

// Options configures an InfiniteTable.
type Options struct {
	// CacheKey scopes cached pages. Changing it resets pagination.
	CacheKey string

	// URL is the page endpoint, absolute or relative to BaseURL.
	URL     string
	BaseURL string

	// Columns drive header and cell rendering and sort, filter and
	// visibility capabilities.
	Columns model1.Columns

	// SearchColumn is the query parameter carrying the debounced search.
	SearchColumn      string
	SearchPlaceholder string

	// Debounce delays search propagation. Negative propagates immediately.
	Debounce time.Duration

	// PageSize is sent as the limit parameter.
	PageSize int

	Transform dao.TransformFunc
	NextPage  dao.NextPageFunc

	Timeout     time.Duration
	RefreshRate time.Duration
	CacheTTL    time.Duration

	// Fetcher overrides the HTTP fetcher built from URL.
	Fetcher dao.Fetcher
	Logger  *slog.Logger
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Debounce == 0 {
		o.Debounce = DefaultDebounce
	}
	if o.SearchPlaceholder == "" {
		o.SearchPlaceholder = DefaultPlaceholder
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = dao.DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// fetcher returns the configured fetcher or builds the HTTP one.
func (o Options) fetcher() (dao.Fetcher, error) {
	if o.Fetcher != nil {
		return o.Fetcher, nil
	}
	return dao.NewHTTPFetcher(dao.FetcherConfig{
		URL:          o.URL,
		BaseURL:      o.BaseURL,
		SearchColumn: o.SearchColumn,
		PageSize:     o.PageSize,
		Timeout:      o.Timeout,
		Transform:    o.Transform,
		Logger:       o.Logger,
	})
}

// OptionsFor builds table options from the resolved configuration.
func OptionsFor(cfg *config.Config, log *slog.Logger) (Options, error) {
	p := cfg.Pagetable
	t := p.TableSettings()

	cols, err := config.ToColumns(t.Columns)
	if err != nil {
		return Options{}, err
	}
	timeout, err := p.GetAPITimeout()
	if err != nil {
		return Options{}, err
	}
	ttl, err := p.GetCacheTTL()
	if err != nil {
		return Options{}, err
	}
	if t.URL == "" && t.BaseURL == "" {
		return Options{}, fmt.Errorf("table options: %w", config.ErrNoURL)
	}

	return Options{
		CacheKey:          t.Key,
		URL:               t.URL,
		BaseURL:           t.BaseURL,
		Columns:           cols,
		SearchColumn:      t.SearchColumn,
		SearchPlaceholder: t.Placeholder,
		Debounce:          time.Duration(t.Debounce) * time.Millisecond,
		PageSize:          t.PageSize,
		Transform:         dao.TransformFor(t.DataPath, t.NextPagePath),
		Timeout:           timeout,
		RefreshRate:       p.GetRefreshRate(),
		CacheTTL:          ttl,
		Logger:            log,
	}, nil
}
