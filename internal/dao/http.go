package dao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// maxBodySize bounds the size of a page response.
const maxBodySize = 32 << 20

// ErrNoURL is returned when a fetcher has no endpoint configured.
var ErrNoURL = errors.New("no fetch URL configured")

// HTTPError reports a non-2xx page response.
type HTTPError struct {
	StatusCode int
	URL        string
}

// Error implements error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// pageParams are the paging query parameters of every request.
type pageParams struct {
	Page  int `url:"page"`
	Limit int `url:"limit"`
}

// FetcherConfig configures an HTTPFetcher.
type FetcherConfig struct {
	URL          string // Endpoint, absolute or relative to BaseURL
	BaseURL      string // Optional base for relative endpoints
	SearchColumn string // Query parameter carrying the search text
	PageSize     int    // Value of the limit parameter
	Timeout      time.Duration
	Transform    TransformFunc
	Client       *http.Client
	Logger       *slog.Logger
}

// HTTPFetcher fetches pages with GET requests.
type HTTPFetcher struct {
	endpoint     *url.URL
	searchColumn string
	pageSize     int
	transform    TransformFunc
	client       *http.Client
	log          *slog.Logger
}

// NewHTTPFetcher returns a fetcher for the given configuration.
func NewHTTPFetcher(cfg FetcherConfig) (*HTTPFetcher, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}

	endpoint, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid fetch URL %q: %w", cfg.URL, err)
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
		}
		endpoint = base.ResolveReference(endpoint)
	}
	if !endpoint.IsAbs() {
		return nil, fmt.Errorf("fetch URL %q is relative and no base URL is configured", cfg.URL)
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	transform := cfg.Transform
	if transform == nil {
		transform = DefaultTransform
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &HTTPFetcher{
		endpoint:     endpoint,
		searchColumn: cfg.SearchColumn,
		pageSize:     cfg.PageSize,
		transform:    transform,
		client:       client,
		log:          log,
	}, nil
}

// PageURL returns the request URL for the given query and page.
func (f *HTTPFetcher) PageURL(q Query, page int) (string, error) {
	u := *f.endpoint

	params, err := query.Values(pageParams{Page: page, Limit: f.pageSize})
	if err != nil {
		return "", fmt.Errorf("failed to encode page parameters: %w", err)
	}

	vals := u.Query()
	for k := range params {
		vals.Set(k, params.Get(k))
	}
	if f.searchColumn != "" && q.Search != "" {
		vals.Set(f.searchColumn, q.Search)
	}
	u.RawQuery = vals.Encode()

	return u.String(), nil
}

// FetchPage issues a GET for the given page and adapts the response.
func (f *HTTPFetcher) FetchPage(ctx context.Context, q Query, page int) (Page, error) {
	target, err := f.PageURL(q, page)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	f.log.Debug("fetching page", "url", target, "page", page, "request_id", reqID)

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return Page{}, &HTTPError{StatusCode: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Page{}, fmt.Errorf("failed to read page %d: %w", page, err)
	}

	p, err := f.transform(body)
	if err != nil {
		return Page{}, fmt.Errorf("failed to transform page %d: %w", page, err)
	}

	return p, nil
}
