package dao

import (
	"context"
	"encoding/json"
	"fmt"
)

// Query identifies a logical result set: a cache key and the settled search text.
type Query struct {
	Key    string
	Search string
}

// String returns the cache key in the form "key:search".
func (q Query) String() string {
	return fmt.Sprintf("%s:%s", q.Key, q.Search)
}

// Page is the canonical shape of one fetched page.
type Page struct {
	Data          []json.RawMessage
	NextPageToken *int
}

// HasNext returns true if the page advertises a following page.
func (p Page) HasNext() bool {
	return p.NextPageToken != nil
}

// Len returns the number of rows in the page.
func (p Page) Len() int {
	return len(p.Data)
}

// TransformFunc adapts a raw response body into a Page.
type TransformFunc func(body []byte) (Page, error)

// NextPageFunc derives the next page number from the last page fetched.
type NextPageFunc func(last Page, pages []Page) (int, bool)

// Fetcher retrieves one page of a query.
type Fetcher interface {
	FetchPage(ctx context.Context, q Query, page int) (Page, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, q Query, page int) (Page, error)

// FetchPage calls f.
func (f FetcherFunc) FetchPage(ctx context.Context, q Query, page int) (Page, error) {
	return f(ctx, q, page)
}

// DefaultNextPage returns the token carried by the last page.
func DefaultNextPage(last Page, _ []Page) (int, bool) {
	if last.NextPageToken == nil {
		return 0, false
	}
	return *last.NextPageToken, true
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
