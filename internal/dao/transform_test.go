package dao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTransform(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLen  int
		wantNext *int
		wantErr  bool
	}{
		{name: "next page", body: `{"data":[{"id":1},{"id":2}],"nextPage":2}`, wantLen: 2, wantNext: IntPtr(2)},
		{name: "null next page", body: `{"data":[{"id":1}],"nextPage":null}`, wantLen: 1},
		{name: "missing next page", body: `{"data":[]}`, wantLen: 0},
		{name: "missing data", body: `{"nextPage":3}`, wantLen: 0, wantNext: IntPtr(3)},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "data not array", body: `{"data":{"id":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := DefaultTransform([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, page.Data, tt.wantLen)
			assert.Equal(t, tt.wantNext, page.NextPageToken)
		})
	}
}

func TestPathTransform(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		next     string
		body     string
		wantLen  int
		wantNext *int
		wantErr  bool
	}{
		{name: "nested", data: "payload.items", next: "payload.cursor", body: `{"payload":{"items":[1,2,3],"cursor":7}}`, wantLen: 3, wantNext: IntPtr(7)},
		{name: "top level array", data: "", next: "", body: `[{"a":1},{"a":2}]`, wantLen: 2},
		{name: "string cursor", data: "rows", next: "next", body: `{"rows":[{}],"next":"12"}`, wantLen: 1, wantNext: IntPtr(12)},
		{name: "null cursor", data: "rows", next: "next", body: `{"rows":[{}],"next":null}`, wantLen: 1},
		{name: "missing rows", data: "rows", next: "next", body: `{"next":null}`, wantLen: 0},
		{name: "bad cursor", data: "rows", next: "next", body: `{"rows":[],"next":"later"}`, wantErr: true},
		{name: "rows not array", data: "rows", next: "", body: `{"rows":5}`, wantErr: true},
		{name: "invalid json", data: "rows", next: "", body: `{"rows":[`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := PathTransform(tt.data, tt.next)([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, page.Data, tt.wantLen)
			assert.Equal(t, tt.wantNext, page.NextPageToken)
		})
	}
}

func TestDefaultNextPage(t *testing.T) {
	n, ok := DefaultNextPage(Page{NextPageToken: IntPtr(5)}, nil)
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = DefaultNextPage(Page{}, nil)
	assert.False(t, ok)
}

func TestPageCache(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewPageCache(time.Minute)
	c.now = func() time.Time { return now }

	q := Query{Key: "users", Search: "ada"}
	pages := []Page{{NextPageToken: IntPtr(2)}, {}}
	c.Set(q, pages)

	got, ok := c.Get(q)
	require.True(t, ok)
	assert.Equal(t, pages, got)

	_, ok = c.Get(Query{Key: "users"})
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(q)
	assert.False(t, ok, "expired entry must miss")

	c.Set(Query{Key: "users"}, pages)
	c.Set(Query{Key: "users", Search: "x"}, pages)
	c.Set(Query{Key: "orders"}, pages)
	c.InvalidateKey("users")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestPageCacheDisabled(t *testing.T) {
	c := NewPageCache(0)
	c.Set(Query{Key: "k"}, []Page{{}})
	_, ok := c.Get(Query{Key: "k"})
	assert.False(t, ok)

	var nilCache *PageCache
	_, ok = nilCache.Get(Query{Key: "k"})
	assert.False(t, ok)
	nilCache.Set(Query{Key: "k"}, nil)
	nilCache.Invalidate(Query{Key: "k"})
}
