package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var resp Response
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandlerPages(t *testing.T) {
	h := NewHandler(GenerateUsers(45))

	tests := []struct {
		name     string
		target   string
		wantLen  int
		wantNext *int
		firstID  int
	}{
		{name: "first page", target: "/api/users?page=1&limit=20", wantLen: 20, wantNext: intPtr(2), firstID: 1},
		{name: "second page", target: "/api/users?page=2&limit=20", wantLen: 20, wantNext: intPtr(3), firstID: 21},
		{name: "last page", target: "/api/users?page=3&limit=20", wantLen: 5, firstID: 41},
		{name: "past the end", target: "/api/users?page=9&limit=20", wantLen: 0},
		{name: "defaults", target: "/api/users", wantLen: DefaultLimit, wantNext: intPtr(2), firstID: 1},
		{name: "limit normalised", target: "/api/users?limit=5000", wantLen: DefaultLimit, wantNext: intPtr(2), firstID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, resp.Data, tt.wantLen)
			assert.Equal(t, tt.wantNext, resp.NextPage)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstID, resp.Data[0].ID)
			}
		})
	}
}

func TestHandlerNullNextPage(t *testing.T) {
	h := NewHandler(GenerateUsers(3))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users?page=1&limit=20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `null`, string(mustField(t, rec.Body.Bytes(), "nextPage")))
}

func TestHandlerNameFilter(t *testing.T) {
	h := NewHandler(GenerateUsers(144))

	_, resp := get(t, h, "/api/users?page=1&limit=100&name=grace")
	require.NotEmpty(t, resp.Data)
	for _, u := range resp.Data {
		assert.Contains(t, u.Name, "Grace")
	}
	assert.Nil(t, resp.NextPage)
}

func TestHandlerRejectsBadInput(t *testing.T) {
	h := NewHandler(GenerateUsers(3))

	rec, _ := get(t, h, "/api/users?page=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, h, "/api/users?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Equal(t, int64(3), h.Requests())
}

func TestGenerateUsersDeterministic(t *testing.T) {
	a, b := GenerateUsers(30), GenerateUsers(30)
	assert.Equal(t, a, b)
	assert.Equal(t, "Ada Lovelace", a[0].Name)
	assert.Equal(t, 30, a[29].ID)
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	v, ok := m[field]
	require.True(t, ok, "missing field %q", field)
	return v
}

func intPtr(n int) *int { return &n }
