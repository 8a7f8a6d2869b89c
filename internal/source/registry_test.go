package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourcesINI = `
[users]
url = http://localhost:8080/api/users
search_column = name
page_size = 50
debounce = 250
columns = id, name , email

[people]
url = https://example.com/people
key = people
debounce = 1s
data_path = results
next_page_path = meta.next
`

func writeSources(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad(t *testing.T) {
	r, err := Load(writeSources(t, sourcesINI))
	require.NoError(t, err)

	assert.Equal(t, []string{"people", "users"}, r.Names())

	u, err := r.Get("users")
	require.NoError(t, err)
	assert.Equal(t, Source{
		Name:         "users",
		URL:          "http://localhost:8080/api/users",
		SearchColumn: "name",
		PageSize:     50,
		Debounce:     250 * time.Millisecond,
		Columns:      []string{"id", "name", "email"},
	}, u)

	p, err := r.Get("people")
	require.NoError(t, err)
	assert.Equal(t, "people", p.Key)
	assert.Equal(t, time.Second, p.Debounce)
	assert.Equal(t, "results", p.DataPath)
	assert.Equal(t, "meta.next", p.NextPagePath)
}

func TestLoadMissingFile(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Empty(t, r.Names())
}

func TestGetUnknown(t *testing.T) {
	_, err := NewRegistry().Get("users")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"no url":    "[users]\nsearch_column = name\n",
		"page size": "[users]\nurl = http://x\npage_size = many\n",
		"debounce":  "[users]\nurl = http://x\ndebounce = soon\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeSources(t, body))
			assert.Error(t, err)
		})
	}
}
