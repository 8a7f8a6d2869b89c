package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/config/data"
	"github.com/pagetable/pagetable/internal/model1"
	"github.com/pagetable/pagetable/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
pagetable:
  refreshRate: 5
  apiTimeout: 10s
  ui:
    enableMouse: true
  logger:
    level: debug
  table:
    url: http://localhost:8080/api/users
    searchColumn: name
    pageSize: 50
    columns:
      - id: id
        kind: number
        align: right
        sortable: true
      - id: name
        header: Name
        filterable: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagetable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestConfigLoad(t *testing.T) {
	c := NewConfig(nil)
	require.NoError(t, c.Load(writeConfig(t, configYAML), true))

	p := c.Pagetable
	assert.Equal(t, float32(5), p.RefreshRate)
	assert.Equal(t, 5*time.Second, p.GetRefreshRate())
	assert.True(t, p.UI.EnableMouse)
	assert.Equal(t, "debug", p.Logger.Level)

	d, err := p.GetAPITimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)

	ttl, err := p.GetCacheTTL()
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, ttl)

	tbl := p.TableSettings()
	assert.Equal(t, 50, tbl.PageSize)
	assert.Equal(t, data.DefaultDebounce, tbl.Debounce)
	assert.Equal(t, data.DefaultPlaceholder, tbl.Placeholder)
	require.Len(t, tbl.Columns, 2)
}

func TestConfigLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	c := NewConfig(nil)
	require.NoError(t, c.Load(path, false))
	assert.Equal(t, data.DefaultPageSize, c.Pagetable.Table.PageSize)

	assert.Error(t, c.Load(path, true))
}

func TestConfigSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "pagetable.yaml")

	c := NewConfig(nil)
	c.Pagetable.SetTable(DemoTable("http://localhost:8080/api/users"))
	require.NoError(t, c.Save(path, false))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "not forced")

	require.NoError(t, c.Save(path, true))
	c1 := NewConfig(nil)
	require.NoError(t, c1.Load(path, true))
	assert.Equal(t, c.Pagetable.TableSettings(), c1.Pagetable.TableSettings())
}

func TestConfigRefinePrecedence(t *testing.T) {
	reg := source.NewRegistry()
	reg.Add(source.Source{
		Name:         "people",
		URL:          "https://example.com/people",
		SearchColumn: "q",
		PageSize:     30,
		Debounce:     100 * time.Millisecond,
		DataPath:     "results",
		NextPagePath: "meta.next",
	})

	c := NewConfig(reg)
	require.NoError(t, c.Load(writeConfig(t, configYAML), true))

	flags := data.NewFlags()
	*flags.Source = "people"
	*flags.PageSize = 10
	flags.RefreshRate = nil
	require.NoError(t, c.Refine(flags))

	tbl := c.Pagetable.TableSettings()
	assert.Equal(t, "https://example.com/people", tbl.URL, "source over file")
	assert.Equal(t, "people", tbl.Key)
	assert.Equal(t, "q", tbl.SearchColumn)
	assert.Equal(t, 10, tbl.PageSize, "flag over source")
	assert.Equal(t, 100, tbl.Debounce)
	assert.Equal(t, "results", tbl.DataPath)
	assert.Len(t, tbl.Columns, 2, "file columns kept")
	assert.Equal(t, float32(5), c.Pagetable.RefreshRate)
}

func TestConfigRefineErrors(t *testing.T) {
	c := NewConfig(nil)
	assert.ErrorIs(t, c.Refine(nil), ErrNoURL)

	flags := data.NewFlags()
	*flags.Source = "nope"
	assert.ErrorIs(t, c.Refine(flags), source.ErrUnknownSource)

	flags = data.NewFlags()
	*flags.URL = "http://x"
	assert.Error(t, c.Refine(flags), "no columns")

	*flags.Columns = "id, name"
	require.NoError(t, c.Refine(flags))
	assert.Equal(t, []string{"id", "name"}, columnIDs(c.Pagetable.TableSettings().Columns))
}

func TestToColumns(t *testing.T) {
	cc, err := ToColumns(DemoTable("http://x").Columns)
	require.NoError(t, err)

	require.Len(t, cc, 6)
	assert.Equal(t, model1.KindNumber, cc[0].Kind)
	assert.Equal(t, tview.AlignRight, cc[0].Align)
	assert.Equal(t, tview.AlignLeft, cc[1].Align)
	assert.True(t, cc[5].Hidden)

	_, err = ToColumns([]data.Column{{ID: "id", Align: "middle"}})
	assert.Error(t, err)
	_, err = ToColumns([]data.Column{{ID: "id", Kind: "date"}})
	assert.Error(t, err)
	_, err = ToColumns([]data.Column{{Header: "x"}})
	assert.Error(t, err)
}

func TestInitLocs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	require.NoError(t, InitLocs())
	assert.Equal(t, filepath.Join(dir, "config", "pagetable", "pagetable.yaml"), AppConfigFile)
	assert.Equal(t, filepath.Join(dir, "config", "pagetable", "sources.ini"), AppSourcesFile)
	assert.Equal(t, filepath.Join(dir, "state", "pagetable", "pagetable.log"), AppLogFile)
	assert.DirExists(t, AppStateDir)
}

func columnIDs(cc []data.Column) []string {
	ids := make([]string, 0, len(cc))
	for _, c := range cc {
		ids = append(ids, c.ID)
	}
	return ids
}
