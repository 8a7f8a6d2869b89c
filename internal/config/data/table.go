package data

// Column configures one table column.
type Column struct {
	ID         string `yaml:"id"`
	Header     string `yaml:"header,omitempty"`
	Accessor   string `yaml:"accessor,omitempty"`
	Align      string `yaml:"align,omitempty"` // left, center or right
	Kind       string `yaml:"kind,omitempty"`  // text, number or duration
	Sortable   bool   `yaml:"sortable,omitempty"`
	Hideable   bool   `yaml:"hideable,omitempty"`
	Filterable bool   `yaml:"filterable,omitempty"`
	Hidden     bool   `yaml:"hidden,omitempty"`
}

// Table configures the data table.
type Table struct {
	URL          string   `yaml:"url"`
	BaseURL      string   `yaml:"baseURL,omitempty"`
	Key          string   `yaml:"key,omitempty"`
	SearchColumn string   `yaml:"searchColumn,omitempty"`
	Placeholder  string   `yaml:"placeholder,omitempty"`
	Debounce     int      `yaml:"debounce,omitempty"` // milliseconds, negative is immediate
	PageSize     int      `yaml:"pageSize,omitempty"`
	DataPath     string   `yaml:"dataPath,omitempty"`
	NextPagePath string   `yaml:"nextPagePath,omitempty"`
	Columns      []Column `yaml:"columns,omitempty"`
}

// Table defaults.
const (
	DefaultPageSize    = 20
	DefaultDebounce    = 300
	DefaultPlaceholder = "Search..."
)

// Validate fills unset table settings.
func (t *Table) Validate() {
	if t.PageSize <= 0 {
		t.PageSize = DefaultPageSize
	}
	if t.Debounce == 0 {
		t.Debounce = DefaultDebounce
	}
	if t.Placeholder == "" {
		t.Placeholder = DefaultPlaceholder
	}
}
