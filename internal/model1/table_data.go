package model1

import "sync"

// LoadFlags mirrors the loader flags a table needs to render.
type LoadFlags struct {
	Loading      bool // initial load in progress
	FetchingNext bool
	Refreshing   bool
	HasNext      bool
}

// TableData is a snapshot of loaded rows for tabular display.
type TableData struct {
	columns Columns
	rows    Rows
	flags   LoadFlags
	key     string
	errMsg  string
	mx      sync.RWMutex
}

// NewTableData returns a new table.
func NewTableData(cols Columns) *TableData {
	return &TableData{
		columns: cols,
	}
}

// Columns returns the column descriptors.
func (t *TableData) Columns() Columns {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.columns
}

// Rows returns the flattened rows.
func (t *TableData) Rows() Rows {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rows
}

// SetRows sets the flattened rows.
func (t *TableData) SetRows(rr Rows) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.rows = rr
}

// Flags returns the loader flags.
func (t *TableData) Flags() LoadFlags {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.flags
}

// SetFlags sets the loader flags.
func (t *TableData) SetFlags(f LoadFlags) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.flags = f
}

// Key returns the query identity the rows belong to.
func (t *TableData) Key() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.key
}

// SetKey sets the query identity.
func (t *TableData) SetKey(k string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.key = k
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.rows)
}

// Project projects the snapshot through state.
func (t *TableData) Project(st *TableState) View {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return Project(t.columns, t.rows, st)
}

// SetError sets an error message to display instead of data.
func (t *TableData) SetError(msg string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.errMsg = msg
}

// Error returns the error message, if any.
func (t *TableData) Error() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg
}

// HasError returns true if there's an error message.
func (t *TableData) HasError() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg != ""
}
