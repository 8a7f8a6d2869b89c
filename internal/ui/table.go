// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	gtcell "github.com/gdamore/tcell/v2"
	"github.com/pagetable/pagetable/internal/model"
	"github.com/pagetable/pagetable/internal/model1"
)

const (
	// LoadingText is shown while the first page loads.
	LoadingText = "Loading..."

	// NoResultsText is shown when no row survives loading and filtering.
	NoResultsText = "No results"

	// LoadingMoreText is shown in the trailing row while the next page loads.
	LoadingMoreText = "Loading more..."

	selectedMark = "✓"
	markerCols   = 1
)

// ViewportFunc receives the body rows on screen after each draw.
type ViewportFunc func(model.Viewport)

// DataTable renders a projected table view with a trailing load sentinel.
type DataTable struct {
	*tview.Table

	actions    *KeyActions
	view       model1.View
	flags      model1.LoadFlags
	colCursor  int
	colorer    model1.ColorerFunc
	viewportFn ViewportFunc
	mx         sync.RWMutex
}

// NewDataTable returns a new data table.
func NewDataTable() *DataTable {
	t := DataTable{
		Table:   tview.NewTable(),
		actions: NewKeyActions(),
		flags:   model1.LoadFlags{Loading: true},
		colorer: model1.DefaultColorer,
	}

	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetBorderColor(tcell.ColorWhite)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetFixed(1, 0)
	t.SetSelectable(true, false)

	return &t
}

// Init initializes the table component.
func (t *DataTable) Init(context.Context) error {
	t.SetInputCapture(t.keyboard)
	t.render()
	return nil
}

// Name returns the component name.
func (t *DataTable) Name() string {
	return "table"
}

// Actions returns the key actions.
func (t *DataTable) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *DataTable) Hints() MenuHints {
	return t.actions.Hints()
}

// SetColorerFn sets the row colorer.
func (t *DataTable) SetColorerFn(f model1.ColorerFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()

	if f != nil {
		t.colorer = f
	}
}

// SetViewportFn registers the post-draw viewport callback.
func (t *DataTable) SetViewportFn(fn ViewportFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.viewportFn = fn
}

// Update renders v. flags drive the loading, empty and sentinel rows.
func (t *DataTable) Update(v model1.View, flags model1.LoadFlags) {
	t.mx.Lock()
	t.view = v
	t.flags = flags
	if t.colCursor >= len(v.Columns) {
		t.colCursor = max(len(v.Columns)-1, 0)
	}
	t.mx.Unlock()

	t.render()
}

// View returns the view last rendered.
func (t *DataTable) View() model1.View {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.view
}

// SelectedRow returns the row under the cursor.
func (t *DataTable) SelectedRow() (model1.ViewRow, bool) {
	row, _ := t.GetSelection()

	t.mx.RLock()
	defer t.mx.RUnlock()

	i := row - 1
	if i < 0 || i >= len(t.view.Rows) {
		return model1.ViewRow{}, false
	}
	return t.view.Rows[i], true
}

// SelectedColumn returns the column under the column cursor.
func (t *DataTable) SelectedColumn() (model1.Column, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()

	if t.colCursor < 0 || t.colCursor >= len(t.view.Columns) {
		return model1.Column{}, false
	}
	return t.view.Columns[t.colCursor], true
}

// Viewport returns the body rows currently on screen. The sentinel sits at
// index Total.
func (t *DataTable) Viewport() model.Viewport {
	offset, _ := t.GetOffset()
	_, _, _, h := t.GetInnerRect()

	t.mx.RLock()
	defer t.mx.RUnlock()

	return model.Viewport{
		Offset: offset,
		Height: max(h-1, 0),
		Total:  t.bodyRows(),
	}
}

// Draw draws the table then reports the viewport.
func (t *DataTable) Draw(screen tcell.Screen) {
	t.Table.Draw(screen)

	t.mx.RLock()
	fn := t.viewportFn
	t.mx.RUnlock()
	if fn != nil {
		fn(t.Viewport())
	}
}

// bodyRows counts the rows between the header and the sentinel.
func (t *DataTable) bodyRows() int {
	if len(t.view.Rows) == 0 {
		return 1
	}
	return len(t.view.Rows)
}

func (t *DataTable) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	switch key {
	case KeyJ, tcell.KeyDown:
		if row < rowCount-1 {
			t.Select(row+1, col)
		}
		return nil
	case KeyK, tcell.KeyUp:
		if row > 1 {
			t.Select(row-1, col)
		}
		return nil
	case KeyG, tcell.KeyHome:
		if rowCount > 1 {
			t.Select(1, col)
		}
		return nil
	case KeyShiftG, tcell.KeyEnd:
		if rowCount > 1 {
			t.Select(rowCount-1, col)
		}
		return nil
	case KeyH, tcell.KeyLeft:
		t.moveColumn(-1)
		return nil
	case KeyL, tcell.KeyRight:
		t.moveColumn(1)
		return nil
	}

	if a, ok := t.actions.Get(key); ok {
		return a.Action(evt)
	}

	return evt
}

func (t *DataTable) moveColumn(delta int) {
	t.mx.Lock()
	n := len(t.view.Columns)
	if n == 0 {
		t.mx.Unlock()
		return
	}
	t.colCursor = (t.colCursor + delta + n) % n
	t.mx.Unlock()

	t.render()
}

func (t *DataTable) render() {
	t.mx.RLock()
	v, flags, cursor, colorer := t.view, t.flags, t.colCursor, t.colorer
	t.mx.RUnlock()

	row, _ := t.GetSelection()
	t.Clear()
	t.buildHeader(v, cursor)

	switch {
	case flags.Loading && v.Total == 0:
		t.buildMessage(1, len(v.Columns), LoadingText, model1.EmptyColor)
	case v.Empty():
		t.buildMessage(1, len(v.Columns), NoResultsText, model1.EmptyColor)
	default:
		for i, r := range v.Rows {
			t.buildRow(i+1, v.Columns, r, colorer)
		}
	}

	if flags.HasNext || flags.FetchingNext {
		t.buildSentinel(len(v.Columns), flags.FetchingNext)
	}

	t.restoreSelection(row)
}

func (t *DataTable) restoreSelection(row int) {
	last := t.GetRowCount() - 1
	switch {
	case last < 1:
		t.Select(0, 0)
	case row < 1:
		t.Select(1, 0)
	case row > last:
		t.Select(last, 0)
	default:
		t.Select(row, 0)
	}
}

func (t *DataTable) buildHeader(v model1.View, cursor int) {
	mark := tview.NewTableCell("")
	mark.SetSelectable(false)
	t.SetCell(0, 0, mark)

	for i, c := range v.Columns {
		title := c.Title()
		if c.ID == v.SortCol && v.SortDir != model1.SortNone {
			title = fmt.Sprintf("%s %s", title, v.SortDir)
		}
		cell := tview.NewTableCell(title)
		cell.SetTextColor(asColor(model1.HeaderColor))
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(c.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if i == cursor {
			cell.SetAttributes(tcell.AttrBold | tcell.AttrUnderline)
		}
		t.SetCell(0, markerCols+i, cell)
	}
}

func (t *DataTable) buildRow(row int, cols model1.Columns, r model1.ViewRow, colorer model1.ColorerFunc) {
	fg := asColor(colorer(cols, &r.Row))
	marker := " "
	if r.Selected {
		marker = selectedMark
		fg = asColor(model1.SelectedColor)
	}

	mark := tview.NewTableCell(marker)
	mark.SetTextColor(fg)
	mark.SetReference(r.Index)
	t.SetCell(row, 0, mark)

	for i, field := range r.Cells {
		cell := tview.NewTableCell(field)
		cell.SetTextColor(fg)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(cols[i].Align)
		cell.SetExpansion(1)
		t.SetCell(row, markerCols+i, cell)
	}
}

// buildMessage fills a row with a single message in the first data column,
// the remaining cells blank so the row spans the table width.
func (t *DataTable) buildMessage(row, cols int, msg string, c gtcell.Color) {
	t.SetCell(row, 0, tview.NewTableCell("").SetSelectable(false))

	cell := tview.NewTableCell(msg)
	cell.SetTextColor(asColor(c))
	cell.SetSelectable(false)
	cell.SetExpansion(1)
	t.SetCell(row, markerCols, cell)

	for i := 1; i < cols; i++ {
		t.SetCell(row, markerCols+i, tview.NewTableCell("").SetSelectable(false).SetExpansion(1))
	}
}

// buildSentinel appends the trailing marker row observed for infinite scroll.
func (t *DataTable) buildSentinel(cols int, fetching bool) {
	row := t.bodyRowsLocked() + 1
	text := ""
	if fetching {
		text = LoadingMoreText
	}
	t.SetCell(row, 0, tview.NewTableCell(""))

	cell := tview.NewTableCell(text)
	cell.SetTextColor(asColor(model1.EmptyColor))
	cell.SetExpansion(1)
	t.SetCell(row, markerCols, cell)

	for i := 1; i < cols; i++ {
		t.SetCell(row, markerCols+i, tview.NewTableCell("").SetExpansion(1))
	}
}

func (t *DataTable) bodyRowsLocked() int {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.bodyRows()
}

// asColor converts a palette color into a screen color.
func asColor(c gtcell.Color) tcell.Color {
	if h := c.Hex(); h >= 0 {
		return tcell.NewHexColor(h)
	}
	return tcell.ColorDefault
}
