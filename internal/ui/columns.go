package ui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/model1"
)

// ColumnsMenu lists the hideable columns with their visibility.
type ColumnsMenu struct {
	*tview.List

	cols     model1.Columns
	visible  func(id string) bool
	toggleFn func(model1.Column)
	closeFn  func()
}

// NewColumnsMenu returns a new columns menu.
func NewColumnsMenu() *ColumnsMenu {
	m := ColumnsMenu{
		List: tview.NewList(),
	}
	m.ShowSecondaryText(false)
	m.SetBorder(true)
	m.SetTitle(" Columns ")
	m.SetBorderColor(tcell.ColorYellow)
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		m.toggle(i)
	})
	m.SetDoneFunc(func() {
		if m.closeFn != nil {
			m.closeFn()
		}
	})

	return &m
}

// SetToggleFn sets the callback invoked when a column is toggled.
func (m *ColumnsMenu) SetToggleFn(fn func(model1.Column)) {
	m.toggleFn = fn
}

// SetCloseFn sets the callback invoked when the menu is dismissed.
func (m *ColumnsMenu) SetCloseFn(fn func()) {
	m.closeFn = fn
}

// Populate lists the hideable columns of cols.
func (m *ColumnsMenu) Populate(cols model1.Columns, visible func(id string) bool) {
	m.cols, m.visible = cols.Hideable(), visible
	m.Clear()
	for _, c := range m.cols {
		m.AddItem(m.itemText(c), "", 0, nil)
	}
}

// Len returns the number of listed columns.
func (m *ColumnsMenu) Len() int {
	return len(m.cols)
}

func (m *ColumnsMenu) toggle(i int) {
	if i < 0 || i >= len(m.cols) {
		return
	}
	c := m.cols[i]
	if m.toggleFn != nil {
		m.toggleFn(c)
	}
	m.SetItemText(i, m.itemText(c), "")
}

func (m *ColumnsMenu) itemText(c model1.Column) string {
	mark := " "
	if m.visible != nil && m.visible(c.ID) {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, c.Title())
}
