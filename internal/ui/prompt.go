package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// SearchIcon prefixes the search input.
const SearchIcon = '🔍'

// SearchBar is the search text input above the table.
type SearchBar struct {
	*tview.InputField

	changeFn func(string)
	doneFn   func(string)
	cancelFn func()
}

// NewSearchBar returns a new search bar.
func NewSearchBar(placeholder string) *SearchBar {
	s := SearchBar{
		InputField: tview.NewInputField(),
	}
	s.SetLabel(string(SearchIcon) + " ")
	s.SetPlaceholder(placeholder)
	s.SetBackgroundColor(tcell.ColorDefault)
	s.SetFieldBackgroundColor(tcell.ColorDefault)
	s.SetFieldTextColor(tcell.ColorWhite)
	s.SetBorderPadding(0, 0, 1, 1)

	s.SetChangedFunc(func(text string) {
		if s.changeFn != nil {
			s.changeFn(text)
		}
	})
	s.SetDoneFunc(s.done)

	return &s
}

// SetChangeFn sets the callback invoked on every edit.
func (s *SearchBar) SetChangeFn(fn func(string)) {
	s.changeFn = fn
}

// SetDoneFn sets the callback invoked when Enter is pressed.
func (s *SearchBar) SetDoneFn(fn func(string)) {
	s.doneFn = fn
}

// SetCancelFn sets the callback invoked when Esc is pressed.
func (s *SearchBar) SetCancelFn(fn func()) {
	s.cancelFn = fn
}

// Reset clears the text, notifying the change callback.
func (s *SearchBar) Reset() {
	s.SetText("")
}

func (s *SearchBar) done(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		if s.doneFn != nil {
			s.doneFn(s.GetText())
		}
	case tcell.KeyEscape:
		s.Reset()
		if s.cancelFn != nil {
			s.cancelFn()
		}
	}
}
