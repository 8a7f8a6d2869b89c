package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/model1"
)

// Load status labels.
const (
	StatusLoading    = "Loading..."
	StatusRefreshing = "Refreshing..."
	StatusMore       = "Loading more..."
	StatusEnd        = "End of results"
)

// Footer shows the selection counter and the load status.
type Footer struct {
	*tview.TextView
}

// NewFooter returns a new footer.
func NewFooter() *Footer {
	f := Footer{
		TextView: tview.NewTextView(),
	}
	f.SetDynamicColors(true)
	f.SetBackgroundColor(tcell.ColorDefault)
	f.SetTextColor(tcell.ColorWhite)
	f.SetBorderPadding(0, 0, 1, 1)

	return &f
}

// Update refreshes the footer from a view and its load flags.
func (f *Footer) Update(v model1.View, flags model1.LoadFlags) {
	f.SetText(FooterText(v, flags))
}

// FooterText formats the footer line.
func FooterText(v model1.View, flags model1.LoadFlags) string {
	parts := []string{v.Footer()}
	if s := Status(flags); s != "" {
		parts = append(parts, "[gray]"+s+"[-]")
	}
	parts = append(parts, fmt.Sprintf("[gray]%d loaded[-]", v.Total))

	return strings.Join(parts, "  ")
}

// Status returns the load status label for flags.
func Status(flags model1.LoadFlags) string {
	switch {
	case flags.Loading:
		return StatusLoading
	case flags.Refreshing:
		return StatusRefreshing
	case flags.FetchingNext:
		return StatusMore
	case !flags.HasNext:
		return StatusEnd
	default:
		return ""
	}
}
