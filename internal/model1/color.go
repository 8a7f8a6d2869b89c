package model1

import "github.com/gdamore/tcell/v2"

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorYellow

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorBlue

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// SelectedColor row marked color
	SelectedColor tcell.Color = tcell.ColorAqua

	// HeaderColor table header color
	HeaderColor tcell.Color = tcell.ColorYellow

	// EmptyColor empty-state message color
	EmptyColor tcell.Color = tcell.ColorGray

	// ErrColor error message color
	ErrColor tcell.Color = tcell.ColorRed
)

// DefaultColorer set the default table row colors
func DefaultColorer(_ Columns, r *Row) tcell.Color {
	switch r.Kind {
	case EventAdd:
		return AddColor
	case EventUpdate:
		return ModColor
	default:
		return StdColor
	}
}
