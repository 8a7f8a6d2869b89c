package ui

import (
	"github.com/derailed/tview"
)

// Pages stacks the main layout and its overlays.
type Pages struct {
	*tview.Pages

	stack []string
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
		stack: make([]string, 0, 4),
	}
}

// Push shows page on top of the stack. A page already stacked is raised.
func (p *Pages) Push(name string, page tview.Primitive, resize bool) {
	if p.Has(name) {
		p.remove(name)
		p.RemovePage(name)
	}
	p.stack = append(p.stack, name)
	p.AddPage(name, page, resize, true)
}

// Overlay shows page centered over the current one.
func (p *Pages) Overlay(name string, page tview.Primitive, width, height int) {
	p.Push(name, centered(page, width, height), true)
}

// Pop removes the top page and returns the name of the new top.
func (p *Pages) Pop() (string, bool) {
	if len(p.stack) == 0 {
		return "", false
	}

	name := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.RemovePage(name)

	return p.Current(), true
}

// Dismiss removes the named page wherever it is stacked.
func (p *Pages) Dismiss(name string) {
	if !p.Has(name) {
		return
	}
	p.remove(name)
	p.RemovePage(name)
}

// Has returns true if name is stacked.
func (p *Pages) Has(name string) bool {
	for _, n := range p.stack {
		if n == name {
			return true
		}
	}
	return false
}

// Current returns the top page name.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// StackSize returns the stack depth.
func (p *Pages) StackSize() int {
	return len(p.stack)
}

func (p *Pages) remove(name string) {
	for i, n := range p.stack {
		if n == name {
			p.stack = append(p.stack[:i], p.stack[i+1:]...)
			return
		}
	}
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
