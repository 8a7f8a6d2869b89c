// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package view

import (
	"fmt"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// FlashDelay sets the flash auto-clear delay.
const FlashDelay = 5 * time.Second

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

func (l FlashLevel) color() tcell.Color {
	switch l {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func (l FlashLevel) prefix() string {
	switch l {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}

// Flash displays a transient status line. Messages clear after FlashDelay.
type Flash struct {
	*tview.TextView

	host  Host
	delay time.Duration
	timer *time.Timer
	mx    sync.Mutex
}

// NewFlash creates a new Flash. A nil host updates the view in place.
func NewFlash(host Host) *Flash {
	f := Flash{
		TextView: tview.NewTextView(),
		host:     host,
		delay:    FlashDelay,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)

	return &f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.show(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.show(FlashInfo, fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.show(FlashWarn, msg)
}

// Err displays err. A nil error is ignored.
func (f *Flash) Err(err error) {
	if err != nil {
		f.show(FlashErr, err.Error())
	}
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.stopTimer()
	f.update(func() { f.TextView.Clear() })
}

func (f *Flash) show(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	f.update(func() {
		f.TextView.Clear()
		f.SetTextColor(level.color())
		fmt.Fprint(f.TextView, tview.Escape(level.prefix()+" "+msg))
	})

	f.mx.Lock()
	defer f.mx.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.delay, f.Clear)
}

func (f *Flash) stopTimer() {
	f.mx.Lock()
	defer f.mx.Unlock()

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Flash) update(fn func()) {
	if f.host != nil {
		f.host.QueueUpdateDraw(fn)
		return
	}
	fn()
}
