package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// Rune keys, mapped onto tcell.Key so they share a KeyMap with special keys.
const (
	KeySpace  tcell.Key = ' '
	KeySlash  tcell.Key = '/'
	KeyHelp   tcell.Key = '?'
	KeyC      tcell.Key = 'c'
	KeyF      tcell.Key = 'f'
	KeyG      tcell.Key = 'g'
	KeyH      tcell.Key = 'h'
	KeyJ      tcell.Key = 'j'
	KeyK      tcell.Key = 'k'
	KeyL      tcell.Key = 'l'
	KeyQ      tcell.Key = 'q'
	KeyR      tcell.Key = 'r'
	KeyS      tcell.Key = 's'
	KeyShiftG tcell.Key = 'G'
)

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{
		Description: d,
		Action:      a,
		Visible:     visible,
	}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions holds a collection of actions.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns a new instance.
func NewKeyActions() *KeyActions {
	return &KeyActions{
		actions: make(KeyMap),
	}
}

// Add adds a new key action.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[k] = ka
}

// Bulk adds multiple actions.
func (a *KeyActions) Bulk(kk KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range kk {
		a.actions[k] = v
	}
}

// Get fetches an action given a key.
func (a *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[key]
	return v, ok
}

// Delete removes actions.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Len returns the number of actions.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Hints returns the visible actions as menu hints.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	hh := make(MenuHints, 0, len(a.actions))
	for k, v := range a.actions {
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: v.Description,
			Visible:     v.Visible,
		})
	}
	sort.Sort(hh)

	return hh
}

// KeyName returns a printable name for k.
func KeyName(k tcell.Key) string {
	if k == KeySpace {
		return "space"
	}
	if name, ok := tcell.KeyNames[k]; ok {
		return name
	}
	return string(rune(k))
}

// AsKey maps a key event onto the key used in a KeyMap.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	return tcell.Key(evt.Rune())
}
