package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/mzgui/internal/event"
)

// Translator turns raw X11 events into toolkit events. It remembers the
// last size and window-manager state of each window so that only changes
// are reported. Translator is not safe for concurrent use.
type Translator struct {
	Atoms Atoms

	// KeyName resolves a keycode under the given modifier state to a
	// keysym name.
	KeyName func(state uint16, code xproto.Keycode) string
	// WindowState reads the window-manager state of a window.
	WindowState func(id xproto.Window) State

	sizes  map[xproto.Window]extent
	states map[xproto.Window]State
}

type extent struct{ w, h int }

// NewTranslator returns a translator backed by live lookups on c.
func NewTranslator(c *Connection) *Translator {
	t := newTranslator(c.Atoms)
	t.KeyName = func(state uint16, code xproto.Keycode) string {
		return keybind.LookupString(c.XUtil, state, code)
	}
	t.WindowState = c.WindowState
	return t
}

func newTranslator(atoms Atoms) *Translator {
	return &Translator{
		Atoms:  atoms,
		sizes:  make(map[xproto.Window]extent),
		states: make(map[xproto.Window]State),
	}
}

// Track records the initial size of a window so its first ConfigureNotify
// is only reported if the size actually changed.
func (t *Translator) Track(id xproto.Window, width, height int) {
	t.sizes[id] = extent{width, height}
}

// Forget drops everything remembered about a window.
func (t *Translator) Forget(id xproto.Window) {
	delete(t.sizes, id)
	delete(t.states, id)
}

// Translate maps ev to the window it targets and the toolkit event it
// means. ok is false for events the toolkit does not report.
func (t *Translator) Translate(ev xgb.Event) (id xproto.Window, out event.Event, ok bool) {
	switch e := ev.(type) {
	case xproto.ClientMessageEvent:
		if e.Type != t.Atoms.WMProtocols || e.Format != 32 {
			return 0, out, false
		}
		if xproto.Atom(e.Data.Data32[0]) != t.Atoms.WMDeleteWindow {
			return 0, out, false
		}
		return e.Window, event.Of(event.Close), true

	case xproto.DestroyNotifyEvent:
		if e.Window != e.Event {
			return 0, out, false
		}
		t.Forget(e.Window)
		return e.Window, event.Of(event.Shutdown), true

	case xproto.ExposeEvent:
		// Only the last expose of a batch triggers a redraw.
		if e.Count != 0 {
			return 0, out, false
		}
		return e.Window, event.Of(event.Draw), true

	case xproto.ConfigureNotifyEvent:
		if e.Window != e.Event {
			return 0, out, false
		}
		next := extent{int(e.Width), int(e.Height)}
		if prev, seen := t.sizes[e.Window]; seen && prev == next {
			return 0, out, false
		}
		t.sizes[e.Window] = next
		return e.Window, event.Of(event.Resize), true

	case xproto.KeyPressEvent:
		return e.Event, event.Pressed(t.key(e.State, e.Detail)), true

	case xproto.KeyReleaseEvent:
		return e.Event, event.Released(t.key(e.State, e.Detail)), true

	case xproto.MotionNotifyEvent:
		return e.Event, event.Of(event.MouseMove), true

	case xproto.EnterNotifyEvent:
		return e.Event, event.Of(event.SetCursor), true

	case xproto.PropertyNotifyEvent:
		if e.Atom != t.Atoms.NetWMState || t.WindowState == nil {
			return 0, out, false
		}
		return t.stateChange(e.Window)
	}
	return 0, out, false
}

func (t *Translator) key(state uint16, code xproto.Keycode) event.Key {
	if t.KeyName == nil {
		return event.KeyUnknown
	}
	return event.KeyFromName(t.KeyName(state, code))
}

// stateChange reports Maximize or Minimize when the window enters that
// state. Leaving a state is not reported.
func (t *Translator) stateChange(id xproto.Window) (xproto.Window, event.Event, bool) {
	prev := t.states[id]
	cur := t.WindowState(id)
	t.states[id] = cur

	switch {
	case cur.Hidden && !prev.Hidden:
		return id, event.Of(event.Minimize), true
	case cur.Maximized && !prev.Maximized:
		return id, event.Of(event.Maximize), true
	}
	return 0, event.Event{}, false
}
