// Package platform defines the contract between the window core and a
// native windowing system, plus the backends that implement it.
package platform

import (
	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/surface"
)

// Token is the user data a backend attaches to a native window and hands
// back with every event for it. Backends treat it as opaque.
type Token uint64

// Dispatcher receives events translated by a backend.
type Dispatcher interface {
	Dispatch(token Token, e event.Event)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(token Token, e event.Event)

func (f DispatchFunc) Dispatch(token Token, e event.Event) { f(token, e) }

// Handle is one native window.
type Handle interface {
	surface.Backing

	// PollEvents delivers pending events through the Dispatcher and
	// returns without blocking. Backends sharing one connection between
	// windows may deliver events for other windows too.
	PollEvents() error
	// Destroy tears down the native window. The backend reports Shutdown
	// for it through the Dispatcher.
	Destroy() error
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	// Init installs the dispatcher. It must be called once, before any
	// window is created.
	Init(d Dispatcher) error
	CreateWindow(name string, size geom.Size, token Token) (Handle, error)
	// Close releases the display connection.
	Close() error
}
