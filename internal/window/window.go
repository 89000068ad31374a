package window

import (
	"errors"
	"fmt"
	"image"

	"github.com/1broseidon/mzgui/internal/arena"
	"github.com/1broseidon/mzgui/internal/cell"
	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/logx"
	"github.com/1broseidon/mzgui/internal/platform"
	"github.com/1broseidon/mzgui/internal/surface"
)

// Handler is called for every event a window receives. Returning true runs
// the default action for the event afterwards: Close closes the window and
// Draw redraws it. Returning false skips it.
type Handler func(root cell.Drawable, e event.Event) bool

// DefaultHandler accepts every default action.
func DefaultHandler(cell.Drawable, event.Event) bool { return true }

// noCopy makes go vet's copylocks check flag copies of Window.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Window is one native window with its surface and drawable root. It is
// open from New until Close and must only be used through its pointer.
// A Window is not safe for concurrent use.
type Window struct {
	_ noCopy

	sys     *System
	id      arena.ID
	name    string
	handle  platform.Handle
	handler Handler
	root    cell.Drawable
	surface *surface.Surface
}

// New creates and shows a window. A nil handler behaves like
// DefaultHandler.
func New(sys *System, name string, size geom.Size, root cell.Drawable, handler Handler) (*Window, error) {
	if sys == nil {
		return nil, errors.New("window: nil system")
	}
	if handler == nil {
		handler = DefaultHandler
	}

	id, err := sys.reserve()
	if err != nil {
		return nil, fmt.Errorf("create window %q: %w", name, err)
	}

	handle, err := sys.backend.CreateWindow(name, size, platform.Token(id.Pack()))
	if err != nil {
		sys.release(id)
		return nil, fmt.Errorf("create window %q: %w", name, err)
	}

	w := &Window{
		sys:     sys,
		id:      id,
		name:    name,
		handle:  handle,
		handler: handler,
		root:    root,
		surface: surface.New(),
	}
	if err := w.surface.UpdateSize(handle); err != nil {
		logx.L().Warn("initial surface allocation failed", "window", name, "err", err)
	}

	sys.publish(id, w)
	logx.L().Debug("window opened", "window", name, "slot", id.String(), "size", w.surface.Size().String())
	return w, nil
}

// IsClosed reports whether the window has been closed.
func (w *Window) IsClosed() bool { return w.handle == nil }

// Name returns the title the window was created with.
func (w *Window) Name() string { return w.name }

// Root returns the drawable root.
func (w *Window) Root() cell.Drawable { return w.root }

// Size returns the size of the pixel buffer, which tracks the native
// window size. It is Zero once closed or after a failed reallocation.
func (w *Window) Size() geom.Size { return w.surface.Size() }

// Close destroys the native window and frees its buffer. Closing an
// already closed window does nothing.
func (w *Window) Close() {
	if w.IsClosed() {
		return
	}
	h := w.handle
	w.handle = nil

	if err := w.surface.Deallocate(); err != nil {
		logx.L().Warn("surface release failed", "window", w.name, "err", err)
	}
	if err := h.Destroy(); err != nil {
		logx.L().Warn("native window destroy failed", "window", w.name, "err", err)
	}
	w.sys.release(w.id)
	logx.L().Debug("window closed", "window", w.name)
}

// HandleEvents delivers every pending native event and returns. A fatal
// backend failure closes the window.
func (w *Window) HandleEvents() {
	if w.IsClosed() {
		return
	}
	err := w.handle.PollEvents()
	switch {
	case err == nil:
	case platform.IsFatal(err):
		logx.L().Error("event loop failed, closing window", "window", w.name, "err", err)
		w.Close()
	default:
		logx.L().Warn("event poll failed", "window", w.name, "err", err)
	}
}

// Draw paints the root into the whole buffer and presents it.
func (w *Window) Draw() {
	if w.IsClosed() {
		return
	}
	if w.root != nil {
		w.root.Draw(w.surface.Slice())
	}
	if err := w.surface.Commit(w.handle); err != nil {
		logx.L().Warn("present failed", "window", w.name, "err", err)
	}
}

// Snapshot returns a copy of the current buffer.
func (w *Window) Snapshot() *image.NRGBA {
	return w.surface.Snapshot()
}

func (w *Window) handleEvent(e event.Event) {
	if w.IsClosed() {
		return
	}

	// The handler must always see a buffer matching the reported size.
	if e.Kind == event.Resize {
		if err := w.surface.UpdateSize(w.handle); err != nil {
			logx.L().Warn("surface reallocation failed", "window", w.name, "err", err)
		}
	}

	if w.handler(w.root, e) {
		w.defaultAction(e)
	}
	w.postfix(e)
}

func (w *Window) defaultAction(e event.Event) {
	switch e.Kind {
	case event.Close:
		w.Close()
	case event.Draw:
		w.Draw()
	}
}

// postfix runs after the handler and default action for every event.
func (w *Window) postfix(event.Event) {}
