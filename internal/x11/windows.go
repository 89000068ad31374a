package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventMask is the set of events every toolkit window listens for.
const EventMask = xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskPropertyChange

// Window is a top-level X11 window created by this process.
type Window struct {
	conn *Connection
	win  *xwindow.Window
}

// CreateWindow creates, names and maps a top-level window of the given
// client size, centered on the active monitor when one can be found.
func (c *Connection) CreateWindow(name, class string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", width, height)
	}

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	x, y := 0, 0
	if mon, err := c.GetActiveMonitor(); err == nil {
		x, y = mon.Center(width, height)
	}

	// Value list order must follow the mask bit order.
	err = win.CreateChecked(c.Root, x, y, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0, uint32(EventMask))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{conn: c, win: win}
	if err := w.setProperties(name, class); err != nil {
		win.Destroy()
		return nil, err
	}

	win.Map()
	return w, nil
}

func (w *Window) setProperties(name, class string) error {
	xu := w.conn.XUtil
	if err := icccm.WmNameSet(xu, w.win.Id, name); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	// EWMH name is optional; not every window manager supports it.
	_ = ewmh.WmNameSet(xu, w.win.Id, name)

	if class != "" {
		_ = icccm.WmClassSet(xu, w.win.Id, &icccm.WmClass{Instance: class, Class: class})
	}

	// Ask the window manager to send WM_DELETE_WINDOW instead of killing
	// the connection when the user closes the window.
	if err := icccm.WmProtocolsSet(xu, w.win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}
	return nil
}

// ID returns the X11 window id.
func (w *Window) ID() xproto.Window {
	return w.win.Id
}

// Size queries the server for the current client size.
func (w *Window) Size() (width, height int, err error) {
	geom, err := xproto.GetGeometry(w.conn.XUtil.Conn(), xproto.Drawable(w.win.Id)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

// Destroy unmaps and destroys the window. The server answers with a
// DestroyNotify event.
func (w *Window) Destroy() {
	w.win.Destroy()
}

// State is the subset of _NET_WM_STATE the toolkit reports.
type State struct {
	Maximized bool
	Hidden    bool
}

// WindowState reads _NET_WM_STATE for the given window. A window without
// the property reports the zero State.
func (c *Connection) WindowState(id xproto.Window) State {
	states, err := ewmh.WmStateGet(c.XUtil, id)
	if err != nil {
		return State{}
	}
	return stateFromAtoms(states)
}

func stateFromAtoms(states []string) State {
	var st State
	var horz, vert bool
	for _, s := range states {
		switch s {
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			horz = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			vert = true
		case "_NET_WM_STATE_HIDDEN":
			st.Hidden = true
		}
	}
	st.Maximized = horz && vert
	return st
}
