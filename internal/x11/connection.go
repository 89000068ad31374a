package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages the X11 connection and the atoms the toolkit needs.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
	Atoms Atoms

	queue *eventQueue
}

// Atoms are interned once per connection.
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	NetWMState     xproto.Atom
}

// NewConnection connects to display (empty means $DISPLAY) and loads the
// keyboard mapping used for key name lookups.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Required before keybind.LookupString can resolve keycodes.
	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	if err := c.internAtoms(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	c.queue = newEventQueue(xu.Conn().WaitForEvent)
	return c, nil
}

func (c *Connection) internAtoms() error {
	names := []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &c.Atoms.WMProtocols},
		{"WM_DELETE_WINDOW", &c.Atoms.WMDeleteWindow},
		{"_NET_WM_STATE", &c.Atoms.NetWMState},
	}
	for _, n := range names {
		atom, err := xprop.Atm(c.XUtil, n.name)
		if err != nil {
			return fmt.Errorf("failed to intern %s: %w", n.name, err)
		}
		*n.dst = atom
	}
	return nil
}

// Poll returns the next queued event without blocking. ok is false once the
// queue is empty. Protocol errors are returned with ok true so the caller
// can keep draining. A lost connection is reported as ErrConnectionClosed.
func (c *Connection) Poll() (xgb.Event, bool, error) {
	return c.queue.poll()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.queue.stop()
	c.XUtil.Conn().Close()
}
