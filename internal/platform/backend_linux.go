//go:build linux

package platform

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/logx"
	"github.com/1broseidon/mzgui/internal/surface"
	"github.com/1broseidon/mzgui/internal/x11"
)

// WindowClass is the WM_CLASS set on every window.
const WindowClass = "mzgui"

// LinuxBackend drives native windows over an X11 connection.
type LinuxBackend struct {
	conn       *x11.Connection
	translator *x11.Translator

	mu       sync.Mutex
	dispatch Dispatcher
	tokens   map[xproto.Window]Token
	closed   bool
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend connects to display. An empty display uses $DISPLAY.
func NewLinuxBackend(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, Fatal("connect", fmt.Errorf("failed to connect to X11: %w", err))
	}
	return &LinuxBackend{
		conn:       conn,
		translator: x11.NewTranslator(conn),
		tokens:     make(map[xproto.Window]Token),
	}, nil
}

// NewNative opens the native backend for this platform.
func NewNative(display string) (Backend, error) {
	b, err := NewLinuxBackend(display)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (b *LinuxBackend) Init(d Dispatcher) error {
	if d == nil {
		return Fatal("init", errors.New("nil dispatcher"))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return Fatal("init", ErrClosed)
	}
	b.dispatch = d
	return nil
}

func (b *LinuxBackend) CreateWindow(name string, size geom.Size, token Token) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, Fatal("create window", ErrClosed)
	}
	if b.dispatch == nil {
		return nil, Fatal("create window", ErrNotInitialized)
	}

	win, err := b.conn.CreateWindow(name, WindowClass, int(size.Width), int(size.Height))
	if err != nil {
		return nil, Transient("create window", err)
	}
	b.translator.Track(win.ID(), int(size.Width), int(size.Height))
	b.tokens[win.ID()] = token

	logx.L().Debug("x11 window created", "id", win.ID(), "name", name, "size", size.String())
	return &linuxWindow{backend: b, win: win}, nil
}

func (b *LinuxBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.conn.Close()
	return nil
}

// pump drains the connection queue. Events for windows this backend did
// not create are dropped. A lost server connection is fatal.
func (b *LinuxBackend) pump() error {
	for {
		ev, ok, err := b.conn.Poll()
		if errors.Is(err, x11.ErrConnectionClosed) {
			return Fatal("poll events", ErrClosed)
		}
		if !ok {
			return nil
		}
		if err != nil {
			logx.L().Warn("x11 event error", "err", err)
			continue
		}

		id, e, ok := b.translator.Translate(ev)
		if !ok {
			continue
		}

		b.mu.Lock()
		token, known := b.tokens[id]
		if e.Kind == event.Shutdown {
			delete(b.tokens, id)
		}
		d := b.dispatch
		b.mu.Unlock()

		if known && d != nil {
			d.Dispatch(token, e)
		}
	}
}

func (b *LinuxBackend) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type linuxWindow struct {
	backend   *LinuxBackend
	win       *x11.Window
	destroyed bool
}

// Size queries the server. A failed query reports Zero, which leaves the
// surface empty until the next Resize.
func (w *linuxWindow) Size() geom.Size {
	width, height, err := w.win.Size()
	if err != nil {
		logx.L().Warn("x11 geometry query failed", "id", w.win.ID(), "err", err)
		return geom.Zero
	}
	return geom.Size{Width: uint(width), Height: uint(height)}
}

func (w *linuxWindow) Allocate(size geom.Size) (surface.Store, error) {
	if w.destroyed {
		return nil, Fatal("allocate", ErrClosed)
	}
	img, err := w.win.NewImage(size)
	if err != nil {
		return nil, Transient("allocate", err)
	}
	return img, nil
}

func (w *linuxWindow) Present(st surface.Store) error {
	if w.destroyed {
		return Fatal("present", ErrClosed)
	}
	img, ok := st.(*x11.Image)
	if !ok {
		return Fatal("present", fmt.Errorf("store %T was not allocated by this backend", st))
	}
	if err := w.win.Present(img); err != nil {
		return Transient("present", err)
	}
	return nil
}

// PollEvents drains the shared connection, so events for every window
// created by the backend are delivered, not only this one.
func (w *linuxWindow) PollEvents() error {
	if w.destroyed || w.backend.isClosed() {
		return Fatal("poll events", ErrClosed)
	}
	return w.backend.pump()
}

// Destroy asks the server to destroy the window. Shutdown is reported once
// the DestroyNotify comes back.
func (w *linuxWindow) Destroy() error {
	if w.destroyed {
		return Fatal("destroy", ErrClosed)
	}
	w.destroyed = true
	w.win.Destroy()
	return nil
}
