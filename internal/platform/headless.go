package platform

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/surface"
)

// Headless is an in-memory Backend. Windows have a settable size, events are
// posted by hand and presented frames are kept for inspection.
type Headless struct {
	mu       sync.Mutex
	dispatch Dispatcher
	windows  map[Token]*HeadlessWindow
	closed   bool

	// CreateErr, when set, makes the next CreateWindow fail with it.
	CreateErr error
}

var _ Backend = (*Headless)(nil)

// NewHeadless returns an uninitialized headless backend.
func NewHeadless() *Headless {
	return &Headless{windows: make(map[Token]*HeadlessWindow)}
}

func (b *Headless) Init(d Dispatcher) error {
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

func (b *Headless) CreateWindow(name string, size geom.Size, token Token) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.closed:
		return nil, Fatal("create window", ErrClosed)
	case b.dispatch == nil:
		return nil, Fatal("create window", ErrNotInitialized)
	case b.CreateErr != nil:
		err := b.CreateErr
		b.CreateErr = nil
		return nil, Transient("create window", err)
	}
	if _, taken := b.windows[token]; taken {
		return nil, Fatal("create window", fmt.Errorf("token %d already in use", token))
	}

	w := &HeadlessWindow{backend: b, token: token, name: name, size: size}
	b.windows[token] = w
	return w, nil
}

// Window returns the live window created with token.
func (b *Headless) Window(token Token) (*HeadlessWindow, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.windows[token]
	return w, ok
}

// Windows returns the number of live windows.
func (b *Headless) Windows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.windows)
}

// Send delivers e for token straight to the dispatcher, as a native
// backend would for an event raised outside PollEvents.
func (b *Headless) Send(token Token, e event.Event) {
	b.mu.Lock()
	d := b.dispatch
	b.mu.Unlock()
	if d != nil {
		d.Dispatch(token, e)
	}
}

func (b *Headless) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for token, w := range b.windows {
		w.mu.Lock()
		w.destroyed = true
		w.queue = nil
		w.mu.Unlock()
		delete(b.windows, token)
	}
	return nil
}

// HeadlessWindow is a Handle created by Headless.
type HeadlessWindow struct {
	backend *Headless
	token   Token
	name    string

	// mu guards the fields below. It is never held while dispatching.
	mu        sync.Mutex
	size      geom.Size
	queue     []event.Event
	destroyed bool
	presents  int
	last      *image.NRGBA

	// AllocErr and PresentErr, when set, make every Allocate or Present
	// fail with them until cleared.
	AllocErr   error
	PresentErr error
}

var _ Handle = (*HeadlessWindow)(nil)

// Name returns the title the window was created with.
func (w *HeadlessWindow) Name() string { return w.name }

// Token returns the user data the window was created with.
func (w *HeadlessWindow) Token() Token { return w.token }

func (w *HeadlessWindow) Size() geom.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// SetSize changes the window size and queues a Resize event.
func (w *HeadlessWindow) SetSize(size geom.Size) {
	w.mu.Lock()
	w.size = size
	w.mu.Unlock()
	w.Post(event.Of(event.Resize))
}

// Post queues e for the next PollEvents.
func (w *HeadlessWindow) Post(e event.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.destroyed {
		w.queue = append(w.queue, e)
	}
}

func (w *HeadlessWindow) Allocate(size geom.Size) (surface.Store, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return nil, Fatal("allocate", ErrClosed)
	}
	if w.AllocErr != nil {
		return nil, Transient("allocate", w.AllocErr)
	}
	return surface.NewMemStore(size), nil
}

func (w *HeadlessWindow) Present(st surface.Store) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return Fatal("present", ErrClosed)
	}
	if w.PresentErr != nil {
		return Transient("present", w.PresentErr)
	}
	w.presents++
	w.last = surface.StoreImage(st)
	return nil
}

// Presents returns how many frames were presented.
func (w *HeadlessWindow) Presents() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presents
}

// Presented returns a copy of the last presented frame, or nil.
func (w *HeadlessWindow) Presented() *image.NRGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Destroyed reports whether Destroy has run.
func (w *HeadlessWindow) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

func (w *HeadlessWindow) PollEvents() error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return Fatal("poll events", ErrClosed)
	}
	pending := w.queue
	w.queue = nil
	w.mu.Unlock()

	for _, e := range pending {
		w.backend.Send(w.token, e)
	}
	return nil
}

// Destroy removes the window and reports Shutdown for it synchronously.
func (w *HeadlessWindow) Destroy() error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return Fatal("destroy", ErrClosed)
	}
	w.destroyed = true
	w.queue = nil
	w.mu.Unlock()

	b := w.backend
	b.mu.Lock()
	if b.windows[w.token] == w {
		delete(b.windows, w.token)
	}
	b.mu.Unlock()

	b.Send(w.token, event.Of(event.Shutdown))
	return nil
}
