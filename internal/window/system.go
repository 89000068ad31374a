// Package window ties a native handle, its pixel surface and a drawable
// root together, and runs the event dispatch state machine.
package window

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1broseidon/mzgui/internal/arena"
	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/logx"
	"github.com/1broseidon/mzgui/internal/platform"
)

// ErrShutdown is returned when creating a window on a System that has been
// shut down.
var ErrShutdown = errors.New("window system shut down")

// System is the capability returned by Init. Every window is created
// against one, and it routes backend events back to their windows.
type System struct {
	backend platform.Backend

	mu      sync.Mutex
	windows arena.List[*Window]
	closed  bool
}

// Init initializes the backend once and returns the System that owns it.
func Init(b platform.Backend) (*System, error) {
	if b == nil {
		return nil, errors.New("nil backend")
	}
	s := &System{}
	if err := b.Init(platform.DispatchFunc(s.dispatch)); err != nil {
		return nil, fmt.Errorf("init backend: %w", err)
	}
	s.backend = b
	return s, nil
}

// Shutdown closes every open window and then the backend. It is safe to
// call more than once.
func (s *System) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	var open []*Window
	s.windows.Each(func(_ arena.ID, w *Window) {
		if w != nil {
			open = append(open, w)
		}
	})
	s.mu.Unlock()

	for _, w := range open {
		w.Close()
	}
	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("close backend: %w", err)
	}
	return nil
}

// reserve claims an empty registry slot. Events for it are dropped until
// publish.
func (s *System) reserve() (arena.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return arena.ID{}, ErrShutdown
	}
	return s.windows.Insert(nil), nil
}

func (s *System) publish(id arena.ID, w *Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.windows.Set(id, w); err != nil {
		logx.L().Error("window slot lost before publish", "slot", id.String(), "err", err)
	}
}

func (s *System) release(id arena.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.windows.Remove(id); err != nil {
		logx.L().Debug("window slot already released", "slot", id.String())
	}
}

func (s *System) lookup(id arena.ID) *Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := s.windows.Get(id)
	if err != nil {
		return nil
	}
	return w
}

// dispatch is the only path from a backend into Window.handleEvent.
func (s *System) dispatch(token platform.Token, e event.Event) {
	id := arena.Unpack(uint64(token))
	w := s.lookup(id)
	if w == nil {
		logx.L().Debug("event dropped", "slot", id.String(), "event", e.String())
		return
	}
	w.handleEvent(e)
}
