package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
)

// ErrConnectionClosed is returned by Poll once the server connection is gone
// and every event read before that has been delivered.
var ErrConnectionClosed = errors.New("x11 connection closed")

type queued struct {
	ev  xgb.Event
	err xgb.Error
}

// eventQueue moves events off a blocking wait call so they can be drained
// without blocking. xgb reports a dead connection as a (nil, nil) wait,
// which PollForEvent cannot tell apart from an empty queue.
type eventQueue struct {
	ch   chan queued
	done chan struct{}
}

func newEventQueue(wait func() (xgb.Event, xgb.Error)) *eventQueue {
	q := &eventQueue{
		ch:   make(chan queued, 256),
		done: make(chan struct{}),
	}
	go q.read(wait)
	return q
}

func (q *eventQueue) read(wait func() (xgb.Event, xgb.Error)) {
	defer close(q.ch)
	for {
		ev, err := wait()
		if ev == nil && err == nil {
			return
		}
		select {
		case q.ch <- queued{ev: ev, err: err}:
		case <-q.done:
			return
		}
	}
}

// poll returns the next event without blocking. ok is false when nothing is
// queued; err is ErrConnectionClosed once the reader has stopped.
func (q *eventQueue) poll() (xgb.Event, bool, error) {
	select {
	case it, open := <-q.ch:
		if !open {
			return nil, false, ErrConnectionClosed
		}
		if it.err != nil {
			return nil, true, fmt.Errorf("x11 protocol error: %s", it.err.Error())
		}
		return it.ev, true, nil
	default:
		return nil, false, nil
	}
}

func (q *eventQueue) stop() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
