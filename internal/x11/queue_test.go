package x11

import (
	"errors"
	"testing"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func scriptedWait(items []queued) func() (xgb.Event, xgb.Error) {
	i := 0
	return func() (xgb.Event, xgb.Error) {
		if i == len(items) {
			return nil, nil
		}
		it := items[i]
		i++
		return it.ev, it.err
	}
}

// pollNext polls until something other than an empty queue comes back.
func pollNext(t *testing.T, c *Connection) (xgb.Event, bool, error) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok, err := c.Poll()
		if ok || err != nil {
			return ev, ok, err
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for the event queue")
	return nil, false, nil
}

func TestPoll_DrainsThenReportsClosedConnection(t *testing.T) {
	c := &Connection{queue: newEventQueue(scriptedWait([]queued{
		{ev: xproto.ExposeEvent{Window: 7}},
		{err: xproto.WindowError{BadValue: 7}},
		{ev: xproto.DestroyNotifyEvent{Window: 7, Event: 7}},
	}))}
	defer c.queue.stop()

	ev, ok, err := pollNext(t, c)
	if !ok || err != nil {
		t.Fatalf("expected expose, got ok=%v err=%v", ok, err)
	}
	if e, isExpose := ev.(xproto.ExposeEvent); !isExpose || e.Window != 7 {
		t.Fatalf("unexpected first event %v", ev)
	}

	if _, ok, err := pollNext(t, c); !ok || err == nil || errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("expected a protocol error with ok=true, got ok=%v err=%v", ok, err)
	}

	ev, ok, err = pollNext(t, c)
	if !ok || err != nil {
		t.Fatalf("expected destroy notify, got ok=%v err=%v", ok, err)
	}
	if _, isDestroy := ev.(xproto.DestroyNotifyEvent); !isDestroy {
		t.Fatalf("unexpected third event %v", ev)
	}

	for i := 0; i < 2; i++ {
		if _, ok, err := pollNext(t, c); ok || !errors.Is(err, ErrConnectionClosed) {
			t.Fatalf("expected ErrConnectionClosed, got ok=%v err=%v", ok, err)
		}
	}
}

func TestPoll_EmptyQueueIsNotAnError(t *testing.T) {
	block := make(chan struct{})
	c := &Connection{queue: newEventQueue(func() (xgb.Event, xgb.Error) {
		<-block
		return nil, nil
	})}
	defer close(block)
	defer c.queue.stop()

	ev, ok, err := c.Poll()
	if ev != nil || ok || err != nil {
		t.Fatalf("expected empty queue, got (%v, %v, %v)", ev, ok, err)
	}
}
