package platform

import (
	"errors"
	"testing"

	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/surface"
)

type recorded struct {
	token Token
	e     event.Event
}

func initHeadless(t *testing.T) (*Headless, *[]recorded) {
	t.Helper()
	var got []recorded
	b := NewHeadless()
	err := b.Init(DispatchFunc(func(token Token, e event.Event) {
		got = append(got, recorded{token, e})
	}))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return b, &got
}

func TestHeadless_CreateBeforeInit(t *testing.T) {
	b := NewHeadless()
	_, err := b.CreateWindow("w", geom.Size{Width: 1, Height: 1}, 1)
	if !errors.Is(err, ErrNotInitialized) || !IsFatal(err) {
		t.Fatalf("expected fatal ErrNotInitialized, got %v", err)
	}
}

func TestHeadless_PollDeliversWithToken(t *testing.T) {
	b, got := initHeadless(t)
	h, err := b.CreateWindow("w", geom.Size{Width: 4, Height: 3}, 42)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w, ok := b.Window(42)
	if !ok || w.Name() != "w" {
		t.Fatalf("window lookup failed")
	}

	w.Post(event.Of(event.Draw))
	w.SetSize(geom.Size{Width: 8, Height: 6})
	if len(*got) != 0 {
		t.Fatalf("events must wait for PollEvents")
	}
	if err := h.PollEvents(); err != nil {
		t.Fatalf("poll: %v", err)
	}

	want := []recorded{{42, event.Of(event.Draw)}, {42, event.Of(event.Resize)}}
	if len(*got) != len(want) {
		t.Fatalf("expected %v, got %v", want, *got)
	}
	for i := range want {
		if (*got)[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], (*got)[i])
		}
	}
	if h.Size() != (geom.Size{Width: 8, Height: 6}) {
		t.Fatalf("unexpected size %v", h.Size())
	}
}

func TestHeadless_DestroyReportsShutdown(t *testing.T) {
	b, got := initHeadless(t)
	h, _ := b.CreateWindow("w", geom.Size{Width: 1, Height: 1}, 7)

	if err := h.Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if len(*got) != 1 || (*got)[0] != (recorded{7, event.Of(event.Shutdown)}) {
		t.Fatalf("expected Shutdown for token 7, got %v", *got)
	}
	if b.Windows() != 0 {
		t.Fatalf("destroyed window still registered")
	}
	if err := h.Destroy(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on second destroy, got %v", err)
	}
	if err := h.PollEvents(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on poll after destroy, got %v", err)
	}
}

func TestHeadless_InjectedFailures(t *testing.T) {
	b, _ := initHeadless(t)
	b.CreateErr = errors.New("no resources")
	if _, err := b.CreateWindow("w", geom.Size{Width: 1, Height: 1}, 1); !IsTransient(err) {
		t.Fatalf("expected transient create failure, got %v", err)
	}
	h, err := b.CreateWindow("w", geom.Size{Width: 1, Height: 1}, 1)
	if err != nil {
		t.Fatalf("injected failure should be one-shot: %v", err)
	}

	w, _ := b.Window(1)
	w.AllocErr = errors.New("oom")
	if _, err := h.Allocate(geom.Size{Width: 2, Height: 2}); !IsTransient(err) {
		t.Fatalf("expected transient allocate failure, got %v", err)
	}
	w.AllocErr = nil

	st, err := h.Allocate(geom.Size{Width: 2, Height: 2})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	w.PresentErr = errors.New("lost")
	if err := h.Present(st); !IsTransient(err) {
		t.Fatalf("expected transient present failure, got %v", err)
	}
	if w.Presents() != 0 {
		t.Fatalf("failed present must not count")
	}
}

func TestHeadless_PresentKeepsFrame(t *testing.T) {
	b, _ := initHeadless(t)
	h, _ := b.CreateWindow("w", geom.Size{Width: 2, Height: 1}, 1)
	w, _ := b.Window(1)

	s := surface.New()
	if err := s.UpdateSize(h); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	s.Slice().Set(geom.Pt(1, 0), surface.PixelFromUint32(0xff00ff00))
	if err := s.Commit(h); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if w.Presents() != 1 {
		t.Fatalf("expected one present, got %d", w.Presents())
	}
	img := w.Presented()
	if c := img.NRGBAAt(1, 0); c.G != 0xff || c.A != 0xff || c.R != 0 {
		t.Fatalf("unexpected presented pixel %v", c)
	}
}

func TestHeadless_CloseRejectsNewWindows(t *testing.T) {
	b, _ := initHeadless(t)
	h, _ := b.CreateWindow("w", geom.Size{Width: 1, Height: 1}, 1)
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := b.CreateWindow("w", geom.Size{Width: 1, Height: 1}, 2); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := h.PollEvents(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected windows to be destroyed with the backend, got %v", err)
	}
}

func TestErrorKinds(t *testing.T) {
	base := errors.New("boom")
	err := Transient("op", base)
	if !IsTransient(err) || IsFatal(err) || !errors.Is(err, base) {
		t.Fatalf("unexpected classification for %v", err)
	}
	if IsTransient(base) || IsFatal(base) {
		t.Fatalf("plain error must not classify")
	}
	if got := Fatal("present", ErrClosed).Error(); got != "platform: present (fatal): platform closed" {
		t.Fatalf("unexpected message %q", got)
	}
}
