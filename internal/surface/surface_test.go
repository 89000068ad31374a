package surface

import (
	"errors"
	"testing"

	"github.com/1broseidon/mzgui/internal/geom"
)

type fakeBacking struct {
	size      geom.Size
	failAlloc bool
	allocs    []*MemStore
	presented []Store
}

func (f *fakeBacking) Size() geom.Size { return f.size }

func (f *fakeBacking) Allocate(size geom.Size) (Store, error) {
	if f.failAlloc {
		return nil, errors.New("out of backing stores")
	}
	st := NewMemStore(size)
	f.allocs = append(f.allocs, st)
	return st, nil
}

func (f *fakeBacking) Present(st Store) error {
	f.presented = append(f.presented, st)
	return nil
}

func sized(t *testing.T, w, h uint) (*Surface, *fakeBacking) {
	t.Helper()
	b := &fakeBacking{size: geom.Size{Width: w, Height: h}}
	s := New()
	if err := s.UpdateSize(b); err != nil {
		t.Fatalf("update size: %v", err)
	}
	return s, b
}

func TestPixelPacking(t *testing.T) {
	p := Pixel{A: 0x12, R: 0x34, G: 0x56, B: 0x78}
	if p.Uint32() != 0x12345678 {
		t.Fatalf("expected 0x12345678, got %#x", p.Uint32())
	}
	for _, v := range []uint32{0, 1, 0xdeadbeef, 0xffffffff, 0x00ff0000} {
		if got := PixelFromUint32(v).Uint32(); got != v {
			t.Fatalf("round trip %#x -> %#x", v, got)
		}
	}
}

func TestSurfaceUpdateSize_AllocatesOnceForSameSize(t *testing.T) {
	s, b := sized(t, 8, 4)
	if s.Size() != (geom.Size{Width: 8, Height: 4}) {
		t.Fatalf("unexpected size %v", s.Size())
	}
	if err := s.UpdateSize(b); err != nil {
		t.Fatalf("update size: %v", err)
	}
	if len(b.allocs) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(b.allocs))
	}

	b.size = geom.Size{Width: 2, Height: 2}
	if err := s.UpdateSize(b); err != nil {
		t.Fatalf("update size: %v", err)
	}
	if len(b.allocs) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(b.allocs))
	}
	if !b.allocs[0].Released() {
		t.Fatalf("expected old store to be released")
	}
}

func TestSurfaceUpdateSize_NilBackingDeallocates(t *testing.T) {
	s, b := sized(t, 3, 3)
	if err := s.UpdateSize(nil); err != nil {
		t.Fatalf("update size: %v", err)
	}
	if s.Allocated() || s.Size() != geom.Zero {
		t.Fatalf("expected empty surface, got %v allocated=%v", s.Size(), s.Allocated())
	}
	if !b.allocs[0].Released() {
		t.Fatalf("expected store to be released")
	}
}

func TestSurfaceReallocate_FailureFallsBackToZero(t *testing.T) {
	s, b := sized(t, 4, 4)
	stale := s.Slice()

	b.failAlloc = true
	b.size = geom.Size{Width: 10, Height: 10}
	if err := s.UpdateSize(b); err == nil {
		t.Fatalf("expected reallocation error")
	}
	if s.Allocated() || s.Size() != geom.Zero {
		t.Fatalf("expected zero-sized surface after failure, got %v", s.Size())
	}
	if !b.allocs[0].Released() {
		t.Fatalf("expected old store to be released on failure")
	}
	s.Slice().Set(geom.Pt(0, 0), Pixel{R: 1})
	stale.Set(geom.Pt(0, 0), Pixel{R: 1})

	// The next resize retries.
	b.failAlloc = false
	if err := s.UpdateSize(b); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.Size() != b.size {
		t.Fatalf("expected %v after retry, got %v", b.size, s.Size())
	}
}

func TestSurfaceDeallocate_Idempotent(t *testing.T) {
	s, b := sized(t, 2, 2)
	if err := s.Deallocate(); err != nil {
		t.Fatalf("first deallocate: %v", err)
	}
	if err := s.Deallocate(); err != nil {
		t.Fatalf("second deallocate: %v", err)
	}
	if len(b.allocs) != 1 || !b.allocs[0].Released() {
		t.Fatalf("expected exactly one released store")
	}
}

func TestSurfaceCommit(t *testing.T) {
	s := New()
	b := &fakeBacking{}
	if err := s.Commit(b); err != nil || len(b.presented) != 0 {
		t.Fatalf("expected no-op commit for empty surface")
	}

	s, b = sized(t, 2, 2)
	if err := s.Commit(b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(b.presented) != 1 || b.presented[0] != Store(b.allocs[0]) {
		t.Fatalf("expected current store to be presented")
	}
}

func TestSlice_RoundTripInsideDomain(t *testing.T) {
	s, _ := sized(t, 5, 3)
	sl := s.Slice()
	c := Pixel{A: 1, R: 2, G: 3, B: 4}
	for y := uint(0); y < 3; y++ {
		for x := uint(0); x < 5; x++ {
			sl.Set(geom.Pt(x, y), c)
			if got := sl.At(geom.Pt(x, y)); got != c {
				t.Fatalf("(%d,%d): expected %v, got %v", x, y, c, got)
			}
		}
	}
}

func TestSlice_OutsideDomain(t *testing.T) {
	s, b := sized(t, 6, 4)
	part, err := s.Slice().Partition(geom.Horizontal, geom.Pixels(2))
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	near := part.Near

	before := append([]byte(nil), b.allocs[0].Pix()...)
	near.Set(geom.Pt(2, 0), Pixel{R: 255})
	near.Set(geom.Pt(0, 4), Pixel{R: 255})
	for i := range before {
		if before[i] != b.allocs[0].Pix()[i] {
			t.Fatalf("out-of-domain write modified byte %d", i)
		}
	}

	part.Far.Set(geom.Pt(0, 0), Pixel{G: 9})
	if got := near.At(geom.Pt(2, 0)); got != (Pixel{}) {
		t.Fatalf("expected zero pixel outside domain, got %v", got)
	}
	if got := s.Slice().At(geom.Pt(2, 0)); got != (Pixel{G: 9}) {
		t.Fatalf("expected far write at absolute (2,0), got %v", got)
	}
}

func TestSlice_StaleAfterReallocate(t *testing.T) {
	s, b := sized(t, 2, 2)
	stale := s.Slice()
	stale.Set(geom.Pt(1, 1), Pixel{B: 7})

	b.size = geom.Size{Width: 3, Height: 3}
	if err := s.UpdateSize(b); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := stale.At(geom.Pt(1, 1)); got != (Pixel{}) {
		t.Fatalf("expected zero from stale slice, got %v", got)
	}
	stale.Fill(Pixel{R: 1})
	if got := s.Slice().At(geom.Pt(0, 0)); got != (Pixel{}) {
		t.Fatalf("stale fill reached new buffer: %v", got)
	}
}

func TestSlice_FillAndSnapshot(t *testing.T) {
	s, _ := sized(t, 4, 2)
	sl := s.Slice().Sub(geom.Rect{Offset: geom.Pt(1, 0), Size: geom.Size{Width: 10, Height: 1}})
	if sl.Size() != (geom.Size{Width: 3, Height: 1}) {
		t.Fatalf("expected clipped sub-slice, got %v", sl.Size())
	}
	sl.Fill(Pixel{A: 255, R: 10, G: 20, B: 30})

	img := s.Snapshot()
	if got := img.NRGBAAt(0, 0); got.A != 0 {
		t.Fatalf("expected untouched pixel at (0,0), got %v", got)
	}
	if got := img.NRGBAAt(3, 0); got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Fatalf("unexpected snapshot pixel %v", got)
	}
	if got := img.NRGBAAt(3, 1); got.A != 0 {
		t.Fatalf("expected untouched second row, got %v", got)
	}
}

func TestSurfaceReallocate_FailureKeepsReleaseError(t *testing.T) {
	s, b := sized(t, 2, 2)
	// Releasing behind the surface's back makes its own release fail.
	if err := b.allocs[0].Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	b.failAlloc = true
	b.size = geom.Size{Width: 4, Height: 4}
	err := s.UpdateSize(b)
	if err == nil {
		t.Fatalf("expected allocation failure")
	}
	if !errors.Is(err, ErrReleased) {
		t.Fatalf("expected release error to be kept, got %v", err)
	}
	if s.Size() != geom.Zero {
		t.Fatalf("expected fallback to zero size, got %v", s.Size())
	}

	s2, _ := sized(t, 2, 2)
	if err := s2.Reallocate(nil, geom.Size{Width: 1, Height: 1}); !errors.Is(err, ErrNoBacking) {
		t.Fatalf("expected ErrNoBacking, got %v", err)
	}
}
