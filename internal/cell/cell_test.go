package cell

import (
	"testing"

	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/surface"
)

type memBacking struct{ size geom.Size }

func (m memBacking) Size() geom.Size { return m.size }
func (m memBacking) Allocate(size geom.Size) (surface.Store, error) {
	return surface.NewMemStore(size), nil
}
func (m memBacking) Present(surface.Store) error { return nil }

func newSurface(t *testing.T, w, h uint) *surface.Surface {
	t.Helper()
	s := surface.New()
	if err := s.UpdateSize(memBacking{size: geom.Size{Width: w, Height: h}}); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	return s
}

var (
	red   = surface.Pixel{R: 255}
	green = surface.Pixel{G: 255}
	blue  = surface.Pixel{B: 255}
)

func TestSolid_FillsEveryPixel(t *testing.T) {
	s := newSurface(t, 800, 600)
	NewSolid(red).Draw(s.Slice())

	sl := s.Slice()
	for y := uint(0); y < 600; y++ {
		for x := uint(0); x < 800; x++ {
			if got := sl.At(geom.Pt(x, y)); got != red {
				t.Fatalf("(%d,%d): expected %v, got %v", x, y, red, got)
			}
		}
	}
}

func TestSplit_DrawsBothSides(t *testing.T) {
	s := newSurface(t, 10, 4)
	root := &Split{
		Direction: geom.Horizontal,
		Distance:  geom.Pixels(3),
		Near:      NewSolid(red),
		Far: &Split{
			Direction: geom.Vertical,
			Distance:  geom.Relative(0.5),
			Near:      NewSolid(green),
			Far:       NewSolid(blue),
		},
	}
	root.Draw(s.Slice())

	sl := s.Slice()
	cases := []struct {
		idx  geom.PixelIdx
		want surface.Pixel
	}{
		{geom.Pt(0, 0), red},
		{geom.Pt(2, 3), red},
		{geom.Pt(3, 0), green},
		{geom.Pt(9, 1), green},
		{geom.Pt(3, 2), blue},
		{geom.Pt(9, 3), blue},
	}
	for _, tc := range cases {
		if got := sl.At(tc.idx); got != tc.want {
			t.Fatalf("%v: expected %v, got %v", tc.idx, tc.want, got)
		}
	}
}

func TestSplit_OutOfRangeDrawsNothing(t *testing.T) {
	s := newSurface(t, 4, 4)
	(&Split{Direction: geom.Horizontal, Distance: geom.Pixels(5), Near: NewSolid(red), Far: NewSolid(red)}).Draw(s.Slice())
	if got := s.Slice().At(geom.Pt(0, 0)); got != (surface.Pixel{}) {
		t.Fatalf("expected untouched surface, got %v", got)
	}
}

func TestLayered_LaterLayersWin(t *testing.T) {
	s := newSurface(t, 4, 4)
	dot := Freeform(func(sl surface.Slice) { sl.Set(geom.Pt(1, 1), blue) })
	(&Layered{Layers: []Drawable{NewSolid(red), nil, dot}}).Draw(s.Slice())

	sl := s.Slice()
	if got := sl.At(geom.Pt(1, 1)); got != blue {
		t.Fatalf("expected top layer pixel, got %v", got)
	}
	if got := sl.At(geom.Pt(0, 0)); got != red {
		t.Fatalf("expected bottom layer pixel, got %v", got)
	}
}

func TestSwap_SelectsCell(t *testing.T) {
	s := newSurface(t, 2, 2)
	choice := 1
	sw := &Swap{Cells: []Drawable{NewSolid(red), NewSolid(green)}, Select: func() int { return choice }}

	sw.Draw(s.Slice())
	if got := s.Slice().At(geom.Pt(0, 0)); got != green {
		t.Fatalf("expected green, got %v", got)
	}

	choice = 0
	sw.Draw(s.Slice())
	if got := s.Slice().At(geom.Pt(0, 0)); got != red {
		t.Fatalf("expected red, got %v", got)
	}

	choice = 7
	(&Swap{Cells: []Drawable{NewSolid(blue)}, Select: func() int { return choice }}).Draw(s.Slice())
	if got := s.Slice().At(geom.Pt(0, 0)); got != red {
		t.Fatalf("out of range selection should draw nothing, got %v", got)
	}
}

func TestInset_LeavesMargin(t *testing.T) {
	s := newSurface(t, 5, 5)
	(&Inset{Margin: 1, Inner: NewSolid(red)}).Draw(s.Slice())

	sl := s.Slice()
	if got := sl.At(geom.Pt(0, 0)); got != (surface.Pixel{}) {
		t.Fatalf("expected margin untouched, got %v", got)
	}
	if got := sl.At(geom.Pt(1, 1)); got != red {
		t.Fatalf("expected inner pixel, got %v", got)
	}
	if got := sl.At(geom.Pt(4, 3)); got != (surface.Pixel{}) {
		t.Fatalf("expected right margin untouched, got %v", got)
	}
}
