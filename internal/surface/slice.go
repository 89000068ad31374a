package surface

import (
	"fmt"

	"github.com/1broseidon/mzgui/internal/geom"
)

// Slice is a non-owning, bounds-checked view over a rectangle of a
// Surface's buffer. Coordinates passed to At and Set are relative to the
// slice's own origin. Slices split from one another share the buffer and
// stay valid together until the buffer is reallocated.
type Slice struct {
	surface  *Surface
	gen      uint64
	domain   geom.Rect
	rootSize geom.Size
}

// Size returns the size of the slice's domain.
func (s Slice) Size() geom.Size { return s.domain.Size }

// Bounds returns the domain in absolute buffer coordinates.
func (s Slice) Bounds() geom.Rect { return s.domain }

func (s Slice) offset(idx geom.PixelIdx) (int, []byte, bool) {
	abs := idx.Add(s.domain.Offset)
	if !s.domain.Contains(abs) {
		return 0, nil, false
	}
	pix, stride, ok := s.surface.memory(s.gen)
	if !ok {
		return 0, nil, false
	}
	return int(abs.Y)*stride + int(abs.X)*BytesPerPixel, pix, true
}

// At returns the pixel at idx, or the zero Pixel when idx is outside the
// slice.
func (s Slice) At(idx geom.PixelIdx) Pixel {
	off, pix, ok := s.offset(idx)
	if !ok {
		return Pixel{}
	}
	return load(pix[off:])
}

// Set writes px at idx. Writes outside the slice are ignored.
func (s Slice) Set(idx geom.PixelIdx, px Pixel) {
	off, pix, ok := s.offset(idx)
	if !ok {
		return
	}
	store(pix[off:], px)
}

// Fill sets every pixel of the slice to px.
func (s Slice) Fill(px Pixel) {
	pix, stride, ok := s.surface.memory(s.gen)
	if !ok {
		return
	}
	d := s.domain
	for y := d.Offset.Y; y < d.Offset.Y+d.Size.Height; y++ {
		row := int(y) * stride
		for x := d.Offset.X; x < d.Offset.X+d.Size.Width; x++ {
			store(pix[row+int(x)*BytesPerPixel:], px)
		}
	}
}

// Sub returns the part of s covered by r, where r is relative to s's origin.
func (s Slice) Sub(r geom.Rect) Slice {
	r.Offset = r.Offset.Add(s.domain.Offset)
	s.domain = s.domain.Intersect(r)
	return s
}

// Partition splits the slice's domain. Both children reference the same
// buffer.
func (s Slice) Partition(dir geom.Direction, dist geom.Distance) (geom.Partition[Slice], error) {
	part, err := s.domain.Partition(dir, dist)
	if err != nil {
		return geom.Partition[Slice]{}, err
	}
	near, far := s, s
	near.domain = part.Near
	far.domain = part.Far
	return geom.Partition[Slice]{
		Near:      near,
		Far:       far,
		Direction: dir,
		Distance:  dist,
	}, nil
}

func (s Slice) String() string {
	return fmt.Sprintf("slice %s of %s", s.domain, s.rootSize)
}
