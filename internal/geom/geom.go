package geom

import "fmt"

// Size is a width/height pair. It exists so that (uint, uint) is never
// ambiguous between rows/cols and width/height.
type Size struct {
	Width  uint
	Height uint
}

// Zero is the empty size. A surface with size Zero has no buffer.
var Zero = Size{}

func (s Size) Rows() uint { return s.Height }
func (s Size) Cols() uint { return s.Width }

// Area returns the number of pixels covered by s.
func (s Size) Area() uint { return s.Width * s.Height }

// IsZero reports whether s covers no pixels.
func (s Size) IsZero() bool { return s.Width == 0 || s.Height == 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// PixelIdx is an unsigned 2D pixel coordinate.
type PixelIdx struct {
	X uint
	Y uint
}

// Pt is shorthand for PixelIdx{X: x, Y: y}.
func Pt(x, y uint) PixelIdx { return PixelIdx{X: x, Y: y} }

// Add translates p by q.
func (p PixelIdx) Add(q PixelIdx) PixelIdx {
	return PixelIdx{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p PixelIdx) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned half-open rectangle [Offset, Offset+Size).
type Rect struct {
	Offset PixelIdx
	Size   Size
}

// RectOf returns the rectangle at the origin covering size.
func RectOf(size Size) Rect {
	return Rect{Size: size}
}

// Contains is the containment predicate used for every bounds check.
func (r Rect) Contains(idx PixelIdx) bool {
	return idx.X >= r.Offset.X && idx.Y >= r.Offset.Y &&
		idx.X < r.Offset.X+r.Size.Width && idx.Y < r.Offset.Y+r.Size.Height
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool { return r.Size.IsZero() }

// Max returns the exclusive bottom-right corner.
func (r Rect) Max() PixelIdx {
	return PixelIdx{X: r.Offset.X + r.Size.Width, Y: r.Offset.Y + r.Size.Height}
}

// Intersect returns the largest rectangle contained in both r and o.
// Disjoint rectangles yield an empty Rect at r's offset.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Offset.X, o.Offset.X)
	y0 := max(r.Offset.Y, o.Offset.Y)
	x1 := min(r.Max().X, o.Max().X)
	y1 := min(r.Max().Y, o.Max().Y)
	if x1 <= x0 || y1 <= y0 {
		return Rect{Offset: r.Offset}
	}
	return Rect{
		Offset: PixelIdx{X: x0, Y: y0},
		Size:   Size{Width: x1 - x0, Height: y1 - y0},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%s+%s", r.Size, r.Offset)
}
