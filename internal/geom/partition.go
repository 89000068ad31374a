package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDistanceOutOfRange is returned when a pixel distance exceeds the
	// extent of the region along the split axis.
	ErrDistanceOutOfRange = errors.New("partition distance out of range")
	// ErrInvalidRelative is returned for relative distances outside [0, 1].
	ErrInvalidRelative = errors.New("relative partition distance must be within [0, 1]")
)

// Direction is the axis a partition splits along.
type Direction int

const (
	// Horizontal splits by width: near is left, far is right.
	Horizontal Direction = iota
	// Vertical splits by height: near is top, far is bottom.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Distance is a split position: either an absolute pixel count or a fraction
// of the extent along the split axis.
type Distance struct {
	relative bool
	pixels   uint
	fraction float64
}

// Pixels returns an absolute distance of n pixels.
func Pixels(n uint) Distance { return Distance{pixels: n} }

// Relative returns a distance of p times the extent along the split axis.
func Relative(p float64) Distance { return Distance{relative: true, fraction: p} }

// IsRelative reports whether d was built with Relative.
func (d Distance) IsRelative() bool { return d.relative }

// Resolve converts d to an absolute pixel count for an axis of length extent.
func (d Distance) Resolve(extent uint) (uint, error) {
	if !d.relative {
		if d.pixels > extent {
			return 0, fmt.Errorf("%w: %d > %d", ErrDistanceOutOfRange, d.pixels, extent)
		}
		return d.pixels, nil
	}
	if math.IsNaN(d.fraction) || d.fraction < 0 || d.fraction > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRelative, d.fraction)
	}
	return uint(math.Floor(float64(extent) * d.fraction)), nil
}

func (d Distance) String() string {
	if d.relative {
		return fmt.Sprintf("%g%%", d.fraction*100)
	}
	return fmt.Sprintf("%dpx", d.pixels)
}

// Partition is the result of splitting a region in two along one axis.
// Near is left or top; Far is right or bottom.
type Partition[T any] struct {
	Near      T
	Far       T
	Direction Direction
	Distance  Distance
}

// Partitionable is any region that can be split into two complementary
// sub-regions.
type Partitionable[T any] interface {
	Partition(dir Direction, dist Distance) (Partition[T], error)
}

// Split partitions p. It exists so callers can stay generic over anything
// Partitionable.
func Split[T Partitionable[T]](p T, dir Direction, dist Distance) (T, T, error) {
	part, err := p.Partition(dir, dist)
	if err != nil {
		var zero T
		return zero, zero, err
	}
	return part.Near, part.Far, nil
}

// Partition splits r along dir at dist. The two children exactly tile r.
func (r Rect) Partition(dir Direction, dist Distance) (Partition[Rect], error) {
	var extent uint
	switch dir {
	case Horizontal:
		extent = r.Size.Width
	case Vertical:
		extent = r.Size.Height
	default:
		return Partition[Rect]{}, fmt.Errorf("unsupported direction: %v", dir)
	}

	n, err := dist.Resolve(extent)
	if err != nil {
		return Partition[Rect]{}, fmt.Errorf("partition %s %s at %s: %w", r, dir, dist, err)
	}

	part := Partition[Rect]{Direction: dir, Distance: dist}
	switch dir {
	case Horizontal:
		part.Near = Rect{
			Offset: r.Offset,
			Size:   Size{Width: n, Height: r.Size.Height},
		}
		part.Far = Rect{
			Offset: PixelIdx{X: r.Offset.X + n, Y: r.Offset.Y},
			Size:   Size{Width: r.Size.Width - n, Height: r.Size.Height},
		}
	case Vertical:
		part.Near = Rect{
			Offset: r.Offset,
			Size:   Size{Width: r.Size.Width, Height: n},
		}
		part.Far = Rect{
			Offset: PixelIdx{X: r.Offset.X, Y: r.Offset.Y + n},
			Size:   Size{Width: r.Size.Width, Height: r.Size.Height - n},
		}
	}
	return part, nil
}

// ParseDirection parses "horizontal" or "vertical".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want horizontal or vertical)", s)
	}
}
