// Package cell provides drawables: values that paint themselves into a
// bounded surface view.
package cell

import (
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/logx"
	"github.com/1broseidon/mzgui/internal/surface"
)

// Drawable paints into the given view. Implementations must not keep the
// view after Draw returns.
type Drawable interface {
	Draw(s surface.Slice)
}

// Solid fills its whole view with one color.
type Solid struct {
	Color surface.Pixel
}

// NewSolid returns a solid cell of color c.
func NewSolid(c surface.Pixel) *Solid {
	return &Solid{Color: c}
}

func (c *Solid) Draw(s surface.Slice) {
	s.Fill(c.Color)
}

// Layered draws its layers back to front into the same view, so later
// layers paint over earlier ones.
type Layered struct {
	Layers []Drawable
}

func (c *Layered) Draw(s surface.Slice) {
	for _, layer := range c.Layers {
		if layer != nil {
			layer.Draw(s)
		}
	}
}

// Split partitions its view and draws Near into the left/top part and Far
// into the right/bottom part. A distance that does not fit the view is
// logged and nothing is drawn.
type Split struct {
	Direction geom.Direction
	Distance  geom.Distance
	Near      Drawable
	Far       Drawable
}

func (c *Split) Draw(s surface.Slice) {
	near, far, err := geom.Split(s, c.Direction, c.Distance)
	if err != nil {
		logx.L().Warn("split cell skipped", "view", s.Size().String(), "err", err)
		return
	}
	if c.Near != nil {
		c.Near.Draw(near)
	}
	if c.Far != nil {
		c.Far.Draw(far)
	}
}

// Freeform adapts a plain function to Drawable.
type Freeform func(s surface.Slice)

func (f Freeform) Draw(s surface.Slice) {
	if f != nil {
		f(s)
	}
}

// Swap draws one of several cells, chosen by Select at draw time. An index
// outside Cells draws nothing.
type Swap struct {
	Cells  []Drawable
	Select func() int
}

func (c *Swap) Draw(s surface.Slice) {
	if c.Select == nil {
		return
	}
	i := c.Select()
	if i < 0 || i >= len(c.Cells) || c.Cells[i] == nil {
		return
	}
	c.Cells[i].Draw(s)
}

// Inset draws Inner into the view shrunk by Margin pixels on every side.
type Inset struct {
	Margin uint
	Inner  Drawable
}

func (c *Inset) Draw(s surface.Slice) {
	if c.Inner == nil {
		return
	}
	size := s.Size()
	if size.Width <= 2*c.Margin || size.Height <= 2*c.Margin {
		return
	}
	c.Inner.Draw(s.Sub(geom.Rect{
		Offset: geom.Pt(c.Margin, c.Margin),
		Size:   geom.Size{Width: size.Width - 2*c.Margin, Height: size.Height - 2*c.Margin},
	}))
}
