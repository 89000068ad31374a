package x11

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgbutil/xgraphics"

	"github.com/1broseidon/mzgui/internal/geom"
)

// ErrImageReleased is returned when a released image is presented or
// released again.
var ErrImageReleased = errors.New("x11 image already released")

// Image is a client-side pixel buffer bound to a server pixmap. Its pixels
// are stored in B, G, R, A order, four bytes each.
type Image struct {
	img      *xgraphics.Image
	size     geom.Size
	released bool
}

// NewImage allocates a buffer of the given size and a pixmap for it on the
// window's screen.
func (w *Window) NewImage(size geom.Size) (*Image, error) {
	if size.IsZero() {
		return nil, fmt.Errorf("cannot allocate empty image")
	}
	img := xgraphics.New(w.conn.XUtil, image.Rect(0, 0, int(size.Width), int(size.Height)))
	if err := img.XSurfaceSet(w.win.Id); err != nil {
		return nil, fmt.Errorf("failed to create pixmap: %w", err)
	}
	return &Image{img: img, size: size}, nil
}

func (i *Image) Size() geom.Size { return i.size }
func (i *Image) Pix() []byte     { return i.img.Pix }
func (i *Image) Stride() int     { return i.img.Stride }

// Release frees the server pixmap.
func (i *Image) Release() error {
	if i.released {
		return ErrImageReleased
	}
	i.released = true
	i.img.Destroy()
	return nil
}

// Present uploads img to its pixmap and copies it onto the window.
func (w *Window) Present(img *Image) error {
	if img.released {
		return ErrImageReleased
	}
	img.img.XDraw()
	img.img.XPaint(w.win.Id)
	return nil
}
