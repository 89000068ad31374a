package surface

import (
	"errors"
	"fmt"
	"image"

	"github.com/1broseidon/mzgui/internal/geom"
)

// ErrNoBacking is returned when a non-empty allocation is requested without a
// native handle to allocate from.
var ErrNoBacking = errors.New("surface has no native backing")

// Store is a native, pixel-addressable backing allocation. Pixels are laid
// out row-major, Stride bytes per row, four bytes per pixel in B, G, R, A
// order.
type Store interface {
	Size() geom.Size
	Pix() []byte
	Stride() int
	Release() error
}

// Backing is the part of a native window handle a Surface depends on.
type Backing interface {
	Size() geom.Size
	Allocate(size geom.Size) (Store, error)
	Present(store Store) error
}

// Surface owns the pixel buffer of one window. There is at most one live
// Store at a time; every change of Store bumps the generation so that
// slices produced earlier stop touching memory.
type Surface struct {
	store Store
	size  geom.Size
	gen   uint64
}

// New returns an empty surface. Call UpdateSize to allocate.
func New() *Surface {
	return &Surface{}
}

// Size returns the current buffer size. It is Zero after a failed
// reallocation.
func (s *Surface) Size() geom.Size { return s.size }

// Allocated reports whether a Store is currently held.
func (s *Surface) Allocated() bool { return s.store != nil }

// UpdateSize reconciles the buffer with the live size of b. A nil backing
// means the window is not open and is treated as size Zero.
func (s *Surface) UpdateSize(b Backing) error {
	newSize := geom.Zero
	if b != nil {
		newSize = b.Size()
	}
	if newSize == s.size {
		return nil
	}
	return s.Reallocate(b, newSize)
}

// Reallocate replaces the buffer with one of the given size. On failure the
// old buffer is still released and the surface falls back to size Zero, so
// drawing becomes a no-op until the next successful reallocation.
func (s *Surface) Reallocate(b Backing, size geom.Size) error {
	if size.IsZero() {
		err := s.Deallocate()
		s.size = size
		return err
	}
	if b == nil {
		return errors.Join(fmt.Errorf("reallocate to %s: %w", size, ErrNoBacking), s.Deallocate())
	}

	next, err := b.Allocate(size)
	if err != nil {
		return errors.Join(fmt.Errorf("reallocate to %s: %w", size, err), s.Deallocate())
	}

	releaseErr := s.Deallocate()
	s.store = next
	s.size = size
	if releaseErr != nil {
		return fmt.Errorf("release previous buffer: %w", releaseErr)
	}
	return nil
}

// Deallocate releases the Store. It is safe to call repeatedly.
func (s *Surface) Deallocate() error {
	s.gen++
	s.size = geom.Zero
	if s.store == nil {
		return nil
	}
	st := s.store
	s.store = nil
	return st.Release()
}

// Commit presents the current buffer through b. With no buffer it does
// nothing.
func (s *Surface) Commit(b Backing) error {
	if s.store == nil || b == nil {
		return nil
	}
	return b.Present(s.store)
}

// Slice returns a view over the whole buffer. The view is only valid until
// the next reallocation; after that it reads zero and ignores writes.
func (s *Surface) Slice() Slice {
	return Slice{
		surface:  s,
		gen:      s.gen,
		domain:   geom.RectOf(s.size),
		rootSize: s.size,
	}
}

// Snapshot copies the buffer into a new image.
func (s *Surface) Snapshot() *image.NRGBA {
	if s.store == nil {
		return image.NewNRGBA(image.Rect(0, 0, int(s.size.Width), int(s.size.Height)))
	}
	return StoreImage(s.store)
}

// StoreImage copies the pixels of st into a new image.
func StoreImage(st Store) *image.NRGBA {
	size := st.Size()
	img := image.NewNRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	pix, stride := st.Pix(), st.Stride()
	for y := 0; y < int(size.Height); y++ {
		for x := 0; x < int(size.Width); x++ {
			p := load(pix[y*stride+x*BytesPerPixel:])
			img.SetNRGBA(x, y, p.NRGBA())
		}
	}
	return img
}

func (s *Surface) memory(gen uint64) ([]byte, int, bool) {
	if s == nil || s.store == nil || s.gen != gen {
		return nil, 0, false
	}
	return s.store.Pix(), s.store.Stride(), true
}
