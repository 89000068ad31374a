package surface

import (
	"errors"

	"github.com/1broseidon/mzgui/internal/geom"
)

// ErrReleased is returned when a MemStore is released twice.
var ErrReleased = errors.New("store already released")

// MemStore is a Store backed by ordinary Go memory.
type MemStore struct {
	size     geom.Size
	pix      []byte
	released bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore allocates a zeroed buffer of the given size.
func NewMemStore(size geom.Size) *MemStore {
	return &MemStore{
		size: size,
		pix:  make([]byte, int(size.Area())*BytesPerPixel),
	}
}

func (m *MemStore) Size() geom.Size { return m.size }
func (m *MemStore) Pix() []byte     { return m.pix }
func (m *MemStore) Stride() int     { return int(m.size.Width) * BytesPerPixel }

// Released reports whether Release has been called.
func (m *MemStore) Released() bool { return m.released }

func (m *MemStore) Release() error {
	if m.released {
		return ErrReleased
	}
	m.released = true
	return nil
}
