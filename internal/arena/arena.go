// Package arena implements a recycle list: a slice of slots where removed
// entries are threaded onto a free list and reused by later inserts.
//
// Every slot carries a generation that changes whenever the slot is
// vacated, so an ID handed out for an earlier occupant never resolves to a
// later one.
package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrVacant is returned when an ID does not name a live entry.
	ErrVacant = errors.New("arena slot is vacant")
	// ErrOutOfRange is returned for IDs past the end of the list.
	ErrOutOfRange = errors.New("arena index out of range")
)

// ID names a slot and the generation of its occupant.
type ID struct {
	Index      uint32
	Generation uint32
}

// Pack encodes id as a single integer for use as opaque user data.
func (id ID) Pack() uint64 {
	return uint64(id.Generation)<<32 | uint64(id.Index)
}

// Unpack reverses Pack.
func Unpack(v uint64) ID {
	return ID{Index: uint32(v), Generation: uint32(v >> 32)}
}

func (id ID) String() string {
	return fmt.Sprintf("%d@%d", id.Index, id.Generation)
}

type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
	nextFree int
}

// List is a recycle list. The zero value is ready to use. List is not
// safe for concurrent use.
type List[T any] struct {
	slots    []slot[T]
	nextFree int
	count    int
}

// Len returns the number of occupied slots.
func (l *List[T]) Len() int { return l.count }

// Cap returns the number of slots, occupied or not.
func (l *List[T]) Cap() int { return len(l.slots) }

// Insert stores v in the most recently vacated slot, or a new one.
func (l *List[T]) Insert(v T) ID {
	if l.nextFree == len(l.slots) {
		l.slots = append(l.slots, slot[T]{value: v, occupied: true})
		l.nextFree++
		l.count++
		return ID{Index: uint32(len(l.slots) - 1)}
	}

	idx := l.nextFree
	s := &l.slots[idx]
	l.nextFree = s.nextFree
	s.value = v
	s.occupied = true
	l.count++
	return ID{Index: uint32(idx), Generation: s.gen}
}

func (l *List[T]) lookup(id ID) (*slot[T], error) {
	if int(id.Index) >= len(l.slots) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, id)
	}
	s := &l.slots[id.Index]
	if !s.occupied || s.gen != id.Generation {
		return nil, fmt.Errorf("%w: %s", ErrVacant, id)
	}
	return s, nil
}

// Get returns the value stored under id.
func (l *List[T]) Get(id ID) (T, error) {
	s, err := l.lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

// Set replaces the value stored under a live id.
func (l *List[T]) Set(id ID, v T) error {
	s, err := l.lookup(id)
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

// Contains reports whether id names a live entry.
func (l *List[T]) Contains(id ID) bool {
	_, err := l.lookup(id)
	return err == nil
}

// Remove vacates the slot named by id and returns its value.
func (l *List[T]) Remove(id ID) (T, error) {
	s, err := l.lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	v := s.value
	var zero T
	s.value = zero
	s.occupied = false
	s.gen++
	s.nextFree = l.nextFree
	l.nextFree = int(id.Index)
	l.count--
	return v, nil
}

// Each calls fn for every live entry in index order.
func (l *List[T]) Each(fn func(ID, T)) {
	for i := range l.slots {
		s := &l.slots[i]
		if s.occupied {
			fn(ID{Index: uint32(i), Generation: s.gen}, s.value)
		}
	}
}
