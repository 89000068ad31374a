package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed backend or a
	// destroyed window.
	ErrClosed = errors.New("platform closed")
	// ErrNotInitialized is returned when a window is created before Init.
	ErrNotInitialized = errors.New("platform not initialized")
)

// Kind classifies backend failures.
type Kind int

const (
	// KindFatal failures leave the backend or window unusable.
	KindFatal Kind = iota
	// KindTransient failures may succeed if retried later.
	KindTransient
)

func (k Kind) String() string {
	if k == KindTransient {
		return "transient"
	}
	return "fatal"
}

// Error is a failed backend operation.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform: %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient wraps err as a retryable failure of op.
func Transient(op string, err error) error {
	return &Error{Op: op, Kind: KindTransient, Err: err}
}

// Fatal wraps err as a non-retryable failure of op.
func Fatal(op string, err error) error {
	return &Error{Op: op, Kind: KindFatal, Err: err}
}

// IsTransient reports whether err is, or wraps, a transient Error.
func IsTransient(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindTransient
}

// IsFatal reports whether err is, or wraps, a fatal Error.
func IsFatal(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindFatal
}
