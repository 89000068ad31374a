//go:build !linux

package platform

import (
	"errors"
	"runtime"
)

// NewNative opens the native backend for this platform.
func NewNative(display string) (Backend, error) {
	return nil, Fatal("connect", errors.New("no native backend for "+runtime.GOOS))
}
