//go:build !unix && !windows

package vtable

import (
	"errors"
	"runtime"
)

func allocateSlots(n int) ([]uintptr, func() error, error) {
	return nil, nil, errors.New("no page allocator on " + runtime.GOOS)
}
