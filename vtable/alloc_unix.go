//go:build unix

package vtable

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func allocateSlots(n int) ([]uintptr, func() error, error) {
	mem, err := unix.Mmap(-1, 0, n*int(slotSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mmap. %w", err)
	}
	slots := unsafe.Slice((*uintptr)(unsafe.Pointer(&mem[0])), n)
	free := func() error {
		return unix.Munmap(mem)
	}
	return slots, free, nil
}
