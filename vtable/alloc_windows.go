package vtable

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

func allocateSlots(n int) ([]uintptr, func() error, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n)*slotSize, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to VirtualAlloc. %w", err)
	}
	if addr == 0 {
		return nil, nil, fmt.Errorf("failed to VirtualAlloc. null address")
	}
	slots := unsafe.Slice((*uintptr)(unsafe.Pointer(addr)), n)
	free := func() error {
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}
	return slots, free, nil
}
