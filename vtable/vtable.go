// Package vtable copies dispatch tables out of live COM objects.
//
// A Table is a single block of OS allocated, read-write memory laid out as
//
//	SwapChainOffset  SwapChainMethods slots of the swap chain
//	DeviceOffset     DeviceMethods slots of the device
//	ContextOffset    ContextMethods slots of the immediate context
//
// each slot one machine word wide. The block is meant to be handed to a
// hook installer as a base address, so it lives outside the Go heap.
package vtable

import (
	"unsafe"

	"github.com/kirides/d3doverlay/gfx"
)

// Number of dispatch slots copied per object.
const (
	SwapChainMethods = 18
	DeviceMethods    = 43
	ContextMethods   = 144
	TotalMethods     = SwapChainMethods + DeviceMethods + ContextMethods
)

// Slot offsets of each object's range inside a Table.
const (
	SwapChainOffset = 0
	DeviceOffset    = SwapChainOffset + SwapChainMethods
	ContextOffset   = DeviceOffset + DeviceMethods
)

// Well known slots, relative to the start of their object's range.
const (
	SwapChainPresent       = 8
	SwapChainResizeBuffers = 13
	DeviceCreateBuffer     = 3
	ContextDrawIndexed     = 12
	ContextOMSetTargets    = 33
)

const slotSize = unsafe.Sizeof(uintptr(0))

// allocate is swapped out by tests.
var allocate = allocateSlots

// Table is a snapshot of dispatch addresses. It must be freed with Free.
type Table struct {
	slots []uintptr
	free  func() error
}

// Snapshot copies the dispatch slots of swapChain, device and context into
// a newly allocated Table. The source objects are only read. If the block
// cannot be allocated a gfx.ErrAllocation error is returned and no Table.
func Snapshot(swapChain, device, context gfx.Object) (*Table, error) {
	slots, free, err := allocate(TotalMethods)
	if err != nil {
		return nil, gfx.Allocation("allocate dispatch table", err)
	}
	copy(slots[SwapChainOffset:DeviceOffset], dispatch(swapChain, SwapChainMethods))
	copy(slots[DeviceOffset:ContextOffset], dispatch(device, DeviceMethods))
	copy(slots[ContextOffset:], dispatch(context, ContextMethods))
	return &Table{slots: slots, free: free}, nil
}

// Factory returns the dispatch table address of the factory that created
// sc. Nothing is copied. The factory reference taken for the lookup is
// released before returning.
func Factory(sc gfx.SwapChain) (uintptr, error) {
	parent, err := sc.GetParent()
	if err != nil {
		return 0, gfx.Resolution("get factory of swap chain", err)
	}
	defer parent.Release()
	return Base(parent), nil
}

// Base returns the address of obj's dispatch table, the first word of the
// object.
func Base(obj gfx.Object) uintptr {
	return *(*uintptr)(unsafe.Pointer(obj.Ptr()))
}

func dispatch(obj gfx.Object, n int) []uintptr {
	return unsafe.Slice((*uintptr)(unsafe.Pointer(Base(obj))), n)
}

// Base is the address of the first slot.
func (t *Table) Base() uintptr {
	if t == nil || len(t.slots) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&t.slots[0]))
}

// Len is the number of slots, TotalMethods for a live table.
func (t *Table) Len() int { return len(t.slots) }

// Size is the size of the block in bytes.
func (t *Table) Size() uintptr { return uintptr(len(t.slots)) * slotSize }

func (t *Table) Slots() []uintptr { return t.slots }

func (t *Table) SwapChain() []uintptr { return t.slots[SwapChainOffset:DeviceOffset] }

func (t *Table) Device() []uintptr { return t.slots[DeviceOffset:ContextOffset] }

func (t *Table) Context() []uintptr { return t.slots[ContextOffset:] }

// Free returns the block to the OS. The table must not be used afterwards.
func (t *Table) Free() error {
	if t == nil || t.free == nil {
		return nil
	}
	err := t.free()
	t.slots, t.free = nil, nil
	return err
}
