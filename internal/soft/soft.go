// Package soft is a CPU reference implementation of the gfx interfaces.
//
// Render targets are gg canvases. DrawIndexed rasterizes triangle lists
// with the colour of each triangle's first vertex, which is all the overlay
// pixel shader does. Objects are laid out like COM objects so dispatch
// tables can be read from them.
package soft

import (
	"fmt"
	"sync"
	"unsafe"
)

// SlotCount is the size of every object's dispatch table.
const SlotCount = 256

type comHeader struct {
	vtbl *uintptr
}

// tracker counts live objects of one device family.
type tracker struct {
	mu   sync.Mutex
	live map[string]int
	next uintptr
}

func newTracker() *tracker {
	return &tracker{live: map[string]int{}}
}

func (t *tracker) object(kind string) *object {
	t.mu.Lock()
	t.next++
	id := t.next
	t.live[kind]++
	t.mu.Unlock()

	slots := make([]uintptr, SlotCount)
	base := 0x7f0000000000 | id<<16
	for i := range slots {
		slots[i] = base + uintptr(i)*unsafe.Sizeof(uintptr(0))
	}
	return &object{
		kind:   kind,
		refs:   1,
		slots:  slots,
		header: &comHeader{vtbl: &slots[0]},
		t:      t,
	}
}

func (t *tracker) count(kind string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if kind == "" {
		n := 0
		for _, v := range t.live {
			n += v
		}
		return n
	}
	return t.live[kind]
}

type object struct {
	kind   string
	refs   int
	slots  []uintptr
	header *comHeader
	t      *tracker
}

func (o *object) Ptr() uintptr { return uintptr(unsafe.Pointer(o.header)) }

func (o *object) addRef() *object {
	o.t.mu.Lock()
	o.refs++
	o.t.mu.Unlock()
	return o
}

func (o *object) Release() {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	if o.refs == 0 {
		return
	}
	o.refs--
	if o.refs == 0 {
		o.t.live[o.kind]--
	}
}

func (o *object) String() string { return fmt.Sprintf("%s@%#x", o.kind, o.Ptr()) }

// Compiler accepts any source. The soft device ignores shader bytecode.
type Compiler struct{}

func (Compiler) Compile(source []byte, entryPoint, target string) ([]byte, error) {
	if entryPoint == "" || target == "" {
		return nil, fmt.Errorf("failed to compile shader. missing entry point or target")
	}
	return append([]byte(entryPoint+"/"+target+"\n"), source...), nil
}
