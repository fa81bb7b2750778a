// Package gfxtest provides recording fakes of the gfx interfaces.
//
// Every fake object looks like a COM object in memory: Ptr returns the
// address of a word holding a pointer to a slot table, so dispatch tables can
// be read from fakes the same way they are read from live objects.
package gfxtest

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/kirides/d3doverlay/gfx"
)

// SlotCount is the size of every fake dispatch table.
const SlotCount = 256

// ErrInjected is returned by an operation registered with Fail and a nil error.
var ErrInjected = errors.New("injected failure")

// Recorder collects the calls made against one fake device family.
type Recorder struct {
	Calls []string

	created  map[string]int
	released map[string]int
	failures map[string]error
	nextID   int
}

func NewRecorder() *Recorder {
	return &Recorder{
		created:  map[string]int{},
		released: map[string]int{},
		failures: map[string]error{},
	}
}

// Fail makes every later call of op return err until Clear is called.
func (r *Recorder) Fail(op string, err error) {
	if err == nil {
		err = ErrInjected
	}
	r.failures[op] = err
}

func (r *Recorder) Clear(op string) { delete(r.failures, op) }

func (r *Recorder) Created(kind string) int  { return r.created[kind] }
func (r *Recorder) Released(kind string) int { return r.released[kind] }

// Live is the number of objects of kind created and not yet released.
func (r *Recorder) Live(kind string) int { return r.created[kind] - r.released[kind] }

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls but keeps object counters.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) fail(op string) error {
	if err, ok := r.failures[op]; ok {
		r.record("%s failed", op)
		return err
	}
	return nil
}

type comHeader struct {
	vtbl *uintptr
}

// Object is the common part of every fake.
type Object struct {
	Kind  string
	ID    int
	Slots []uintptr

	header *comHeader
	rec    *Recorder
}

func (r *Recorder) newObject(kind string) *Object {
	r.nextID++
	slots := make([]uintptr, SlotCount)
	base := uintptr(r.nextID) << 20
	for i := range slots {
		slots[i] = base + uintptr(i)*unsafe.Sizeof(uintptr(0))
	}
	r.created[kind]++
	return &Object{
		Kind:   kind,
		ID:     r.nextID,
		Slots:  slots,
		header: &comHeader{vtbl: &slots[0]},
		rec:    r,
	}
}

// NewObject creates a standalone fake of the given kind.
func (r *Recorder) NewObject(kind string) *Object { return r.newObject(kind) }

func (o *Object) Ptr() uintptr { return uintptr(unsafe.Pointer(o.header)) }

func (o *Object) Release() {
	o.rec.released[o.Kind]++
	o.rec.record("Release %s", o)
}

func (o *Object) String() string { return fmt.Sprintf("%s#%d", o.Kind, o.ID) }

func name(o gfx.Object) string {
	if o == nil {
		return "nil"
	}
	if s, ok := o.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%#x", o.Ptr())
}
