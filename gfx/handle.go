package gfx

// Ownership tells whether releasing a Handle drops a reference.
type Ownership uint8

const (
	// Borrowed objects belong to the host or the platform. Their lifetime is
	// not ours to end.
	Borrowed Ownership = iota + 1
	// Owned objects were created by us and must be released exactly once.
	Owned
)

func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	}
	return "empty"
}

// Handle wraps a graphics object together with its ownership. The zero
// Handle is empty.
type Handle[T Releaser] struct {
	obj T
	own Ownership
}

// Borrow tags obj as host owned. A nil obj yields an empty handle.
func Borrow[T Releaser](obj T) Handle[T] {
	if any(obj) == nil {
		return Handle[T]{}
	}
	return Handle[T]{obj: obj, own: Borrowed}
}

// Own tags obj as ours. A nil obj yields an empty handle.
func Own[T Releaser](obj T) Handle[T] {
	if any(obj) == nil {
		return Handle[T]{}
	}
	return Handle[T]{obj: obj, own: Owned}
}

// Get returns the wrapped object, or the zero T for an empty handle.
func (h Handle[T]) Get() T { return h.obj }

func (h Handle[T]) Valid() bool { return h.own != 0 }

func (h Handle[T]) Ownership() Ownership { return h.own }

// Release drops the reference if the handle is owned and empties the handle
// either way. Releasing an empty handle does nothing.
func (h *Handle[T]) Release() {
	if h.own == Owned {
		h.obj.Release()
	}
	*h = Handle[T]{}
}
