package gfx

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of a graphics call.
type Kind uint8

const (
	// KindResolution is a failed query for an existing object: device from
	// surface, context from device, back-buffer, descriptor, adapter, surface.
	KindResolution Kind = iota + 1
	// KindCreation is a failed compile or Create* call.
	KindCreation
	// KindAllocation is a failed memory allocation.
	KindAllocation
)

var (
	ErrResolution = errors.New("resolution failed")
	ErrCreation   = errors.New("creation failed")
	ErrAllocation = errors.New("allocation failed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindResolution:
		return ErrResolution
	case KindCreation:
		return ErrCreation
	case KindAllocation:
		return ErrAllocation
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is a classified failure. errors.Is matches both the Kind sentinel and
// the wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to %s. %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("failed to %s. %v", e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func Resolution(op string, err error) error {
	return &Error{Kind: KindResolution, Op: op, Err: err}
}

func Creation(op string, err error) error {
	return &Error{Kind: KindCreation, Op: op, Err: err}
}

func Allocation(op string, err error) error {
	return &Error{Kind: KindAllocation, Op: op, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
