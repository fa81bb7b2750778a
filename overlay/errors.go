package overlay

import "errors"

var (
	// ErrFailed is returned while the lifecycle sits in the Failed state.
	// Call Acknowledge to leave it.
	ErrFailed = errors.New("overlay: lifecycle failed, acknowledge before retrying")
	// ErrNotSetup is returned when drawing is requested before Setup.
	ErrNotSetup = errors.New("overlay: not set up")
	// ErrStale is returned when drawing is requested without a bound surface.
	ErrStale = errors.New("overlay: no bound surface")

	errNilSurface = errors.New("nil surface")
)
