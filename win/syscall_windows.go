package win

//go:generate mkwinsyscall -output zsyscall_windows.go syscall_windows.go

const (
	DpiAwarenessContextUndefined         = 0
	DpiAwarenessContextUnaware           = -1
	DpiAwarenessContextSystemAware       = -2
	DpiAwarenessContextPerMonitorAware   = -3
	DpiAwarenessContextPerMonitorAwareV2 = -4
	DpiAwarenessContextUnawareGdiScaled  = -5
)

//sys	SetThreadDpiAwarenessContext(value int32) (n int, err error) = User32.SetThreadDpiAwarenessContext
//sys	IsValidDpiAwarenessContext(value int32) (n bool) = User32.IsValidDpiAwarenessContext

// EnablePerMonitorDPI makes window sizes on the calling thread physical
// pixels, which is what a swap chain is sized in.
func EnablePerMonitorDPI() error {
	if !IsValidDpiAwarenessContext(DpiAwarenessContextPerMonitorAwareV2) {
		_, err := SetThreadDpiAwarenessContext(DpiAwarenessContextPerMonitorAware)
		return err
	}
	_, err := SetThreadDpiAwarenessContext(DpiAwarenessContextPerMonitorAwareV2)
	return err
}
