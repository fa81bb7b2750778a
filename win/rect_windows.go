package win

import (
	"fmt"

	lxn "github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// ClientSize returns the client area of window in pixels.
func ClientSize(window uintptr) (width, height int, err error) {
	var rect lxn.RECT
	if !lxn.GetClientRect(lxn.HWND(window), &rect) {
		return 0, 0, fmt.Errorf("failed to GetClientRect. %w", windows.GetLastError())
	}
	return int(rect.Right - rect.Left), int(rect.Bottom - rect.Top), nil
}

// Sizer answers window rectangle queries with GetClientRect.
type Sizer struct{}

func (Sizer) ClientSize(window uintptr) (int, int, error) {
	return ClientSize(window)
}
