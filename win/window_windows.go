package win

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	lxn "github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const className = "D3DOverlayWindow"

var (
	registerOnce sync.Once
	registerErr  error
	wndProcPtr   = windows.NewCallback(wndProc)
)

func wndProc(hwnd lxn.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case lxn.WM_DESTROY:
		lxn.PostQuitMessage(0)
		return 0
	}
	return lxn.DefWindowProc(hwnd, msg, wParam, lParam)
}

func registerClass() error {
	registerOnce.Do(func() {
		name, err := syscall.UTF16PtrFromString(className)
		if err != nil {
			registerErr = err
			return
		}
		wc := lxn.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(lxn.WNDCLASSEX{})),
			Style:         lxn.CS_HREDRAW | lxn.CS_VREDRAW,
			LpfnWndProc:   wndProcPtr,
			HInstance:     lxn.GetModuleHandle(nil),
			HCursor:       lxn.LoadCursor(0, lxn.MAKEINTRESOURCE(lxn.IDC_ARROW)),
			LpszClassName: name,
		}
		if lxn.RegisterClassEx(&wc) == 0 {
			registerErr = fmt.Errorf("failed to RegisterClassEx. %w", windows.GetLastError())
		}
	})
	return registerErr
}

// Window is a plain top-level window to present into.
type Window struct {
	hwnd lxn.HWND
}

// CreateWindow creates and shows a window whose client area is width x
// height pixels.
func CreateWindow(title string, width, height int) (*Window, error) {
	if err := registerClass(); err != nil {
		return nil, err
	}
	cls, _ := syscall.UTF16PtrFromString(className)
	name, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}

	rect := lxn.RECT{Right: int32(width), Bottom: int32(height)}
	lxn.AdjustWindowRect(&rect, lxn.WS_OVERLAPPEDWINDOW, false)

	hwnd := lxn.CreateWindowEx(
		0,
		cls,
		name,
		lxn.WS_OVERLAPPEDWINDOW,
		lxn.CW_USEDEFAULT, lxn.CW_USEDEFAULT,
		rect.Right-rect.Left, rect.Bottom-rect.Top,
		0, 0, lxn.GetModuleHandle(nil), nil,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("failed to CreateWindowEx. %w", windows.GetLastError())
	}
	lxn.ShowWindow(hwnd, lxn.SW_SHOW)
	lxn.UpdateWindow(hwnd)
	return &Window{hwnd: hwnd}, nil
}

// Handle is the window's HWND.
func (w *Window) Handle() uintptr { return uintptr(w.hwnd) }

// ClientSize returns the size of the window's client area.
func (w *Window) ClientSize() (int, int, error) {
	return ClientSize(uintptr(w.hwnd))
}

// ErrQuit is returned by PumpMessages once the window was closed.
var ErrQuit = errors.New("window closed")

// PumpMessages dispatches all pending messages without blocking.
func (w *Window) PumpMessages() error {
	var msg lxn.MSG
	for lxn.PeekMessage(&msg, 0, 0, 0, lxn.PM_REMOVE) {
		if msg.Message == lxn.WM_QUIT {
			return ErrQuit
		}
		lxn.TranslateMessage(&msg)
		lxn.DispatchMessage(&msg)
	}
	return nil
}

func (w *Window) Destroy() {
	if w.hwnd != 0 {
		lxn.DestroyWindow(w.hwnd)
		w.hwnd = 0
	}
}
