package d3d

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modD3D11 = windows.NewLazySystemDLL("d3d11.dll")

	procD3D11CreateDeviceAndSwapChain = modD3D11.NewProc("D3D11CreateDeviceAndSwapChain")
)

// CreateDeviceAndSwapChain creates a hardware device and a single buffered
// windowed swap chain presenting to hwnd.
//
// The returned swap chain holds the only reference to the device; releasing
// it releases the device family.
func CreateDeviceAndSwapChain(hwnd uintptr, width, height uint32) (*SwapChain, error) {
	featureLevels := []uint32{D3D_FEATURE_LEVEL_10_1, D3D_FEATURE_LEVEL_11_0}
	desc := _DXGI_SWAP_CHAIN_DESC{
		BufferDesc: _DXGI_MODE_DESC{
			Width:    width,
			Height:   height,
			Rational: _DXGI_RATIONAL{Numerator: 60, Denominator: 1},
			Format:   28, // DXGI_FORMAT_R8G8B8A8_UNORM
		},
		SampleDesc:   _DXGI_SAMPLE_DESC{Count: 1},
		BufferUsage:  DXGI_USAGE_RENDER_TARGET_OUTPUT,
		BufferCount:  1,
		OutputWindow: hwnd,
		Windowed:     1,
		SwapEffect:   DXGI_SWAP_EFFECT_DISCARD,
		Flags:        DXGI_SWAP_CHAIN_FLAG_ALLOW_MODE_SWITCH,
	}

	if err := procD3D11CreateDeviceAndSwapChain.Find(); err != nil {
		return nil, fmt.Errorf("failed to load D3D11CreateDeviceAndSwapChain. %w", err)
	}

	var (
		swapChain    *IDXGISwapChain
		device       *ID3D11Device
		deviceCtx    *ID3D11DeviceContext
		featureLevel uint32
	)
	ret, _, _ := procD3D11CreateDeviceAndSwapChain.Call(
		0, // adapter
		D3D_DRIVER_TYPE_HARDWARE,
		0, // software
		0, // flags
		uintptr(unsafe.Pointer(&featureLevels[0])),
		uintptr(len(featureLevels)),
		D3D11_SDK_VERSION,
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&swapChain)),
		uintptr(unsafe.Pointer(&device)),
		uintptr(unsafe.Pointer(&featureLevel)),
		uintptr(unsafe.Pointer(&deviceCtx)),
	)
	if failed(int32(ret)) {
		return nil, fmt.Errorf("failed to D3D11CreateDeviceAndSwapChain. %w", _DXGI_ERROR(ret))
	}
	// The swap chain keeps the device alive, the device its immediate
	// context.
	deviceCtx.Release()
	device.Release()

	return &SwapChain{obj: swapChain, featureLevel: featureLevel}, nil
}
