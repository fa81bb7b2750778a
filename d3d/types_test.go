package d3d

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"

	"github.com/kirides/d3doverlay/gfx"
)

func TestStructSizes(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layouts checked for 64-bit only")
	}
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"DXGI_SWAP_CHAIN_DESC", unsafe.Sizeof(_DXGI_SWAP_CHAIN_DESC{}), 72},
		{"D3D11_TEXTURE2D_DESC", unsafe.Sizeof(_D3D11_TEXTURE2D_DESC{}), 44},
		{"D3D11_BUFFER_DESC", unsafe.Sizeof(_D3D11_BUFFER_DESC{}), 24},
		{"D3D11_SUBRESOURCE_DATA", unsafe.Sizeof(_D3D11_SUBRESOURCE_DATA{}), 16},
		{"D3D11_INPUT_ELEMENT_DESC", unsafe.Sizeof(_D3D11_INPUT_ELEMENT_DESC{}), 32},
		{"D3D11_RASTERIZER_DESC", unsafe.Sizeof(_D3D11_RASTERIZER_DESC{}), 40},
		{"D3D11_DEPTH_STENCIL_DESC", unsafe.Sizeof(_D3D11_DEPTH_STENCIL_DESC{}), 52},
		{"D3D11_VIEWPORT", unsafe.Sizeof(_D3D11_VIEWPORT{}), 24},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("sizeof(%s) = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if off := unsafe.Offsetof(_DXGI_SWAP_CHAIN_DESC{}.OutputWindow); off != 48 {
		t.Errorf("OutputWindow at offset %d, want 48", off)
	}
}

func TestInputElements(t *testing.T) {
	elems, names := inputElements([]gfx.InputElementDesc{
		{SemanticName: "POSITION", Format: gfx.FormatR32G32B32Float},
		{SemanticName: "COLOR", Format: gfx.FormatR32G32B32A32Float, AlignedByteOffset: 12},
	})
	if len(elems) != 2 || len(names) != 2 {
		t.Fatalf("got %d elements", len(elems))
	}
	for i, want := range []string{"POSITION", "COLOR"} {
		name := unsafe.Slice(elems[i].SemanticName, len(want)+1)
		if string(name[:len(want)]) != want || name[len(want)] != 0 {
			t.Errorf("element %d name = %q", i, name)
		}
	}
	if elems[1].AlignedByteOffset != 12 || elems[1].Format != uint32(gfx.FormatR32G32B32A32Float) {
		t.Errorf("element 1 = %+v", elems[1])
	}
}

func TestDescConversion(t *testing.T) {
	r := rasterizerDesc(gfx.RasterizerDesc{FillMode: gfx.FillSolid, CullMode: gfx.CullNone, DepthClipEnable: true})
	if r.FillMode != 3 || r.CullMode != 1 || r.DepthClipEnable != 1 || r.ScissorEnable != 0 {
		t.Errorf("rasterizer desc = %+v", r)
	}

	ds := depthStencilDesc(gfx.DepthStencilDesc{DepthFunc: gfx.ComparisonAlways})
	if ds.DepthEnable != 0 || ds.StencilEnable != 0 || ds.DepthFunc != 8 {
		t.Errorf("depth stencil desc = %+v", ds)
	}
	if ds.StencilReadMask != 0xff || ds.FrontFace.StencilPassOp != D3D11_STENCIL_OP_KEEP {
		t.Errorf("stencil defaults not applied: %+v", ds)
	}

	tex := textureDesc(gfx.Texture2DDesc{Width: 4, Height: 2, Format: gfx.FormatD24UNormS8UInt, BindFlags: gfx.BindDepthStencil})
	if tex.SampleDesc.Count != 1 {
		t.Errorf("sample count = %d, want 1", tex.SampleDesc.Count)
	}
	if back := tex.gfx(); back.Width != 4 || back.Format != gfx.FormatD24UNormS8UInt || back.BindFlags != gfx.BindDepthStencil {
		t.Errorf("round trip = %+v", back)
	}

	sc := swapChainDesc(&_DXGI_SWAP_CHAIN_DESC{
		BufferDesc:   _DXGI_MODE_DESC{Width: 1920, Height: 1080, Format: 28},
		BufferCount:  1,
		OutputWindow: 0x1234,
		Windowed:     1,
	})
	if sc.Resolution() != [2]uint32{1920, 1080} || sc.OutputWindow != 0x1234 || !sc.Windowed || sc.Format != gfx.FormatR8G8B8A8UNorm {
		t.Errorf("swap chain desc = %+v", sc)
	}
}

func TestDXGIError(t *testing.T) {
	tests := []struct {
		err  _DXGI_ERROR
		want string
	}{
		{DXGI_ERROR_DEVICE_REMOVED, "DXGI_ERROR_DEVICE_REMOVED"},
		{ERROR_INVALID_ARG, "ERROR_INVALID_ARG"},
		{0x80001234, "0x80001234"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	hr := int32(-2005270523) // 0x887A0005
	if !failed(hr) || failed(0) || failed(1) {
		t.Error("failed() misclassifies HRESULTs")
	}
	if _DXGI_ERROR(hr) != DXGI_ERROR_DEVICE_REMOVED {
		t.Errorf("_DXGI_ERROR(%d) = %v", hr, _DXGI_ERROR(hr))
	}

	wrapped := fmt.Errorf("failed to Present. %w", DXGI_ERROR_DEVICE_REMOVED)
	if !IsDeviceLost(wrapped) {
		t.Error("IsDeviceLost() = false for a removed device")
	}
	if IsDeviceLost(fmt.Errorf("failed to X. %w", ERROR_INVALID_ARG)) || IsDeviceLost(errors.New("x")) {
		t.Error("IsDeviceLost() = true for an unrelated error")
	}
}
