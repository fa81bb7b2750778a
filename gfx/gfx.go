// Package gfx describes the slice of a Direct3D 11 style graphics API that an
// overlay needs to draw into a presentation surface it does not own.
//
// Implementations wrap live COM objects (package d3d) or a CPU reference
// device (internal/soft). Every method mirrors the native call of the same
// name. Objects returned by a Create* call and by GetParent carry a reference
// the receiver drops with Release. Objects returned by the other queries
// (GetDevice, GetBuffer, OMGetRenderTargets, ...) are kept alive by the
// object they were queried from; callers tag them with Borrow and never
// release them.
package gfx

// Releaser is any graphics object holding a reference count.
type Releaser interface {
	Release()
}

// Object is a graphics object with a stable identity.
//
// Ptr returns the address of the native interface pointer. For COM objects
// that address holds the pointer to the object's dispatch table.
type Object interface {
	Releaser
	Ptr() uintptr
}

// SwapChain is the host's presentation surface.
type SwapChain interface {
	Object
	GetDevice() (Device, error)
	GetBuffer(index uint32) (Texture2D, error)
	GetDesc() (SwapChainDesc, error)
	// GetParent resolves the factory that created the swap chain. The
	// result is owned by the caller.
	GetParent() (Object, error)
}

// Device creates resources.
type Device interface {
	Object
	GetImmediateContext() (Context, error)
	// DXGIDevice queries the device's DXGI companion interface.
	DXGIDevice() (DXGIDevice, error)

	CreateTexture2D(desc Texture2DDesc) (Texture2D, error)
	CreateRenderTargetView(resource Texture2D) (RenderTargetView, error)
	CreateDepthStencilView(resource Texture2D) (DepthStencilView, error)
	CreateBuffer(desc BufferDesc, data []byte) (Buffer, error)
	CreateVertexShader(bytecode []byte) (VertexShader, error)
	CreatePixelShader(bytecode []byte) (PixelShader, error)
	CreateInputLayout(elements []InputElementDesc, bytecode []byte) (InputLayout, error)
	CreateRasterizerState(desc RasterizerDesc) (RasterizerState, error)
	CreateDepthStencilState(desc DepthStencilDesc) (DepthStencilState, error)
}

// DXGIDevice is the DXGI view of a Device.
type DXGIDevice interface {
	Object
	GetAdapter() (Object, error)
}

// Context records and issues rendering commands.
//
// A nil view, shader, state or buffer argument unbinds the slot, like a NULL
// pointer does natively.
type Context interface {
	Object
	OMGetRenderTargets() (RenderTargetView, DepthStencilView)
	OMSetRenderTargets(rtv RenderTargetView, dsv DepthStencilView)
	OMSetDepthStencilState(state DepthStencilState, stencilRef uint32)
	ClearRenderTargetView(rtv RenderTargetView, color Color)
	VSSetShader(shader VertexShader)
	PSSetShader(shader PixelShader)
	IASetInputLayout(layout InputLayout)
	IASetPrimitiveTopology(topology Topology)
	IASetVertexBuffer(slot uint32, buffer Buffer, stride, offset uint32)
	IASetIndexBuffer(buffer Buffer, format Format, offset uint32)
	RSSetState(state RasterizerState)
	RSSetViewport(viewport Viewport)
	DrawIndexed(indexCount, startIndex uint32, baseVertex int32)
}

// Texture2D is a two dimensional resource such as a back-buffer.
type Texture2D interface {
	Object
	GetDesc() Texture2DDesc
	// Surface queries the texture's DXGI surface interface.
	Surface() (Object, error)
}

type (
	RenderTargetView  interface{ Object }
	DepthStencilView  interface{ Object }
	Buffer            interface{ Object }
	VertexShader      interface{ Object }
	PixelShader       interface{ Object }
	InputLayout       interface{ Object }
	RasterizerState   interface{ Object }
	DepthStencilState interface{ Object }
)

// Compiler turns shader source into bytecode a Device accepts.
type Compiler interface {
	Compile(source []byte, entryPoint, target string) ([]byte, error)
}

// WindowSizer reports the client area of an output window in pixels.
type WindowSizer interface {
	ClientSize(window uintptr) (width, height int, err error)
}
