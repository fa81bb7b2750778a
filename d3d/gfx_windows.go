package d3d

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/kirides/d3doverlay/gfx"
)

// The types in this file adapt the raw COM interfaces to package gfx.
//
// Queries for objects that their parent keeps alive (device, context,
// back-buffer, bound views, adapter, DXGI companions) drop the reference
// the native call added, so the results are plain borrowed pointers.
// Created objects and GetParent results keep theirs.

// SwapChain wraps an IDXGISwapChain.
type SwapChain struct {
	obj          *IDXGISwapChain
	featureLevel uint32
}

var _ gfx.SwapChain = (*SwapChain)(nil)

// WrapSwapChain wraps a raw IDXGISwapChain pointer, such as the first
// argument of an intercepted Present call. No reference is taken.
func WrapSwapChain(ptr uintptr) *SwapChain {
	if ptr == 0 {
		return nil
	}
	return &SwapChain{obj: (*IDXGISwapChain)(unsafe.Pointer(ptr))}
}

func (s *SwapChain) Ptr() uintptr { return uintptr(unsafe.Pointer(s.obj)) }

func (s *SwapChain) Release() {
	if s.obj != nil {
		s.obj.Release()
		s.obj = nil
	}
}

// FeatureLevel is the feature level the device was created with, or 0 for
// a wrapped swap chain.
func (s *SwapChain) FeatureLevel() uint32 { return s.featureLevel }

// Present presents the back-buffer.
func (s *SwapChain) Present(syncInterval uint32) error {
	hr := s.obj.Present(syncInterval, 0)
	if failed(hr) {
		return fmt.Errorf("failed to Present. %w", _DXGI_ERROR(hr))
	}
	return nil
}

func (s *SwapChain) GetDevice() (gfx.Device, error) {
	var dev *ID3D11Device
	hr := s.obj.GetDevice(&iid_ID3D11Device, &dev)
	if failed(hr) {
		return nil, fmt.Errorf("failed to GetDevice. %w", _DXGI_ERROR(hr))
	}
	dev.Release()
	return &device{obj: dev}, nil
}

func (s *SwapChain) GetBuffer(index uint32) (gfx.Texture2D, error) {
	var tex *ID3D11Texture2D
	hr := s.obj.GetBuffer(index, &iid_ID3D11Texture2D, &tex)
	if failed(hr) {
		return nil, fmt.Errorf("failed to GetBuffer(%d). %w", index, _DXGI_ERROR(hr))
	}
	tex.Release()
	return &texture{obj: tex}, nil
}

func (s *SwapChain) GetDesc() (gfx.SwapChainDesc, error) {
	var desc _DXGI_SWAP_CHAIN_DESC
	hr := s.obj.GetDesc(&desc)
	if failed(hr) {
		return gfx.SwapChainDesc{}, fmt.Errorf("failed to GetDesc. %w", _DXGI_ERROR(hr))
	}
	return swapChainDesc(&desc), nil
}

func (s *SwapChain) GetParent() (gfx.Object, error) {
	var factory *IDXGIFactory
	hr := s.obj.GetParent(&iid_IDXGIFactory, &factory)
	if failed(hr) {
		return nil, fmt.Errorf("failed to GetParent. %w", _DXGI_ERROR(hr))
	}
	if factory == nil {
		return nil, fmt.Errorf("failed to GetParent. %w", ERROR_NO_INTERFACE)
	}
	return &unknown{ptr: unsafe.Pointer(factory), release: factory.vtbl.Release}, nil
}

// unknown is any object the overlay only identifies and releases.
type unknown struct {
	ptr     unsafe.Pointer
	release uintptr
}

func (u *unknown) Ptr() uintptr { return uintptr(u.ptr) }

func (u *unknown) Release() {
	if u.ptr != nil && u.release != 0 {
		comRelease(u.ptr, u.release)
	}
	u.ptr = nil
}

func borrowed(ptr unsafe.Pointer) *unknown { return &unknown{ptr: ptr} }

type device struct {
	obj *ID3D11Device
}

func (d *device) Ptr() uintptr { return uintptr(unsafe.Pointer(d.obj)) }

func (d *device) Release() { d.obj.Release() }

func (d *device) GetImmediateContext() (gfx.Context, error) {
	var ctx *ID3D11DeviceContext
	d.obj.GetImmediateContext(&ctx)
	if ctx == nil {
		return nil, fmt.Errorf("failed to GetImmediateContext. %w", ERROR_FAIL)
	}
	ctx.Release()
	return &context{obj: ctx}, nil
}

func (d *device) DXGIDevice() (gfx.DXGIDevice, error) {
	var dxgi *IDXGIDevice
	hr := d.obj.QueryInterface(&iid_IDXGIDevice, &dxgi)
	if failed(hr) {
		return nil, fmt.Errorf("failed to QueryInterface(iid_IDXGIDevice, ...). %w", _DXGI_ERROR(hr))
	}
	dxgi.Release()
	return &dxgiDevice{obj: dxgi}, nil
}

func (d *device) CreateTexture2D(desc gfx.Texture2DDesc) (gfx.Texture2D, error) {
	native := textureDesc(desc)
	var tex *ID3D11Texture2D
	hr := d.obj.CreateTexture2D(&native, &tex)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateTexture2D. %w", _DXGI_ERROR(hr))
	}
	return &texture{obj: tex}, nil
}

func (d *device) CreateRenderTargetView(resource gfx.Texture2D) (gfx.RenderTargetView, error) {
	var view *ID3D11DeviceChild
	hr := d.obj.CreateRenderTargetView(nativeTexture(resource), &view)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateRenderTargetView. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: view}, nil
}

func (d *device) CreateDepthStencilView(resource gfx.Texture2D) (gfx.DepthStencilView, error) {
	var view *ID3D11DeviceChild
	hr := d.obj.CreateDepthStencilView(nativeTexture(resource), &view)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateDepthStencilView. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: view}, nil
}

func (d *device) CreateBuffer(desc gfx.BufferDesc, data []byte) (gfx.Buffer, error) {
	native := bufferDesc(desc)
	var initial *_D3D11_SUBRESOURCE_DATA
	if len(data) > 0 {
		initial = &_D3D11_SUBRESOURCE_DATA{PSysMem: uintptr(unsafe.Pointer(&data[0]))}
	}
	var buf *ID3D11DeviceChild
	hr := d.obj.CreateBuffer(&native, initial, &buf)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateBuffer. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: buf}, nil
}

func (d *device) CreateVertexShader(bytecode []byte) (gfx.VertexShader, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("failed to CreateVertexShader. %w", ERROR_INVALID_ARG)
	}
	var shader *ID3D11DeviceChild
	hr := d.obj.CreateVertexShader(bytecode, &shader)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateVertexShader. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: shader}, nil
}

func (d *device) CreatePixelShader(bytecode []byte) (gfx.PixelShader, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("failed to CreatePixelShader. %w", ERROR_INVALID_ARG)
	}
	var shader *ID3D11DeviceChild
	hr := d.obj.CreatePixelShader(bytecode, &shader)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreatePixelShader. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: shader}, nil
}

func (d *device) CreateInputLayout(elements []gfx.InputElementDesc, bytecode []byte) (gfx.InputLayout, error) {
	if len(elements) == 0 || len(bytecode) == 0 {
		return nil, fmt.Errorf("failed to CreateInputLayout. %w", ERROR_INVALID_ARG)
	}
	native, names := inputElements(elements)
	var layout *ID3D11DeviceChild
	hr := d.obj.CreateInputLayout(native, bytecode, &layout)
	runtime.KeepAlive(names)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateInputLayout. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: layout}, nil
}

func (d *device) CreateRasterizerState(desc gfx.RasterizerDesc) (gfx.RasterizerState, error) {
	native := rasterizerDesc(desc)
	var state *ID3D11DeviceChild
	hr := d.obj.CreateRasterizerState(&native, &state)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateRasterizerState. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: state}, nil
}

func (d *device) CreateDepthStencilState(desc gfx.DepthStencilDesc) (gfx.DepthStencilState, error) {
	native := depthStencilDesc(desc)
	var state *ID3D11DeviceChild
	hr := d.obj.CreateDepthStencilState(&native, &state)
	if failed(hr) {
		return nil, fmt.Errorf("failed to CreateDepthStencilState. %w", _DXGI_ERROR(hr))
	}
	return &child{obj: state}, nil
}

type dxgiDevice struct {
	obj *IDXGIDevice
}

func (d *dxgiDevice) Ptr() uintptr { return uintptr(unsafe.Pointer(d.obj)) }

func (d *dxgiDevice) Release() { d.obj.Release() }

func (d *dxgiDevice) GetAdapter() (gfx.Object, error) {
	var adapter *IDXGIAdapter
	hr := d.obj.GetAdapter(&adapter)
	if failed(hr) {
		return nil, fmt.Errorf("failed to GetAdapter. %w", _DXGI_ERROR(hr))
	}
	adapter.Release()
	return borrowed(unsafe.Pointer(adapter)), nil
}

type texture struct {
	obj *ID3D11Texture2D
}

func (t *texture) Ptr() uintptr { return uintptr(unsafe.Pointer(t.obj)) }

func (t *texture) Release() { t.obj.Release() }

func (t *texture) GetDesc() gfx.Texture2DDesc {
	var desc _D3D11_TEXTURE2D_DESC
	t.obj.GetDesc(&desc)
	return desc.gfx()
}

func (t *texture) Surface() (gfx.Object, error) {
	var surface *IDXGISurface
	hr := t.obj.QueryInterface(&iid_IDXGISurface, &surface)
	if failed(hr) {
		return nil, fmt.Errorf("failed to QueryInterface(iid_IDXGISurface, ...). %w", _DXGI_ERROR(hr))
	}
	surface.Release()
	return borrowed(unsafe.Pointer(surface)), nil
}

func nativeTexture(t gfx.Texture2D) *ID3D11Texture2D {
	if tex, ok := t.(*texture); ok {
		return tex.obj
	}
	return nil
}

type child struct {
	obj *ID3D11DeviceChild
}

func (c *child) Ptr() uintptr { return uintptr(unsafe.Pointer(c.obj)) }

func (c *child) Release() {
	if c.obj != nil {
		c.obj.Release()
		c.obj = nil
	}
}

// nativeChild unwraps o, mapping a nil interface to a NULL pointer.
func nativeChild(o gfx.Object) *ID3D11DeviceChild {
	if c, ok := o.(*child); ok {
		return c.obj
	}
	return nil
}

type context struct {
	obj *ID3D11DeviceContext
}

func (c *context) Ptr() uintptr { return uintptr(unsafe.Pointer(c.obj)) }

func (c *context) Release() { c.obj.Release() }

func (c *context) OMGetRenderTargets() (gfx.RenderTargetView, gfx.DepthStencilView) {
	var rtv, dsv *ID3D11DeviceChild
	c.obj.OMGetRenderTargets(&rtv, &dsv)

	var outRTV gfx.RenderTargetView
	var outDSV gfx.DepthStencilView
	if rtv != nil {
		rtv.Release()
		outRTV = &child{obj: rtv}
	}
	if dsv != nil {
		dsv.Release()
		outDSV = &child{obj: dsv}
	}
	return outRTV, outDSV
}

func (c *context) OMSetRenderTargets(rtv gfx.RenderTargetView, dsv gfx.DepthStencilView) {
	c.obj.OMSetRenderTargets(nativeChild(rtv), nativeChild(dsv))
}

func (c *context) OMSetDepthStencilState(state gfx.DepthStencilState, stencilRef uint32) {
	c.obj.OMSetDepthStencilState(nativeChild(state), stencilRef)
}

func (c *context) ClearRenderTargetView(rtv gfx.RenderTargetView, color gfx.Color) {
	rgba := [4]float32(color)
	c.obj.ClearRenderTargetView(nativeChild(rtv), &rgba)
}

func (c *context) VSSetShader(shader gfx.VertexShader) {
	c.obj.VSSetShader(nativeChild(shader))
}

func (c *context) PSSetShader(shader gfx.PixelShader) {
	c.obj.PSSetShader(nativeChild(shader))
}

func (c *context) IASetInputLayout(layout gfx.InputLayout) {
	c.obj.IASetInputLayout(nativeChild(layout))
}

func (c *context) IASetPrimitiveTopology(topology gfx.Topology) {
	c.obj.IASetPrimitiveTopology(uint32(topology))
}

func (c *context) IASetVertexBuffer(slot uint32, buffer gfx.Buffer, stride, offset uint32) {
	c.obj.IASetVertexBuffers(slot, nativeChild(buffer), stride, offset)
}

func (c *context) IASetIndexBuffer(buffer gfx.Buffer, format gfx.Format, offset uint32) {
	c.obj.IASetIndexBuffer(nativeChild(buffer), uint32(format), offset)
}

func (c *context) RSSetState(state gfx.RasterizerState) {
	c.obj.RSSetState(nativeChild(state))
}

func (c *context) RSSetViewport(vp gfx.Viewport) {
	native := _D3D11_VIEWPORT(vp)
	c.obj.RSSetViewports(&native)
}

func (c *context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	c.obj.DrawIndexed(indexCount, startIndex, baseVertex)
}
