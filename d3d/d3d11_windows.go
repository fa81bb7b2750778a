package d3d

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type ID3D11Device struct {
	vtbl *iD3D11DeviceVtbl
}

func (obj *ID3D11Device) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

func (obj *ID3D11Device) QueryInterface(iid *windows.GUID, pp interface{}) int32 {
	return reflectQueryInterface(obj, obj.vtbl.QueryInterface, iid, pp)
}

func (obj *ID3D11Device) GetImmediateContext(ppImmediateContext **ID3D11DeviceContext) {
	syscall.SyscallN(
		obj.vtbl.GetImmediateContext,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(ppImmediateContext)),
	)
}

func (obj *ID3D11Device) CreateTexture2D(desc *_D3D11_TEXTURE2D_DESC, ppTexture2D **ID3D11Texture2D) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateTexture2D,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(desc)),
		0,
		uintptr(unsafe.Pointer(ppTexture2D)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateBuffer(desc *_D3D11_BUFFER_DESC, data *_D3D11_SUBRESOURCE_DATA, ppBuffer **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateBuffer,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(data)),
		uintptr(unsafe.Pointer(ppBuffer)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateRenderTargetView(resource *ID3D11Texture2D, ppView **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateRenderTargetView,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(resource)),
		0, // default view of mip 0
		uintptr(unsafe.Pointer(ppView)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateDepthStencilView(resource *ID3D11Texture2D, ppView **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateDepthStencilView,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(resource)),
		0,
		uintptr(unsafe.Pointer(ppView)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateInputLayout(elements []_D3D11_INPUT_ELEMENT_DESC, bytecode []byte, ppLayout **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateInputLayout,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&elements[0])),
		uintptr(len(elements)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		uintptr(unsafe.Pointer(ppLayout)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateVertexShader(bytecode []byte, ppShader **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateVertexShader,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0, // class linkage
		uintptr(unsafe.Pointer(ppShader)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreatePixelShader(bytecode []byte, ppShader **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreatePixelShader,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0,
		uintptr(unsafe.Pointer(ppShader)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateRasterizerState(desc *_D3D11_RASTERIZER_DESC, ppState **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateRasterizerState,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(ppState)),
	)
	return int32(ret)
}

func (obj *ID3D11Device) CreateDepthStencilState(desc *_D3D11_DEPTH_STENCIL_DESC, ppState **ID3D11DeviceChild) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.CreateDepthStencilState,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(ppState)),
	)
	return int32(ret)
}

type ID3D11DeviceContext struct {
	vtbl *iD3D11DeviceContextVtbl
}

func (obj *ID3D11DeviceContext) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

func (obj *ID3D11DeviceContext) OMGetRenderTargets(ppRTV **ID3D11DeviceChild, ppDSV **ID3D11DeviceChild) {
	syscall.SyscallN(
		obj.vtbl.OMGetRenderTargets,
		uintptr(unsafe.Pointer(obj)),
		1,
		uintptr(unsafe.Pointer(ppRTV)),
		uintptr(unsafe.Pointer(ppDSV)),
	)
}

func (obj *ID3D11DeviceContext) OMSetRenderTargets(rtv *ID3D11DeviceChild, dsv *ID3D11DeviceChild) {
	var n uintptr
	if rtv != nil {
		n = 1
	}
	syscall.SyscallN(
		obj.vtbl.OMSetRenderTargets,
		uintptr(unsafe.Pointer(obj)),
		n,
		uintptr(unsafe.Pointer(&rtv)),
		uintptr(unsafe.Pointer(dsv)),
	)
}

func (obj *ID3D11DeviceContext) OMSetDepthStencilState(state *ID3D11DeviceChild, stencilRef uint32) {
	syscall.SyscallN(
		obj.vtbl.OMSetDepthStencilState,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(state)),
		uintptr(stencilRef),
	)
}

func (obj *ID3D11DeviceContext) ClearRenderTargetView(rtv *ID3D11DeviceChild, color *[4]float32) {
	syscall.SyscallN(
		obj.vtbl.ClearRenderTargetView,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(rtv)),
		uintptr(unsafe.Pointer(color)),
	)
}

func (obj *ID3D11DeviceContext) VSSetShader(shader *ID3D11DeviceChild) {
	syscall.SyscallN(
		obj.vtbl.VSSetShader,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(shader)),
		0,
		0,
	)
}

func (obj *ID3D11DeviceContext) PSSetShader(shader *ID3D11DeviceChild) {
	syscall.SyscallN(
		obj.vtbl.PSSetShader,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(shader)),
		0,
		0,
	)
}

func (obj *ID3D11DeviceContext) IASetInputLayout(layout *ID3D11DeviceChild) {
	syscall.SyscallN(
		obj.vtbl.IASetInputLayout,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(layout)),
	)
}

func (obj *ID3D11DeviceContext) IASetPrimitiveTopology(topology uint32) {
	syscall.SyscallN(
		obj.vtbl.IASetPrimitiveTopology,
		uintptr(unsafe.Pointer(obj)),
		uintptr(topology),
	)
}

func (obj *ID3D11DeviceContext) IASetVertexBuffers(slot uint32, buffer *ID3D11DeviceChild, stride, offset uint32) {
	syscall.SyscallN(
		obj.vtbl.IASetVertexBuffers,
		uintptr(unsafe.Pointer(obj)),
		uintptr(slot),
		1,
		uintptr(unsafe.Pointer(&buffer)),
		uintptr(unsafe.Pointer(&stride)),
		uintptr(unsafe.Pointer(&offset)),
	)
}

func (obj *ID3D11DeviceContext) IASetIndexBuffer(buffer *ID3D11DeviceChild, format uint32, offset uint32) {
	syscall.SyscallN(
		obj.vtbl.IASetIndexBuffer,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(buffer)),
		uintptr(format),
		uintptr(offset),
	)
}

func (obj *ID3D11DeviceContext) RSSetState(state *ID3D11DeviceChild) {
	syscall.SyscallN(
		obj.vtbl.RSSetState,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(state)),
	)
}

func (obj *ID3D11DeviceContext) RSSetViewports(viewport *_D3D11_VIEWPORT) {
	syscall.SyscallN(
		obj.vtbl.RSSetViewports,
		uintptr(unsafe.Pointer(obj)),
		1,
		uintptr(unsafe.Pointer(viewport)),
	)
}

func (obj *ID3D11DeviceContext) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	syscall.SyscallN(
		obj.vtbl.DrawIndexed,
		uintptr(unsafe.Pointer(obj)),
		uintptr(indexCount),
		uintptr(startIndex),
		uintptr(baseVertex),
	)
}

func (obj *ID3D11DeviceContext) CopyResource2D(dst, src *ID3D11Texture2D) {
	syscall.SyscallN(
		obj.vtbl.CopyResource,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(dst)),
		uintptr(unsafe.Pointer(src)),
	)
}

func (obj *ID3D11DeviceContext) Flush() {
	syscall.SyscallN(
		obj.vtbl.Flush,
		uintptr(unsafe.Pointer(obj)),
	)
}

type ID3D11Texture2D struct {
	vtbl *iD3D11Texture2DVtbl
}

func (obj *ID3D11Texture2D) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

func (obj *ID3D11Texture2D) QueryInterface(iid *windows.GUID, pp interface{}) int32 {
	return reflectQueryInterface(obj, obj.vtbl.QueryInterface, iid, pp)
}

func (obj *ID3D11Texture2D) GetDesc(desc *_D3D11_TEXTURE2D_DESC) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.GetDesc,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(desc)),
	)
	return int32(ret)
}

// ID3D11DeviceChild stands in for every interface the overlay only
// creates, binds and releases: views, buffers, shaders, input layouts and
// state objects.
type ID3D11DeviceChild struct {
	vtbl *iD3D11DeviceChildVtbl
}

func (obj *ID3D11DeviceChild) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}
