package d3d

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type IDXGISwapChain struct {
	vtbl *iDXGISwapChainVtbl
}

func (obj *IDXGISwapChain) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

func (obj *IDXGISwapChain) GetDevice(iid *windows.GUID, pp interface{}) int32 {
	return reflectQueryInterface(obj, obj.vtbl.GetDevice, iid, pp)
}

func (obj *IDXGISwapChain) GetParent(iid *windows.GUID, pp interface{}) int32 {
	return reflectQueryInterface(obj, obj.vtbl.GetParent, iid, pp)
}

func (obj *IDXGISwapChain) GetBuffer(buffer uint32, iid *windows.GUID, pp **ID3D11Texture2D) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.GetBuffer,
		uintptr(unsafe.Pointer(obj)),
		uintptr(buffer),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(pp)),
	)
	return int32(ret)
}

func (obj *IDXGISwapChain) GetDesc(desc *_DXGI_SWAP_CHAIN_DESC) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.GetDesc,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(desc)),
	)
	return int32(ret)
}

func (obj *IDXGISwapChain) Present(syncInterval, flags uint32) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.Present,
		uintptr(unsafe.Pointer(obj)),
		uintptr(syncInterval),
		uintptr(flags),
	)
	return int32(ret)
}

type IDXGIDevice struct {
	vtbl *iDXGIDeviceVtbl
}

func (obj *IDXGIDevice) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

func (obj *IDXGIDevice) GetAdapter(pp **IDXGIAdapter) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.GetAdapter,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(pp)),
	)
	return int32(ret)
}

type IDXGIAdapter struct {
	vtbl *iDXGIAdapterVtbl
}

func (obj *IDXGIAdapter) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

type IDXGIFactory struct {
	vtbl *iDXGIFactoryVtbl
}

func (obj *IDXGIFactory) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

type IDXGISurface struct {
	vtbl *iDXGISurfaceVtbl
}

func (obj *IDXGISurface) Release() int32 {
	return comRelease(unsafe.Pointer(obj), obj.vtbl.Release)
}

func (obj *IDXGISurface) Map(pLockedRect *DXGI_MAPPED_RECT, mapFlags uint32) int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.Map,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(pLockedRect)),
		uintptr(mapFlags),
	)
	return int32(ret)
}

func (obj *IDXGISurface) Unmap() int32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.Unmap,
		uintptr(unsafe.Pointer(obj)),
	)
	return int32(ret)
}
