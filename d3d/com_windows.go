package d3d

import (
	"reflect"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	iid_ID3D11Device, _    = windows.GUIDFromString("{db6f6ddb-ac77-4e88-8253-819df9bbf140}")
	iid_ID3D11Texture2D, _ = windows.GUIDFromString("{6f15aaf2-d208-4e89-9ab4-489535d34f9c}")
	iid_IDXGIDevice, _     = windows.GUIDFromString("{54ec77fa-1377-44e6-8c32-88fd5f44c84c}")
	iid_IDXGISurface, _    = windows.GUIDFromString("{cafcb56c-6ac3-4889-bf47-9e23bbd260ec}")
	iid_IDXGIFactory, _    = windows.GUIDFromString("{7b7166ec-21c7-44ae-b21a-c9ae321ae369}")
)

// reflectQueryInterface calls method, a QueryInterface-shaped slot, with
// self as the object and the address of the pointer obj points to.
func reflectQueryInterface(self interface{}, method uintptr, interfaceID *windows.GUID, obj interface{}) int32 {
	selfValue := reflect.ValueOf(self).Elem()
	objValue := reflect.ValueOf(obj).Elem()

	hr, _, _ := syscall.SyscallN(
		method,
		selfValue.UnsafeAddr(),
		uintptr(unsafe.Pointer(interfaceID)),
		objValue.Addr().Pointer())

	return int32(hr)
}

func comRelease(obj unsafe.Pointer, method uintptr) int32 {
	ret, _, _ := syscall.SyscallN(method, uintptr(obj))
	return int32(ret)
}
