package d3d

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modD3DCompiler = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	procD3DCompile = modD3DCompiler.NewProc("D3DCompile")
)

type iD3DBlob struct {
	vtbl *iD3DBlobVtbl
}

func (b *iD3DBlob) Release() int32 {
	return comRelease(unsafe.Pointer(b), b.vtbl.Release)
}

func (b *iD3DBlob) data() []byte {
	ptr, _, _ := syscall.SyscallN(b.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(b)))
	n, _, _ := syscall.SyscallN(b.vtbl.GetBufferSize, uintptr(unsafe.Pointer(b)))
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(n))
}

// Compiler compiles HLSL with d3dcompiler_47.dll.
type Compiler struct {
	// Flags are passed as D3DCOMPILE flags. The zero value compiles with
	// debug information and without optimization.
	Flags uint32
}

func (c Compiler) Compile(src []byte, entryPoint, target string) ([]byte, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("failed to D3DCompile %s. empty source", entryPoint)
	}
	flags := c.Flags
	if flags == 0 {
		flags = D3DCOMPILE_DEBUG | D3DCOMPILE_SKIP_OPTIMIZATION
	}
	if err := procD3DCompile.Find(); err != nil {
		return nil, fmt.Errorf("failed to load D3DCompile. %w", err)
	}

	var code, errs *iD3DBlob
	entryPoint0 := []byte(entryPoint + "\x00")
	target0 := []byte(target + "\x00")
	r, _, _ := procD3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		0, // pSourceName
		0, // pDefines
		0, // pInclude
		uintptr(unsafe.Pointer(&entryPoint0[0])),
		uintptr(unsafe.Pointer(&target0[0])),
		uintptr(flags),
		0,
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errs)),
	)
	var compileErr string
	if errs != nil {
		compileErr = string(errs.data())
		errs.Release()
	}
	if failed(int32(r)) {
		if code != nil {
			code.Release()
		}
		return nil, fmt.Errorf("failed to D3DCompile %s (%s). %w: %s", entryPoint, target, _DXGI_ERROR(r), compileErr)
	}
	bytecode := append([]byte(nil), code.data()...)
	code.Release()
	return bytecode, nil
}
