package overlay

import (
	"github.com/kirides/d3doverlay/gfx"
)

// Binding is a consistent snapshot of the device family behind one
// presentation surface. All handles are borrowed: the surface and the
// platform own them.
type Binding struct {
	SwapChain  gfx.SwapChain
	Device     gfx.Handle[gfx.Device]
	Context    gfx.Handle[gfx.Context]
	BackBuffer gfx.Handle[gfx.Texture2D]
	DXGIDevice gfx.Handle[gfx.DXGIDevice]
	Adapter    gfx.Handle[gfx.Object]
	Surface    gfx.Handle[gfx.Object]
	Desc       gfx.SwapChainDesc
	Resolution [2]uint32
}

// Bind resolves the device family of sc. The first failing query aborts the
// whole binding with a gfx.ErrResolution error and no Binding.
func Bind(sc gfx.SwapChain) (*Binding, error) {
	if sc == nil {
		return nil, gfx.Resolution("bind surface", errNilSurface)
	}
	device, err := sc.GetDevice()
	if err != nil {
		return nil, gfx.Resolution("get device from surface", err)
	}
	context, err := device.GetImmediateContext()
	if err != nil {
		return nil, gfx.Resolution("get immediate context", err)
	}
	backBuffer, err := sc.GetBuffer(0)
	if err != nil {
		return nil, gfx.Resolution("get back-buffer", err)
	}
	desc, err := sc.GetDesc()
	if err != nil {
		return nil, gfx.Resolution("get surface descriptor", err)
	}
	dxgiDevice, err := device.DXGIDevice()
	if err != nil {
		return nil, gfx.Resolution("get dxgi device", err)
	}
	adapter, err := dxgiDevice.GetAdapter()
	if err != nil {
		return nil, gfx.Resolution("get adapter", err)
	}
	surface, err := backBuffer.Surface()
	if err != nil {
		return nil, gfx.Resolution("get back-buffer surface", err)
	}

	return &Binding{
		SwapChain:  sc,
		Device:     gfx.Borrow(device),
		Context:    gfx.Borrow(context),
		BackBuffer: gfx.Borrow(backBuffer),
		DXGIDevice: gfx.Borrow(dxgiDevice),
		Adapter:    gfx.Borrow(adapter),
		Surface:    gfx.Borrow(surface),
		Desc:       desc,
		Resolution: desc.Resolution(),
	}, nil
}

// Identity is the surface handle the binding was taken from.
func (b *Binding) Identity() uintptr { return b.SwapChain.Ptr() }

// Window is the surface's output window.
func (b *Binding) Window() uintptr { return b.Desc.OutputWindow }
