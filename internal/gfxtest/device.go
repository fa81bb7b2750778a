package gfxtest

import (
	"github.com/kirides/d3doverlay/gfx"
)

// SwapChain is a fake presentation surface.
type SwapChain struct {
	*Object
	Desc       gfx.SwapChainDesc
	Device     *Device
	BackBuffer *Texture
	Factory    *Object
}

// NewSwapChain builds a fake device family: a swap chain whose device's
// immediate context has a host render target pair bound.
func NewSwapChain(rec *Recorder, width, height uint32) *SwapChain {
	dev := &Device{Object: rec.newObject("Device")}
	dev.Context = &Context{Object: rec.newObject("Context")}
	dev.Context.RTV = rec.newObject("HostRenderTargetView")
	dev.Context.DSV = rec.newObject("HostDepthStencilView")
	dev.DXGI = &DXGIDevice{Object: rec.newObject("DXGIDevice"), Adapter: rec.newObject("Adapter")}
	return newSwapChain(rec, dev, width, height)
}

func newSwapChain(rec *Recorder, dev *Device, width, height uint32) *SwapChain {
	sc := &SwapChain{
		Object: rec.newObject("SwapChain"),
		Desc: gfx.SwapChainDesc{
			Width:        width,
			Height:       height,
			Format:       gfx.FormatR8G8B8A8UNorm,
			BufferCount:  1,
			OutputWindow: 0xc0de,
			Windowed:     true,
		},
		Device:  dev,
		Factory: rec.newObject("Factory"),
	}
	sc.BackBuffer = &Texture{
		Object: rec.newObject("BackBuffer"),
		Desc: gfx.Texture2DDesc{
			Width:       width,
			Height:      height,
			MipLevels:   1,
			ArraySize:   1,
			Format:      gfx.FormatR8G8B8A8UNorm,
			SampleCount: 1,
			BindFlags:   gfx.BindRenderTarget,
		},
	}
	return sc
}

// Replace returns a new swap chain on the same device, as a host does after
// a resize or mode switch.
func (s *SwapChain) Replace(width, height uint32) *SwapChain {
	return newSwapChain(s.rec, s.Device, width, height)
}

func (s *SwapChain) GetDevice() (gfx.Device, error) {
	s.rec.record("GetDevice %s", s)
	if err := s.rec.fail("GetDevice"); err != nil {
		return nil, err
	}
	return s.Device, nil
}

func (s *SwapChain) GetBuffer(index uint32) (gfx.Texture2D, error) {
	s.rec.record("GetBuffer %s %d", s, index)
	if err := s.rec.fail("GetBuffer"); err != nil {
		return nil, err
	}
	return s.BackBuffer, nil
}

func (s *SwapChain) GetDesc() (gfx.SwapChainDesc, error) {
	s.rec.record("GetDesc %s", s)
	if err := s.rec.fail("GetDesc"); err != nil {
		return gfx.SwapChainDesc{}, err
	}
	return s.Desc, nil
}

func (s *SwapChain) GetParent() (gfx.Object, error) {
	s.rec.record("GetParent %s", s)
	if err := s.rec.fail("GetParent"); err != nil {
		return nil, err
	}
	return s.Factory, nil
}

// Texture is a fake 2D texture.
type Texture struct {
	*Object
	Desc gfx.Texture2DDesc
}

func (t *Texture) GetDesc() gfx.Texture2DDesc { return t.Desc }

func (t *Texture) Surface() (gfx.Object, error) {
	t.rec.record("Surface %s", t)
	if err := t.rec.fail("Surface"); err != nil {
		return nil, err
	}
	return t.rec.newObject("Surface"), nil
}

// DXGIDevice is a fake DXGI device.
type DXGIDevice struct {
	*Object
	Adapter *Object
}

func (d *DXGIDevice) GetAdapter() (gfx.Object, error) {
	d.rec.record("GetAdapter %s", d)
	if err := d.rec.fail("GetAdapter"); err != nil {
		return nil, err
	}
	return d.Adapter, nil
}

// Buffer keeps a copy of its initial data.
type Buffer struct {
	*Object
	Desc gfx.BufferDesc
	Data []byte
}

// Device is a fake device. Every Create* call can be failed by name.
type Device struct {
	*Object
	Context *Context
	DXGI    *DXGIDevice
}

func (d *Device) GetImmediateContext() (gfx.Context, error) {
	d.rec.record("GetImmediateContext %s", d)
	if err := d.rec.fail("GetImmediateContext"); err != nil {
		return nil, err
	}
	return d.Context, nil
}

func (d *Device) DXGIDevice() (gfx.DXGIDevice, error) {
	d.rec.record("DXGIDevice %s", d)
	if err := d.rec.fail("DXGIDevice"); err != nil {
		return nil, err
	}
	return d.DXGI, nil
}

func (d *Device) create(op, kind string) (*Object, error) {
	if err := d.rec.fail(op); err != nil {
		return nil, err
	}
	o := d.rec.newObject(kind)
	d.rec.record("%s %s", op, o)
	return o, nil
}

func (d *Device) CreateTexture2D(desc gfx.Texture2DDesc) (gfx.Texture2D, error) {
	o, err := d.create("CreateTexture2D", "Texture2D")
	if err != nil {
		return nil, err
	}
	return &Texture{Object: o, Desc: desc}, nil
}

func (d *Device) CreateRenderTargetView(resource gfx.Texture2D) (gfx.RenderTargetView, error) {
	o, err := d.create("CreateRenderTargetView", "RenderTargetView")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *Device) CreateDepthStencilView(resource gfx.Texture2D) (gfx.DepthStencilView, error) {
	o, err := d.create("CreateDepthStencilView", "DepthStencilView")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *Device) CreateBuffer(desc gfx.BufferDesc, data []byte) (gfx.Buffer, error) {
	o, err := d.create("CreateBuffer", "Buffer")
	if err != nil {
		return nil, err
	}
	return &Buffer{Object: o, Desc: desc, Data: append([]byte(nil), data...)}, nil
}

func (d *Device) CreateVertexShader(bytecode []byte) (gfx.VertexShader, error) {
	o, err := d.create("CreateVertexShader", "VertexShader")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *Device) CreatePixelShader(bytecode []byte) (gfx.PixelShader, error) {
	o, err := d.create("CreatePixelShader", "PixelShader")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *Device) CreateInputLayout(elements []gfx.InputElementDesc, bytecode []byte) (gfx.InputLayout, error) {
	o, err := d.create("CreateInputLayout", "InputLayout")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *Device) CreateRasterizerState(desc gfx.RasterizerDesc) (gfx.RasterizerState, error) {
	o, err := d.create("CreateRasterizerState", "RasterizerState")
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (d *Device) CreateDepthStencilState(desc gfx.DepthStencilDesc) (gfx.DepthStencilState, error) {
	o, err := d.create("CreateDepthStencilState", "DepthStencilState")
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Compiler returns a deterministic fake bytecode per entry point.
type Compiler struct {
	Rec *Recorder
}

func (c Compiler) Compile(source []byte, entryPoint, target string) ([]byte, error) {
	c.Rec.record("Compile %s %s", entryPoint, target)
	if err := c.Rec.fail("Compile " + entryPoint); err != nil {
		return nil, err
	}
	return []byte(entryPoint + "/" + target), nil
}

// Sizer is a fixed window size.
type Sizer struct {
	Width, Height int
	Err           error
}

func (s Sizer) ClientSize(window uintptr) (int, int, error) {
	return s.Width, s.Height, s.Err
}
