package soft

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/kirides/d3doverlay/gfx"
)

// ErrInvalidArg mirrors E_INVALIDARG.
var ErrInvalidArg = errors.New("invalid argument")

// Device creates soft resources. All objects created by one device share
// its live object count.
type Device struct {
	*object
	ctx  *Context
	dxgi *DXGIDevice
}

// NewDevice returns a device with an immediate context and no render
// targets bound.
func NewDevice() *Device {
	t := newTracker()
	d := &Device{object: t.object("Device")}
	d.ctx = &Context{object: t.object("Context")}
	d.dxgi = &DXGIDevice{object: t.object("DXGIDevice"), adapter: t.object("Adapter")}
	return d
}

// Live is the number of objects of kind that are still referenced. An empty
// kind counts every object of the device family.
func (d *Device) Live(kind string) int { return d.t.count(kind) }

// ImmediateContext returns the concrete context.
func (d *Device) ImmediateContext() *Context { return d.ctx }

func (d *Device) GetImmediateContext() (gfx.Context, error) { return d.ctx, nil }

func (d *Device) DXGIDevice() (gfx.DXGIDevice, error) { return d.dxgi, nil }

func (d *Device) CreateTexture2D(desc gfx.Texture2DDesc) (gfx.Texture2D, error) {
	return d.newTexture("Texture2D", desc)
}

func (d *Device) newTexture(kind string, desc gfx.Texture2DDesc) (*Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("texture %dx%d. %w", desc.Width, desc.Height, ErrInvalidArg)
	}
	t := &Texture{object: d.t.object(kind), desc: desc}
	if desc.BindFlags&gfx.BindRenderTarget != 0 {
		t.canvas = gg.NewContext(int(desc.Width), int(desc.Height))
	}
	return t, nil
}

func (d *Device) CreateRenderTargetView(resource gfx.Texture2D) (gfx.RenderTargetView, error) {
	tex, ok := resource.(*Texture)
	if !ok || tex.canvas == nil {
		return nil, fmt.Errorf("render target view. %w", ErrInvalidArg)
	}
	return &RenderTargetView{object: d.t.object("RenderTargetView"), tex: tex}, nil
}

func (d *Device) CreateDepthStencilView(resource gfx.Texture2D) (gfx.DepthStencilView, error) {
	tex, ok := resource.(*Texture)
	if !ok || tex.desc.BindFlags&gfx.BindDepthStencil == 0 {
		return nil, fmt.Errorf("depth stencil view. %w", ErrInvalidArg)
	}
	return d.t.object("DepthStencilView"), nil
}

func (d *Device) CreateBuffer(desc gfx.BufferDesc, data []byte) (gfx.Buffer, error) {
	if desc.ByteWidth == 0 {
		return nil, fmt.Errorf("empty buffer. %w", ErrInvalidArg)
	}
	if desc.Usage == gfx.UsageImmutable && uint32(len(data)) < desc.ByteWidth {
		return nil, fmt.Errorf("immutable buffer needs %d bytes of data, got %d. %w", desc.ByteWidth, len(data), ErrInvalidArg)
	}
	buf := make([]byte, desc.ByteWidth)
	copy(buf, data)
	return &Buffer{object: d.t.object("Buffer"), desc: desc, data: buf}, nil
}

func (d *Device) CreateVertexShader(bytecode []byte) (gfx.VertexShader, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("vertex shader. %w", ErrInvalidArg)
	}
	return d.t.object("VertexShader"), nil
}

func (d *Device) CreatePixelShader(bytecode []byte) (gfx.PixelShader, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("pixel shader. %w", ErrInvalidArg)
	}
	return d.t.object("PixelShader"), nil
}

func (d *Device) CreateInputLayout(elements []gfx.InputElementDesc, bytecode []byte) (gfx.InputLayout, error) {
	if len(elements) == 0 || len(bytecode) == 0 {
		return nil, fmt.Errorf("input layout. %w", ErrInvalidArg)
	}
	return d.t.object("InputLayout"), nil
}

func (d *Device) CreateRasterizerState(desc gfx.RasterizerDesc) (gfx.RasterizerState, error) {
	return d.t.object("RasterizerState"), nil
}

func (d *Device) CreateDepthStencilState(desc gfx.DepthStencilDesc) (gfx.DepthStencilState, error) {
	return d.t.object("DepthStencilState"), nil
}

// DXGIDevice resolves a fixed adapter.
type DXGIDevice struct {
	*object
	adapter *object
}

func (d *DXGIDevice) GetAdapter() (gfx.Object, error) { return d.adapter, nil }

// Texture is a 2D resource. Render target textures own a gg canvas.
type Texture struct {
	*object
	desc   gfx.Texture2DDesc
	canvas *gg.Context
}

func (t *Texture) GetDesc() gfx.Texture2DDesc { return t.desc }

func (t *Texture) Surface() (gfx.Object, error) { return t.object, nil }

// Canvas returns the drawing surface, or nil for textures that cannot be
// bound as render targets.
func (t *Texture) Canvas() *gg.Context { return t.canvas }

// RenderTargetView targets a texture's canvas.
type RenderTargetView struct {
	*object
	tex *Texture
}

func (v *RenderTargetView) Texture() *Texture { return v.tex }

// Buffer holds a private copy of its data.
type Buffer struct {
	*object
	desc gfx.BufferDesc
	data []byte
}

func (b *Buffer) Desc() gfx.BufferDesc { return b.desc }

func (b *Buffer) Bytes() []byte { return b.data }
