package soft

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"

	"github.com/kirides/d3doverlay/gfx"
)

// SwapChain is a single-buffered presentation surface. The host side of a
// frame is written with SetHostFrame, the composed result read with Frame.
type SwapChain struct {
	*object
	device     *Device
	factory    *object
	backBuffer *Texture
	hostRTV    gfx.RenderTargetView
	hostDSV    gfx.DepthStencilView
	desc       gfx.SwapChainDesc
	presents   int
}

// NewSwapChain creates a device family the way a host application does: a
// device, a swap chain of the given size and the host's own render target
// pair bound on the immediate context.
func NewSwapChain(width, height uint32, window uintptr) (*SwapChain, error) {
	return newSwapChain(NewDevice(), width, height, window)
}

func newSwapChain(d *Device, width, height uint32, window uintptr) (*SwapChain, error) {
	bb, err := d.newTexture("BackBuffer", gfx.Texture2DDesc{
		Width:       width,
		Height:      height,
		MipLevels:   1,
		ArraySize:   1,
		Format:      gfx.FormatR8G8B8A8UNorm,
		SampleCount: 1,
		BindFlags:   gfx.BindRenderTarget,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create back-buffer. %w", err)
	}
	depth, err := d.newTexture("HostDepth", gfx.Texture2DDesc{
		Width:       width,
		Height:      height,
		MipLevels:   1,
		ArraySize:   1,
		Format:      gfx.FormatD24UNormS8UInt,
		SampleCount: 1,
		BindFlags:   gfx.BindDepthStencil,
	})
	if err != nil {
		bb.Release()
		return nil, fmt.Errorf("failed to create host depth buffer. %w", err)
	}
	defer depth.Release()

	rtv, err := d.CreateRenderTargetView(bb)
	if err != nil {
		bb.Release()
		return nil, fmt.Errorf("failed to create host render target view. %w", err)
	}
	dsv, err := d.CreateDepthStencilView(depth)
	if err != nil {
		rtv.Release()
		bb.Release()
		return nil, fmt.Errorf("failed to create host depth stencil view. %w", err)
	}
	d.ctx.OMSetRenderTargets(rtv, dsv)

	return &SwapChain{
		object:     d.t.object("SwapChain"),
		device:     d,
		factory:    d.t.object("Factory"),
		backBuffer: bb,
		hostRTV:    rtv,
		hostDSV:    dsv,
		desc: gfx.SwapChainDesc{
			Width:        width,
			Height:       height,
			Format:       gfx.FormatR8G8B8A8UNorm,
			BufferCount:  1,
			OutputWindow: window,
			Windowed:     true,
		},
	}, nil
}

// Recreate replaces the swap chain with one of a new size on the same
// device, as a host does after a resize or mode switch. The receiver is
// released.
func (s *SwapChain) Recreate(width, height uint32) (*SwapChain, error) {
	next, err := newSwapChain(s.device, width, height, s.desc.OutputWindow)
	if err != nil {
		return nil, err
	}
	s.Release()
	return next, nil
}

// Release drops the swap chain and, with its last reference, the
// back-buffer, the host targets and the factory.
func (s *SwapChain) Release() {
	s.object.Release()
	if s.refs == 0 {
		s.hostRTV.Release()
		s.hostDSV.Release()
		s.backBuffer.Release()
		s.factory.Release()
	}
}

// HostTarget is the render target view the host draws through.
func (s *SwapChain) HostTarget() gfx.RenderTargetView { return s.hostRTV }

// Device returns the concrete device.
func (s *SwapChain) Device() *Device { return s.device }

func (s *SwapChain) GetDevice() (gfx.Device, error) { return s.device, nil }

func (s *SwapChain) GetBuffer(index uint32) (gfx.Texture2D, error) {
	if index != 0 {
		return nil, fmt.Errorf("buffer %d. %w", index, ErrInvalidArg)
	}
	return s.backBuffer, nil
}

func (s *SwapChain) GetDesc() (gfx.SwapChainDesc, error) { return s.desc, nil }

func (s *SwapChain) GetParent() (gfx.Object, error) { return s.factory.addRef(), nil }

// SetHostFrame writes img into the back-buffer, scaling it to the buffer
// size if needed.
func (s *SwapChain) SetHostFrame(img image.Image) {
	w, h := int(s.desc.Width), int(s.desc.Height)
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		img = resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != w*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Rect, img, img.Bounds().Min, draw.Src)
	}
	copy(s.backBuffer.canvas.ResizeTarget().Data(), rgba.Pix)
}

// Frame returns a copy of the back-buffer.
func (s *SwapChain) Frame() *image.RGBA {
	return s.backBuffer.canvas.ResizeTarget().ToImage()
}

// Present counts the frame. The soft device has no output.
func (s *SwapChain) Present() error {
	s.presents++
	return nil
}

// Presents is the number of frames presented.
func (s *SwapChain) Presents() int { return s.presents }
