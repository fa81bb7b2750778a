package overlay

import (
	"github.com/kirides/d3doverlay/gfx"
)

type binding uint8

const (
	boundHost binding = iota
	boundOverlay
)

// Targets tracks the two render target pairs of one surface: the host's,
// captured once and only ever used to restore it, and the overlay's own,
// derived from the back-buffer. Exactly one pair is bound at a time; the
// host pair is the resting state.
type Targets struct {
	context gfx.Context

	hostRTV gfx.Handle[gfx.RenderTargetView]
	hostDSV gfx.Handle[gfx.DepthStencilView]

	rtv   gfx.Handle[gfx.RenderTargetView]
	depth gfx.Handle[gfx.Texture2D]
	dsv   gfx.Handle[gfx.DepthStencilView]

	bound binding
}

// newTargets captures the host pair currently bound on the context and
// creates the overlay pair from the back-buffer. On failure everything
// created so far is released.
func newTargets(b *Binding) (t *Targets, err error) {
	ctx := b.Context.Get()
	device := b.Device.Get()

	hostRTV, hostDSV := ctx.OMGetRenderTargets()
	t = &Targets{
		context: ctx,
		hostRTV: gfx.Borrow(hostRTV),
		hostDSV: gfx.Borrow(hostDSV),
	}
	defer func() {
		if err != nil {
			t.release()
			t = nil
		}
	}()

	rtv, err := device.CreateRenderTargetView(b.BackBuffer.Get())
	if err != nil {
		return t, gfx.Creation("create overlay render target view", err)
	}
	t.rtv = gfx.Own(rtv)

	bb := b.BackBuffer.Get().GetDesc()
	depth, err := device.CreateTexture2D(gfx.Texture2DDesc{
		Width:       bb.Width,
		Height:      bb.Height,
		MipLevels:   1,
		ArraySize:   1,
		Format:      gfx.FormatD24UNormS8UInt,
		SampleCount: max(bb.SampleCount, 1),
		Usage:       gfx.UsageDefault,
		BindFlags:   gfx.BindDepthStencil,
	})
	if err != nil {
		return t, gfx.Creation("create overlay depth texture", err)
	}
	t.depth = gfx.Own(depth)

	dsv, err := device.CreateDepthStencilView(depth)
	if err != nil {
		return t, gfx.Creation("create overlay depth stencil view", err)
	}
	t.dsv = gfx.Own(dsv)
	return t, nil
}

// BindOverlay makes the overlay pair the output of the pipeline.
func (t *Targets) BindOverlay() {
	if t.bound == boundOverlay {
		return
	}
	t.context.OMSetRenderTargets(t.rtv.Get(), t.dsv.Get())
	t.bound = boundOverlay
}

// BindHost restores the host pair if the overlay pair is bound.
func (t *Targets) BindHost() {
	if t.bound == boundHost {
		return
	}
	t.context.OMSetRenderTargets(t.hostRTV.Get(), t.hostDSV.Get())
	t.bound = boundHost
}

// OverlayBound reports whether draws currently land in the overlay target.
func (t *Targets) OverlayBound() bool { return t.bound == boundOverlay }

func (t *Targets) renderTarget() gfx.RenderTargetView { return t.rtv.Get() }

// release restores the host pair and drops the overlay pair. The host pair
// is borrowed and survives.
func (t *Targets) release() {
	t.BindHost()
	t.dsv.Release()
	t.depth.Release()
	t.rtv.Release()
	t.hostRTV.Release()
	t.hostDSV.Release()
}
