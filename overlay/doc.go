// Package overlay draws 2D primitives on top of a presentation surface
// that belongs to someone else.
//
// A Lifecycle follows the host's surface: it binds to the surface's device
// family, derives its own render target from the back-buffer and rebuilds
// it whenever the host replaces the surface. The Renderer batches lines and
// rectangles and draws each batch with one indexed draw call, handing the
// host's render target back afterwards.
//
// Typical per-frame use:
//
//	if err := lc.Update(swapChain); err != nil {
//		return err
//	}
//	if err := lc.Setup(); err != nil {
//		return err
//	}
//	r, err := lc.Renderer()
//	if err != nil {
//		return err
//	}
//	r.RectFilled(gfx.Point{10, 10}, gfx.Point{110, 40}, gfx.RGBA(0, 0, 0, 160))
//	r.Line(gfx.Point{10, 50}, gfx.Point{110, 50}, gfx.RGBA(255, 0, 0, 255), 2)
//	return r.Flush()
//
// Frame wraps the same sequence and hands the host target back when done:
//
//	err := lc.Frame(swapChain, func(r *overlay.Renderer) {
//		r.Rect(gfx.Point{0, 0}, gfx.Point{200, 100}, gfx.RGBA(0, 255, 0, 255), 1)
//	})
package overlay
