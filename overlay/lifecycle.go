package overlay

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kirides/d3doverlay/gfx"
)

// State is the state of a Lifecycle.
type State uint8

const (
	// Stale means there are no overlay resources for the current surface.
	Stale State = iota
	// Bound means the overlay resources match the cached surface identity.
	Bound
	// Failed means the last rebuild failed. Nothing may be drawn until the
	// failure is acknowledged.
	Failed
)

func (s State) String() string {
	switch s {
	case Stale:
		return "stale"
	case Bound:
		return "bound"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithLogger sets the logger for surface transitions.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Lifecycle) { l.log = log }
}

// WithWindowSizer sets the window rectangle query used to size the
// viewport. Without one the surface resolution is used.
func WithWindowSizer(sizer gfx.WindowSizer) Option {
	return func(l *Lifecycle) { l.sizer = sizer }
}

// WithShaders replaces the built-in shader pair.
func WithShaders(vs, ps ShaderSource) Option {
	return func(l *Lifecycle) { l.vs, l.ps = vs, ps }
}

// Lifecycle keeps the overlay's resources in step with a presentation
// surface that may be replaced at any time.
//
// A Lifecycle is not safe for concurrent use. Callers that draw from more
// than one goroutine must serialize access themselves.
type Lifecycle struct {
	log      logrus.FieldLogger
	sizer    gfx.WindowSizer
	compiler gfx.Compiler
	vs, ps   ShaderSource

	state    State
	identity uintptr
	err      error

	binding  *Binding
	targets  *Targets
	pipeline *Pipeline
	// pipelineErr is sticky: the shader assets are fixed, a pipeline that
	// failed once on a device will fail again there.
	pipelineErr    error
	pipelineDevice uintptr
	renderer       *Renderer
}

// New creates a Lifecycle for sc and binds it. Failure to bind leaves the
// lifecycle in the Failed state; the error is returned alongside it.
func New(sc gfx.SwapChain, compiler gfx.Compiler, opts ...Option) (*Lifecycle, error) {
	l := &Lifecycle{
		compiler: compiler,
		vs:       VertexShader,
		ps:       PixelShader,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		l.log = discard
	}
	return l, l.Update(sc)
}

func (l *Lifecycle) State() State { return l.state }

// Err returns the error that moved the lifecycle into the Failed state.
func (l *Lifecycle) Err() error { return l.err }

// Binding returns the current surface binding, or nil unless Bound.
func (l *Lifecycle) Binding() *Binding {
	if l.state != Bound {
		return nil
	}
	return l.binding
}

// Update observes the current presentation surface. The same surface as
// the cached one is a no-op. A different one tears down every owned
// resource tied to the old surface and rebuilds against sc; the pipeline
// survives.
func (l *Lifecycle) Update(sc gfx.SwapChain) error {
	if l.state == Failed {
		return ErrFailed
	}
	if l.state == Bound && sc != nil && sc.Ptr() == l.identity {
		return nil
	}

	l.Release()

	b, err := Bind(sc)
	if err != nil {
		return l.fail(err)
	}
	targets, err := newTargets(b)
	if err != nil {
		return l.fail(err)
	}

	if dev := b.Device.Get().Ptr(); l.pipelineDevice != 0 && l.pipelineDevice != dev {
		l.log.WithField("device", dev).Debug("surface moved to another device, dropping pipeline")
		l.dropPipeline()
	}
	l.binding = b
	l.targets = targets
	l.identity = b.Identity()
	l.state = Bound
	l.log.WithFields(logrus.Fields{
		"surface": l.identity,
		"width":   b.Resolution[0],
		"height":  b.Resolution[1],
	}).Debug("overlay bound to surface")
	return nil
}

func (l *Lifecycle) fail(err error) error {
	l.state = Failed
	l.err = err
	l.log.WithError(err).Warn("overlay rebuild failed")
	return err
}

// Acknowledge clears the Failed state. The next Update rebuilds from
// scratch.
func (l *Lifecycle) Acknowledge() {
	if l.state != Failed {
		return
	}
	l.state = Stale
	l.err = nil
}

// Setup prepares the context for overlay drawing. The pipeline is built
// on first use only, every call binds it again together with the
// rasterizer, depth-stencil, topology and viewport state. The renderer is
// created if absent.
func (l *Lifecycle) Setup() error {
	switch l.state {
	case Failed:
		return ErrFailed
	case Stale:
		return ErrStale
	}
	if l.pipelineErr != nil {
		return l.pipelineErr
	}

	ctx := l.binding.Context.Get()
	if l.pipeline == nil {
		l.pipelineDevice = l.binding.Device.Get().Ptr()
		p, err := NewPipeline(l.binding.Device.Get(), l.compiler, l.vs, l.ps)
		if err != nil {
			l.pipelineErr = err
			l.log.WithError(err).Error("overlay pipeline setup failed")
			return err
		}
		l.pipeline = p
	}

	l.pipeline.Bind(ctx)
	ctx.RSSetState(l.pipeline.RasterizerState())
	ctx.OMSetDepthStencilState(l.pipeline.DepthStencilState(), 0)
	ctx.IASetPrimitiveTopology(gfx.TopologyTriangleList)
	ctx.RSSetViewport(l.viewport())

	if l.renderer == nil {
		l.renderer = newRenderer(l.binding.Device.Get(), ctx, l.targets, l.binding.Resolution)
	}
	return nil
}

// viewport covers the output window's client area, or the whole surface
// if the window cannot be measured.
func (l *Lifecycle) viewport() gfx.Viewport {
	w, h := float32(l.binding.Resolution[0]), float32(l.binding.Resolution[1])
	if l.sizer != nil {
		cw, ch, err := l.sizer.ClientSize(l.binding.Window())
		if err == nil && cw > 0 && ch > 0 {
			w, h = float32(cw), float32(ch)
		} else if err != nil {
			l.log.WithError(err).Debug("window size query failed, using surface resolution")
		}
	}
	return gfx.Viewport{Width: w, Height: h, MinDepth: 0, MaxDepth: 1}
}

// Renderer binds the overlay render target and returns the renderer.
func (l *Lifecycle) Renderer() (*Renderer, error) {
	switch l.state {
	case Failed:
		return nil, ErrFailed
	case Stale:
		return nil, ErrStale
	}
	if l.renderer == nil {
		return nil, ErrNotSetup
	}
	l.renderer.SetOwnRender()
	return l.renderer, nil
}

// Frame runs one overlay frame against sc: it follows the surface, sets
// up the pipeline, lets draw fill the batch and flushes it. The host render
// target is bound again afterwards. A rebuild failure is acknowledged before
// Frame returns, so the next frame retries it; the error is still returned.
func (l *Lifecycle) Frame(sc gfx.SwapChain, draw func(*Renderer)) error {
	if err := l.Update(sc); err != nil {
		l.Acknowledge()
		return err
	}
	if err := l.Setup(); err != nil {
		return err
	}
	r, err := l.Renderer()
	if err != nil {
		return err
	}
	defer r.SetHostRender()
	draw(r)
	return r.Flush()
}

// Release restores the host render target and drops everything owned that
// depends on the current surface: the overlay targets and the renderer
// with its buffers. Borrowed handles are left alone and the pipeline is
// kept. The lifecycle becomes Stale unless it is Failed.
func (l *Lifecycle) Release() {
	if l.renderer != nil {
		l.renderer.release()
		l.renderer = nil
	}
	if l.targets != nil {
		l.targets.release()
		l.targets = nil
	}
	l.binding = nil
	l.identity = 0
	if l.state == Bound {
		l.state = Stale
	}
}

// Close releases everything including the pipeline.
func (l *Lifecycle) Close() {
	l.Release()
	l.dropPipeline()
}

func (l *Lifecycle) dropPipeline() {
	if l.pipeline != nil {
		l.pipeline.Release()
		l.pipeline = nil
	}
	l.pipelineErr = nil
	l.pipelineDevice = 0
}
