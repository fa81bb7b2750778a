package overlay

import (
	"errors"
	"testing"

	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/internal/gfxtest"
)

func TestUpdateSameSurfaceIsNoop(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	if lc.State() != Bound {
		t.Fatalf("State() = %v, want bound", lc.State())
	}
	rec.Reset()

	if err := lc.Update(sc); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("Update() with the same surface made calls: %v", rec.Calls)
	}
	if lc.State() != Bound {
		t.Fatalf("State() = %v, want bound", lc.State())
	}
}

func TestUpdateReleasesPerIdentity(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	if err := lc.Setup(); err != nil {
		t.Fatal(err)
	}

	surfaces := []*gfxtest.SwapChain{sc.Replace(800, 600), sc.Replace(1024, 768), sc.Replace(1920, 1080)}
	for i, next := range surfaces {
		if err := lc.Update(next); err != nil {
			t.Fatalf("Update(%d) error = %v", i, err)
		}
		// Seeing the same surface again must not release anything.
		if err := lc.Update(next); err != nil {
			t.Fatal(err)
		}
		if got := rec.Released("RenderTargetView"); got != i+1 {
			t.Fatalf("after %d replacements overlay RTV released %d times", i+1, got)
		}
		if got := rec.Live("RenderTargetView"); got != 1 {
			t.Fatalf("live overlay RTVs = %d, want 1", got)
		}
		if got := rec.Live("DepthStencilView"); got != 1 {
			t.Fatalf("live overlay DSVs = %d, want 1", got)
		}
		if got := lc.Binding().Resolution; got != next.Desc.Resolution() {
			t.Fatalf("Resolution = %v, want %v", got, next.Desc.Resolution())
		}
	}

	// Borrowed handles are never released.
	for _, kind := range []string{"Device", "Context", "BackBuffer", "HostRenderTargetView", "HostDepthStencilView", "Adapter", "SwapChain"} {
		if n := rec.Released(kind); n != 0 {
			t.Errorf("borrowed %s released %d times", kind, n)
		}
	}
	// The pipeline survives surface replacement.
	if n := rec.Created("VertexShader"); n != 1 {
		t.Errorf("vertex shader created %d times", n)
	}
	if n := rec.Released("VertexShader"); n != 0 {
		t.Errorf("vertex shader released %d times", n)
	}
}

func TestUpdateReleasesBeforeRebuild(t *testing.T) {
	rec, sc, lc, r := newRendering(t, 640, 480)
	r.Line(gfx.Point{0, 0}, gfx.Point{10, 10}, white, 1)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	if _, err := lc.Renderer(); err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	if err := lc.Update(sc.Replace(320, 240)); err != nil {
		t.Fatal(err)
	}

	restore, release, create := -1, -1, -1
	for i, c := range rec.Calls {
		switch {
		case c == "OMSetRenderTargets HostRenderTargetView#3 HostDepthStencilView#4" && restore < 0:
			restore = i
		case len(c) > 24 && c[:24] == "Release RenderTargetView" && release < 0:
			release = i
		case len(c) > 22 && c[:22] == "CreateRenderTargetView" && create < 0:
			create = i
		}
	}
	if restore < 0 || release < 0 || create < 0 {
		t.Fatalf("missing restore/release/create in %v", rec.Calls)
	}
	if !(restore < release && release < create) {
		t.Fatalf("want restore < release < create, got %d %d %d in %v", restore, release, create, rec.Calls)
	}
	if n := rec.Live("Buffer"); n != 0 {
		t.Fatalf("%d renderer buffers still live after rebuild", n)
	}
	if ctx := sc.Device.Context; ctx.RTV.(*gfxtest.Object).Kind != "HostRenderTargetView" {
		t.Fatalf("host target not restored, bound %v", ctx.RTV)
	}
	if lc.renderer != nil {
		t.Fatal("renderer kept across surfaces")
	}
}

func TestUpdateFailureEntersFailed(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	if err := lc.Setup(); err != nil {
		t.Fatal(err)
	}

	rec.Fail("GetBuffer", nil)
	next := sc.Replace(800, 600)
	err := lc.Update(next)
	if !errors.Is(err, gfx.ErrResolution) {
		t.Fatalf("Update() error = %v, want resolution error", err)
	}
	if lc.State() != Failed {
		t.Fatalf("State() = %v, want failed", lc.State())
	}
	if !errors.Is(lc.Err(), gfx.ErrResolution) {
		t.Fatalf("Err() = %v", lc.Err())
	}
	if lc.Binding() != nil {
		t.Fatal("Binding() returned a binding while failed")
	}
	// The old overlay target went away before the failing rebuild.
	if n := rec.Live("RenderTargetView"); n != 0 {
		t.Fatalf("live overlay RTVs = %d, want 0", n)
	}

	rec.Clear("GetBuffer")
	for name, call := range map[string]func() error{
		"Update": func() error { return lc.Update(next) },
		"Setup":  lc.Setup,
		"Renderer": func() error {
			_, err := lc.Renderer()
			return err
		},
	} {
		if err := call(); !errors.Is(err, ErrFailed) {
			t.Errorf("%s() while failed = %v, want ErrFailed", name, err)
		}
	}

	lc.Acknowledge()
	if lc.State() != Stale {
		t.Fatalf("State() after Acknowledge = %v, want stale", lc.State())
	}
	if err := lc.Update(next); err != nil {
		t.Fatalf("Update() after Acknowledge error = %v", err)
	}
	if lc.State() != Bound {
		t.Fatalf("State() = %v, want bound", lc.State())
	}
}

func TestUpdateTargetCreationFailureCleansUp(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	rec.Fail("CreateDepthStencilView", nil)

	err := lc.Update(sc.Replace(800, 600))
	if !errors.Is(err, gfx.ErrCreation) {
		t.Fatalf("Update() error = %v, want creation error", err)
	}
	for _, kind := range []string{"RenderTargetView", "Texture2D", "DepthStencilView"} {
		if n := rec.Live(kind); n != 0 {
			t.Errorf("%d %s leaked", n, kind)
		}
	}
}

func TestNewFailure(t *testing.T) {
	rec := gfxtest.NewRecorder()
	sc := gfxtest.NewSwapChain(rec, 10, 10)
	rec.Fail("GetDevice", nil)

	lc, err := New(sc, gfxtest.Compiler{Rec: rec})
	if !errors.Is(err, gfx.ErrResolution) {
		t.Fatalf("New() error = %v", err)
	}
	if lc == nil || lc.State() != Failed {
		t.Fatalf("New() did not return a failed lifecycle")
	}
}

func TestSetup(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	ctx := sc.Device.Context

	if _, err := lc.Renderer(); !errors.Is(err, ErrNotSetup) {
		t.Fatalf("Renderer() before Setup error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := lc.Setup(); err != nil {
			t.Fatalf("Setup() #%d error = %v", i, err)
		}
	}
	for _, kind := range []string{"VertexShader", "PixelShader", "InputLayout", "RasterizerState", "DepthStencilState"} {
		if n := rec.Created(kind); n != 1 {
			t.Errorf("%s created %d times, want 1", kind, n)
		}
	}
	if n := rec.Count("VSSetShader"); n != 3 {
		t.Errorf("pipeline bound %d times, want 3", n)
	}
	if n := rec.Count("Compile VSMain vs_5_0"); n != 1 {
		t.Errorf("vertex shader compiled %d times", n)
	}
	if n := rec.Count("Compile PSMain ps_5_0"); n != 1 {
		t.Errorf("pixel shader compiled %d times", n)
	}
	if ctx.Topology != gfx.TopologyTriangleList {
		t.Errorf("Topology = %v", ctx.Topology)
	}
	if ctx.Rasterizer == nil || ctx.DepthState == nil || ctx.VS == nil || ctx.PS == nil || ctx.Layout == nil {
		t.Error("pipeline state not fully bound")
	}
	if want := (gfx.Viewport{Width: 640, Height: 480, MaxDepth: 1}); ctx.Viewport != want {
		t.Errorf("Viewport = %+v, want %+v", ctx.Viewport, want)
	}

	r1, err := lc.Renderer()
	if err != nil {
		t.Fatal(err)
	}
	if err := lc.Setup(); err != nil {
		t.Fatal(err)
	}
	r2, _ := lc.Renderer()
	if r1 != r2 {
		t.Error("Setup() replaced an existing renderer")
	}
}

func TestSetupViewportFromWindow(t *testing.T) {
	rec := gfxtest.NewRecorder()
	sc := gfxtest.NewSwapChain(rec, 640, 480)
	lc, err := New(sc, gfxtest.Compiler{Rec: rec}, WithWindowSizer(gfxtest.Sizer{Width: 600, Height: 400}))
	if err != nil {
		t.Fatal(err)
	}
	if err := lc.Setup(); err != nil {
		t.Fatal(err)
	}
	if vp := sc.Device.Context.Viewport; vp.Width != 600 || vp.Height != 400 {
		t.Fatalf("Viewport = %+v, want 600x400", vp)
	}

	broken := gfxtest.Sizer{Err: errors.New("no window")}
	lc2, err := New(sc.Replace(320, 200), gfxtest.Compiler{Rec: rec}, WithWindowSizer(broken))
	if err != nil {
		t.Fatal(err)
	}
	if err := lc2.Setup(); err != nil {
		t.Fatal(err)
	}
	if vp := sc.Device.Context.Viewport; vp.Width != 320 || vp.Height != 200 {
		t.Fatalf("Viewport = %+v, want surface resolution", vp)
	}
}

func TestSetupPipelineFailureIsSticky(t *testing.T) {
	rec, _, lc := newBound(t, 640, 480)
	rec.Fail("Compile PSMain", nil)

	if err := lc.Setup(); !errors.Is(err, gfx.ErrCreation) {
		t.Fatalf("Setup() error = %v, want creation error", err)
	}
	rec.Clear("Compile PSMain")
	rec.Reset()
	if err := lc.Setup(); !errors.Is(err, gfx.ErrCreation) {
		t.Fatalf("second Setup() error = %v, want the same creation error", err)
	}
	if n := rec.Count("Compile"); n != 0 {
		t.Fatalf("Setup() retried compilation")
	}
	if _, err := lc.Renderer(); !errors.Is(err, ErrNotSetup) {
		t.Fatalf("Renderer() error = %v", err)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	rec, _, lc, r := newRendering(t, 640, 480)
	r.RectFilled(gfx.Point{1, 1}, gfx.Point{5, 5}, white)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}

	lc.Close()
	for _, kind := range []string{
		"RenderTargetView", "Texture2D", "DepthStencilView", "Buffer",
		"VertexShader", "PixelShader", "InputLayout", "RasterizerState", "DepthStencilState",
	} {
		if n := rec.Live(kind); n != 0 {
			t.Errorf("%d %s live after Close", n, kind)
		}
	}
	if lc.State() != Stale {
		t.Fatalf("State() = %v, want stale", lc.State())
	}
	if err := lc.Setup(); !errors.Is(err, ErrStale) {
		t.Fatalf("Setup() after Close error = %v", err)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Stale: "stale", Bound: "bound", Failed: "failed", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestFrame(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	draw := func(r *Renderer) { r.RectFilled(gfx.Point{0, 0}, gfx.Point{10, 10}, white) }

	for i := 0; i < 3; i++ {
		if err := lc.Frame(sc, draw); err != nil {
			t.Fatalf("Frame(%d) error = %v", i, err)
		}
	}
	if n := len(sc.Device.Context.Draws); n != 3 {
		t.Fatalf("draws = %d, want 3", n)
	}
	if kind := sc.Device.Context.RTV.(*gfxtest.Object).Kind; kind != "HostRenderTargetView" {
		t.Fatalf("bound %s after Frame, want the host target", kind)
	}
	if n := rec.Created("VertexShader"); n != 1 {
		t.Errorf("vertex shader created %d times", n)
	}
}

func TestFrameRecoversFromFailure(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	draw := func(r *Renderer) { r.RectFilled(gfx.Point{0, 0}, gfx.Point{10, 10}, white) }

	next := sc.Replace(800, 600)
	rec.Fail("CreateRenderTargetView", nil)
	if err := lc.Frame(next, draw); !errors.Is(err, gfxtest.ErrInjected) {
		t.Fatalf("Frame() error = %v, want the rebuild failure", err)
	}
	if lc.State() != Stale {
		t.Fatalf("State() = %v, want stale after acknowledging", lc.State())
	}

	// The very next frame retries the rebuild.
	if err := lc.Frame(next, draw); !errors.Is(err, gfxtest.ErrInjected) {
		t.Fatalf("Frame() error = %v, want the rebuild failure again", err)
	}

	rec.Clear("CreateRenderTargetView")
	if err := lc.Frame(next, draw); err != nil {
		t.Fatalf("Frame() error = %v after the failure cleared", err)
	}
	if lc.State() != Bound {
		t.Fatalf("State() = %v, want bound", lc.State())
	}
	if len(next.Device.Context.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(next.Device.Context.Draws))
	}
}

func TestFrameFailedLifecycleRetries(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	draw := func(r *Renderer) { r.RectFilled(gfx.Point{0, 0}, gfx.Point{10, 10}, white) }

	next := sc.Replace(800, 600)
	rec.Fail("CreateRenderTargetView", nil)
	if err := lc.Update(next); err == nil {
		t.Fatal("Update() succeeded with a failing render target")
	}
	rec.Clear("CreateRenderTargetView")

	// Frame finds the lifecycle Failed and reports it once.
	if err := lc.Frame(next, draw); !errors.Is(err, ErrFailed) {
		t.Fatalf("Frame() error = %v, want %v", err, ErrFailed)
	}
	if err := lc.Frame(next, draw); err != nil {
		t.Fatalf("Frame() error = %v, want a rebuild", err)
	}
}

func TestPipelineFollowsDevice(t *testing.T) {
	rec, sc, lc := newBound(t, 640, 480)
	draw := func(r *Renderer) { r.RectFilled(gfx.Point{0, 0}, gfx.Point{10, 10}, white) }
	if err := lc.Frame(sc, draw); err != nil {
		t.Fatal(err)
	}

	// Same device, new surface: the pipeline is kept.
	if err := lc.Frame(sc.Replace(800, 600), draw); err != nil {
		t.Fatal(err)
	}
	if n := rec.Created("VertexShader"); n != 1 {
		t.Fatalf("vertex shader created %d times on the same device", n)
	}

	// A new device family: the old pipeline goes, a new one is built.
	other := gfxtest.NewSwapChain(rec, 800, 600)
	if err := lc.Frame(other, draw); err != nil {
		t.Fatal(err)
	}
	if n := rec.Created("VertexShader"); n != 2 {
		t.Fatalf("vertex shader created %d times, want 2", n)
	}
	if n := rec.Live("VertexShader"); n != 1 {
		t.Fatalf("live vertex shaders = %d, want 1", n)
	}
	if n := len(other.Device.Context.Draws); n != 1 {
		t.Fatalf("draws on the new device = %d, want 1", n)
	}
}
