package overlay

import (
	"math"
	"testing"

	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/internal/gfxtest"
)

func newBound(t *testing.T, w, h uint32) (*gfxtest.Recorder, *gfxtest.SwapChain, *Lifecycle) {
	t.Helper()
	rec := gfxtest.NewRecorder()
	sc := gfxtest.NewSwapChain(rec, w, h)
	lc, err := New(sc, gfxtest.Compiler{Rec: rec})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return rec, sc, lc
}

func newRendering(t *testing.T, w, h uint32) (*gfxtest.Recorder, *gfxtest.SwapChain, *Lifecycle, *Renderer) {
	t.Helper()
	rec, sc, lc := newBound(t, w, h)
	if err := lc.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	r, err := lc.Renderer()
	if err != nil {
		t.Fatalf("Renderer() error = %v", err)
	}
	return rec, sc, lc, r
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func nearVec(t *testing.T, what string, got, want []float32) {
	t.Helper()
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("%s = %v, want %v", what, got, want)
		}
	}
}

var white = gfx.Color{1, 1, 1, 1}
