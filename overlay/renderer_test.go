package overlay

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/internal/gfxtest"
)

func TestToNDC(t *testing.T) {
	res := [2]uint32{200, 100}
	tests := []struct {
		in   gfx.Point
		want [2]float32
	}{
		{gfx.Point{0, 0}, [2]float32{-1, 1}},
		{gfx.Point{200, 100}, [2]float32{1, -1}},
		{gfx.Point{100, 50}, [2]float32{0, 0}},
		{gfx.Point{50, 75}, [2]float32{-0.5, -0.5}},
	}
	for _, tt := range tests {
		got := ToNDC(tt.in, res)
		if !near(got[0], tt.want[0]) || !near(got[1], tt.want[1]) || got[2] != 0 {
			t.Errorf("ToNDC(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLineCounts(t *testing.T) {
	_, _, _, r := newRendering(t, 200, 100)

	segments := [][2]gfx.Point{
		{{0, 0}, {10, 0}},
		{{5, 5}, {5, 5}}, // degenerate
		{{0, 0}, {0, 10}},
		{{3, 4}, {30, 40}},
		{{7, 7}, {7, 7}}, // degenerate
	}
	for _, s := range segments {
		r.Line(s[0], s[1], white, 2)
	}
	v, i := r.Pending()
	if v != 4*3 || i != 6*3 {
		t.Fatalf("Pending() = %d, %d, want 12, 18", v, i)
	}

	_, indices := r.Batch()
	for k := 0; k < 3; k++ {
		base := uint32(4 * k)
		want := []uint32{base, base + 1, base + 2, base, base + 2, base + 3}
		for j, idx := range indices[6*k : 6*k+6] {
			if idx != want[j] {
				t.Fatalf("segment %d indices = %v, want %v", k, indices[6*k:6*k+6], want)
			}
		}
	}
}

func TestLineGeometry(t *testing.T) {
	_, _, _, r := newRendering(t, 200, 100)
	red := gfx.Color{1, 0, 0, 1}

	// Horizontal line 4 pixels thick: the quad spans y 8..12.
	r.Line(gfx.Point{20, 10}, gfx.Point{120, 10}, red, 4)
	vertices, _ := r.Batch()
	want := []gfx.Point{{20, 8}, {120, 8}, {120, 12}, {20, 12}}
	for i, v := range vertices {
		ndc := ToNDC(want[i], [2]uint32{200, 100})
		nearVec(t, "vertex position", v.Position[:], ndc[:])
		if v.Color != red {
			t.Fatalf("vertex %d color = %v", i, v.Color)
		}
	}
}

func TestRectCounts(t *testing.T) {
	_, _, _, r := newRendering(t, 200, 100)
	r.Rect(gfx.Point{0, 0}, gfx.Point{100, 50}, white, 1)
	if v, i := r.Pending(); v != 16 || i != 24 {
		t.Fatalf("Pending() = %d, %d, want 16, 24", v, i)
	}
}

func TestRectFilledCounts(t *testing.T) {
	boxes := [][2]gfx.Point{
		{{0, 0}, {100, 50}},
		{{0, 0}, {2000, 1000}},
		{{40, 40}, {40, 40}},
	}
	for _, box := range boxes {
		_, _, _, r := newRendering(t, 200, 100)
		r.RectFilled(box[0], box[1], white)
		if v, i := r.Pending(); v != 4 || i != 6 {
			t.Errorf("RectFilled(%v) Pending() = %d, %d, want 4, 6", box, v, i)
		}
	}
}

func TestRectFilledCorners(t *testing.T) {
	_, _, _, r := newRendering(t, 200, 100)
	r.RectFilled(gfx.Point{0, 0}, gfx.Point{200, 100}, white)
	vertices, _ := r.Batch()
	want := [][]float32{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
	for i, v := range vertices {
		nearVec(t, "corner", v.Position[:2], want[i])
	}
}

func TestFlushEmptyIsNoop(t *testing.T) {
	rec, _, _, r := newRendering(t, 200, 100)
	rec.Reset()

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	for _, prefix := range []string{"CreateBuffer", "IASet", "DrawIndexed", "Release"} {
		if n := rec.Count(prefix); n != 0 {
			t.Errorf("empty Flush() issued %d %s calls", n, prefix)
		}
	}
}

func TestFlush(t *testing.T) {
	rec, sc, _, r := newRendering(t, 200, 100)
	ctx := sc.Device.Context
	overlayRTV := ctx.RTV

	r.Line(gfx.Point{0, 0}, gfx.Point{50, 50}, white, 1)
	r.RectFilled(gfx.Point{10, 10}, gfx.Point{20, 20}, gfx.Color{0, 0, 1, 1})
	wantVertices, wantIndices := r.Pending()

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if v, i := r.Pending(); v != 0 || i != 0 {
		t.Fatalf("Pending() after Flush = %d, %d", v, i)
	}
	if len(ctx.Draws) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(ctx.Draws))
	}
	d := ctx.Draws[0]
	if d.IndexCount != uint32(wantIndices) || d.StartIndex != 0 || d.BaseVertex != 0 {
		t.Errorf("DrawIndexed(%d, %d, %d)", d.IndexCount, d.StartIndex, d.BaseVertex)
	}
	if d.Target != overlayRTV {
		t.Errorf("drew into %v, want the overlay target", d.Target)
	}
	if d.IndexFormat != gfx.FormatR32UInt || d.Stride != gfx.VertexStride {
		t.Errorf("index format %v stride %d", d.IndexFormat, d.Stride)
	}
	if d.Vertices.Desc.Usage != gfx.UsageImmutable || d.Vertices.Desc.BindFlags != gfx.BindVertexBuffer {
		t.Errorf("vertex buffer desc = %+v", d.Vertices.Desc)
	}
	if d.Indices.Desc.Usage != gfx.UsageImmutable || d.Indices.Desc.BindFlags != gfx.BindIndexBuffer {
		t.Errorf("index buffer desc = %+v", d.Indices.Desc)
	}
	if got := len(d.Vertices.Data); got != wantVertices*int(gfx.VertexStride) {
		t.Errorf("vertex data = %d bytes", got)
	}
	if got := len(d.Indices.Data); got != wantIndices*4 {
		t.Errorf("index data = %d bytes", got)
	}

	// Indices stay below the vertex count and keep emission order.
	for k := 0; k < wantIndices; k++ {
		idx := binary.LittleEndian.Uint32(d.Indices.Data[4*k:])
		if idx >= uint32(wantVertices) {
			t.Fatalf("index %d = %d out of range", k, idx)
		}
	}
	// The filled rect came second, so its colour lives in the last vertex.
	last := d.Vertices.Data[len(d.Vertices.Data)-16:]
	if b := math.Float32frombits(binary.LittleEndian.Uint32(last[8:])); b != 1 {
		t.Errorf("last vertex blue = %v, want 1", b)
	}

	if ctx.RTV.(*gfxtest.Object).Kind != "HostRenderTargetView" {
		t.Errorf("host target not restored after Flush, bound %v", ctx.RTV)
	}
	if n := rec.Live("Buffer"); n != 2 {
		t.Errorf("live buffers = %d, want 2", n)
	}
}

func TestFlushReplacesBuffers(t *testing.T) {
	rec, sc, lc, _ := newRendering(t, 200, 100)
	for frame := 0; frame < 5; frame++ {
		r, err := lc.Renderer()
		if err != nil {
			t.Fatal(err)
		}
		r.RectFilled(gfx.Point{0, 0}, gfx.Point{1, 1}, white)
		if err := r.Flush(); err != nil {
			t.Fatal(err)
		}
		if n := rec.Live("Buffer"); n != 2 {
			t.Fatalf("frame %d: live buffers = %d, want 2", frame, n)
		}
	}
	if n := len(sc.Device.Context.Draws); n != 5 {
		t.Fatalf("draws = %d, want 5", n)
	}
}

func TestFlushCreationFailureKeepsBatch(t *testing.T) {
	rec, sc, _, r := newRendering(t, 200, 100)
	r.Line(gfx.Point{0, 0}, gfx.Point{10, 0}, white, 1)
	rec.Fail("CreateBuffer", nil)

	err := r.Flush()
	if !errors.Is(err, gfx.ErrCreation) {
		t.Fatalf("Flush() error = %v, want creation error", err)
	}
	if v, i := r.Pending(); v != 4 || i != 6 {
		t.Fatalf("Pending() = %d, %d, want the batch kept", v, i)
	}
	if n := rec.Count("DrawIndexed"); n != 0 {
		t.Fatalf("DrawIndexed issued after failed upload")
	}
	if sc.Device.Context.RTV.(*gfxtest.Object).Kind != "HostRenderTargetView" {
		t.Fatal("host target not restored after failed Flush")
	}

	rec.Clear("CreateBuffer")
	r.SetOwnRender()
	if err := r.Flush(); err != nil {
		t.Fatalf("retry Flush() error = %v", err)
	}
	if n := rec.Count("DrawIndexed"); n != 1 {
		t.Fatalf("DrawIndexed issued %d times", n)
	}
}

func TestNDCFixedAtEmission(t *testing.T) {
	_, sc, lc, r := newRendering(t, 200, 100)
	r.RectFilled(gfx.Point{100, 50}, gfx.Point{200, 100}, white)
	before, _ := r.Batch()
	first := before[0].Position

	// A new surface gets a new renderer; the old batch keeps its mapping.
	if err := lc.Update(sc.Replace(400, 200)); err != nil {
		t.Fatal(err)
	}
	nearVec(t, "batched vertex", first[:2], []float32{0, 0})

	if err := lc.Setup(); err != nil {
		t.Fatal(err)
	}
	r2, err := lc.Renderer()
	if err != nil {
		t.Fatal(err)
	}
	if r2.Resolution() != [2]uint32{400, 200} {
		t.Fatalf("Resolution() = %v", r2.Resolution())
	}
	r2.RectFilled(gfx.Point{100, 50}, gfx.Point{200, 100}, white)
	after, _ := r2.Batch()
	nearVec(t, "new vertex", after[0].Position[:2], []float32{-0.5, 0.5})
}

func TestClear(t *testing.T) {
	rec, sc, _, r := newRendering(t, 200, 100)
	bg := gfx.RGBA(0, 0, 0, 128)
	r.Line(gfx.Point{0, 0}, gfx.Point{1, 1}, white, 1)
	rec.Reset()

	r.Clear(bg)
	if got := sc.Device.Context.Clears; len(got) != 1 || got[0] != bg {
		t.Fatalf("Clears = %v", got)
	}
	if n := rec.Count("ClearRenderTargetView RenderTargetView#"); n != 1 {
		t.Fatalf("clear did not target the overlay view: %v", rec.Calls)
	}
	if v, _ := r.Pending(); v != 4 {
		t.Fatal("Clear touched the pending batch")
	}
}

func TestSetRenderTargets(t *testing.T) {
	rec, sc, _, r := newRendering(t, 200, 100)
	ctx := sc.Device.Context
	if ctx.RTV.(*gfxtest.Object).Kind != "RenderTargetView" {
		t.Fatalf("Renderer() did not bind the overlay target")
	}
	rec.Reset()
	r.SetOwnRender()
	if n := rec.Count("OMSetRenderTargets"); n != 0 {
		t.Fatalf("rebinding a bound target issued %d calls", n)
	}
	r.SetHostRender()
	if ctx.RTV.(*gfxtest.Object).Kind != "HostRenderTargetView" || ctx.DSV.(*gfxtest.Object).Kind != "HostDepthStencilView" {
		t.Fatalf("SetHostRender bound %v %v", ctx.RTV, ctx.DSV)
	}
	r.Discard()
}
