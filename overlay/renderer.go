package overlay

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kirides/d3doverlay/gfx"
)

// IndexFormat is the only index format the renderer emits. Indices are
// always 32-bit, so there is no 16-bit path.
const IndexFormat = gfx.FormatR32UInt

// Renderer batches 2D primitives and draws each batch with a single
// indexed draw call.
//
// Primitive calls only append to the pending batch. Positions are converted
// to normalized device coordinates when they are appended, so a later
// resolution change does not move already batched geometry.
type Renderer struct {
	device     gfx.Device
	context    gfx.Context
	targets    *Targets
	resolution [2]uint32

	vertexBuffer gfx.Handle[gfx.Buffer]
	indexBuffer  gfx.Handle[gfx.Buffer]
	vertexCount  uint32
	indexCount   uint32

	vertices []gfx.Vertex
	indices  []uint32
}

func newRenderer(device gfx.Device, context gfx.Context, targets *Targets, resolution [2]uint32) *Renderer {
	return &Renderer{
		device:     device,
		context:    context,
		targets:    targets,
		resolution: resolution,
	}
}

// Resolution is the screen size primitives are mapped against.
func (r *Renderer) Resolution() [2]uint32 { return r.resolution }

// Pending returns the number of batched vertices and indices.
func (r *Renderer) Pending() (vertices, indices int) {
	return len(r.vertices), len(r.indices)
}

// Batch exposes the pending batch. The slices are only valid until the
// next primitive call or Flush.
func (r *Renderer) Batch() ([]gfx.Vertex, []uint32) { return r.vertices, r.indices }

// Discard drops the pending batch without drawing it.
func (r *Renderer) Discard() {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// SetOwnRender binds the overlay render target so that Clear and Flush land
// in it.
func (r *Renderer) SetOwnRender() { r.targets.BindOverlay() }

// SetHostRender binds the host's render target again.
func (r *Renderer) SetHostRender() { r.targets.BindHost() }

// Clear fills the overlay render target with c. It takes effect
// immediately and does not touch the pending batch.
func (r *Renderer) Clear(c gfx.Color) {
	r.context.ClearRenderTargetView(r.targets.renderTarget(), c)
}

// Line appends a segment from start to end as a quad of the given pixel
// thickness. A zero length segment appends nothing.
func (r *Renderer) Line(start, end gfx.Point, c gfx.Color, thickness float32) {
	dir := end.Sub(start)
	length := dir.Len()
	if length == 0 {
		return
	}
	offset := mgl32.Vec2{-dir[1], dir[0]}.Mul(thickness / 2 / length)

	r.quad(
		start.Sub(offset),
		end.Sub(offset),
		end.Add(offset),
		start.Add(offset),
		c,
	)
}

// Rect appends the outline of the box spanned by start and end as four
// lines. Corners are not mitered.
func (r *Renderer) Rect(start, end gfx.Point, c gfx.Color, thickness float32) {
	topLeft := start
	topRight := gfx.Point{end[0], start[1]}
	bottomRight := end
	bottomLeft := gfx.Point{start[0], end[1]}

	r.Line(topLeft, topRight, c, thickness)
	r.Line(topRight, bottomRight, c, thickness)
	r.Line(bottomRight, bottomLeft, c, thickness)
	r.Line(bottomLeft, topLeft, c, thickness)
}

// RectFilled appends the box spanned by start and end as one quad, even
// when the box has no area.
func (r *Renderer) RectFilled(start, end gfx.Point, c gfx.Color) {
	r.quad(
		start,
		gfx.Point{end[0], start[1]},
		end,
		gfx.Point{start[0], end[1]},
		c,
	)
}

func (r *Renderer) quad(p0, p1, p2, p3 gfx.Point, c gfx.Color) {
	base := uint32(len(r.vertices))
	r.vertices = append(r.vertices,
		gfx.Vertex{Position: r.toNDC(p0), Color: c},
		gfx.Vertex{Position: r.toNDC(p1), Color: c},
		gfx.Vertex{Position: r.toNDC(p2), Color: c},
		gfx.Vertex{Position: r.toNDC(p3), Color: c},
	)
	r.indices = append(r.indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// toNDC maps a pixel position, origin top-left, to normalized device
// coordinates with Y pointing up.
func (r *Renderer) toNDC(p gfx.Point) mgl32.Vec3 {
	return ToNDC(p, r.resolution)
}

// ToNDC maps pixel position p on a screen of the given resolution to
// normalized device coordinates.
func ToNDC(p gfx.Point, resolution [2]uint32) mgl32.Vec3 {
	x := 2*p[0]/float32(resolution[0]) - 1
	y := 1 - 2*p[1]/float32(resolution[1])
	return mgl32.Vec3{x, y, 0}
}

// Flush uploads the pending batch into fresh immutable buffers, draws it
// with one indexed draw call and clears it. An empty batch issues no
// buffer or draw calls. Either way the host render target is bound again
// when Flush returns.
//
// If a buffer cannot be created the batch is kept and a gfx.ErrCreation
// error is returned.
func (r *Renderer) Flush() error {
	defer r.targets.BindHost()

	if len(r.vertices) == 0 || len(r.indices) == 0 {
		return nil
	}

	r.releaseBuffers()

	vertexBytes := gfx.VertexBytes(r.vertices)
	vb, err := r.device.CreateBuffer(gfx.BufferDesc{
		ByteWidth: uint32(len(vertexBytes)),
		Usage:     gfx.UsageImmutable,
		BindFlags: gfx.BindVertexBuffer,
	}, vertexBytes)
	if err != nil {
		return gfx.Creation("create vertex buffer", err)
	}
	r.vertexBuffer = gfx.Own(vb)

	indexBytes := gfx.IndexBytes(r.indices)
	ib, err := r.device.CreateBuffer(gfx.BufferDesc{
		ByteWidth: uint32(len(indexBytes)),
		Usage:     gfx.UsageImmutable,
		BindFlags: gfx.BindIndexBuffer,
	}, indexBytes)
	if err != nil {
		r.releaseBuffers()
		return gfx.Creation("create index buffer", err)
	}
	r.indexBuffer = gfx.Own(ib)

	r.vertexCount = uint32(len(r.vertices))
	r.indexCount = uint32(len(r.indices))

	r.context.IASetVertexBuffer(0, r.vertexBuffer.Get(), gfx.VertexStride, 0)
	r.context.IASetIndexBuffer(r.indexBuffer.Get(), IndexFormat, 0)
	r.context.DrawIndexed(r.indexCount, 0, 0)

	r.Discard()
	return nil
}

func (r *Renderer) releaseBuffers() {
	r.vertexBuffer.Release()
	r.indexBuffer.Release()
	r.vertexCount, r.indexCount = 0, 0
}

// release drops the GPU buffers of the last flush and the pending batch.
func (r *Renderer) release() {
	r.releaseBuffers()
	r.Discard()
}
