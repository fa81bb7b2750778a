package soft

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gg"

	"github.com/kirides/d3doverlay/gfx"
)

// Context is the immediate context of a soft device.
type Context struct {
	*object

	rtv        gfx.RenderTargetView
	dsv        gfx.DepthStencilView
	topology   gfx.Topology
	viewport   gfx.Viewport
	vb         *Buffer
	stride     uint32
	vbOffset   uint32
	ib         *Buffer
	ibFormat   gfx.Format
	ibOffset   uint32
	triangles  int
	drawCalls  int
	rasterizer gfx.RasterizerState
	depth      gfx.DepthStencilState
}

// Stats returns the number of DrawIndexed calls and of triangles rasterized
// since the device was created.
func (c *Context) Stats() (drawCalls, triangles int) { return c.drawCalls, c.triangles }

func (c *Context) Viewport() gfx.Viewport { return c.viewport }

func (c *Context) Topology() gfx.Topology { return c.topology }

func (c *Context) OMGetRenderTargets() (gfx.RenderTargetView, gfx.DepthStencilView) {
	return c.rtv, c.dsv
}

func (c *Context) OMSetRenderTargets(rtv gfx.RenderTargetView, dsv gfx.DepthStencilView) {
	c.rtv, c.dsv = rtv, dsv
}

func (c *Context) OMSetDepthStencilState(state gfx.DepthStencilState, stencilRef uint32) {
	c.depth = state
}

func (c *Context) ClearRenderTargetView(rtv gfx.RenderTargetView, color gfx.Color) {
	v, ok := rtv.(*RenderTargetView)
	if !ok {
		return
	}
	v.tex.canvas.ClearWithColor(ggColor(color))
}

func (c *Context) VSSetShader(shader gfx.VertexShader)     {}
func (c *Context) PSSetShader(shader gfx.PixelShader)      {}
func (c *Context) IASetInputLayout(layout gfx.InputLayout) {}

func (c *Context) IASetPrimitiveTopology(topology gfx.Topology) { c.topology = topology }

func (c *Context) IASetVertexBuffer(slot uint32, buffer gfx.Buffer, stride, offset uint32) {
	if slot != 0 {
		return
	}
	c.vb, _ = buffer.(*Buffer)
	c.stride, c.vbOffset = stride, offset
}

func (c *Context) IASetIndexBuffer(buffer gfx.Buffer, format gfx.Format, offset uint32) {
	c.ib, _ = buffer.(*Buffer)
	c.ibFormat, c.ibOffset = format, offset
}

func (c *Context) RSSetState(state gfx.RasterizerState) { c.rasterizer = state }

func (c *Context) RSSetViewport(viewport gfx.Viewport) { c.viewport = viewport }

// DrawIndexed rasterizes indexed triangles into the bound render target.
// Only triangle lists are drawn. Out of range indices drop the triangle.
// Consecutive triangles of one colour are filled as a single path so that
// shared edges leave no seam.
func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	c.drawCalls++
	rtv, ok := c.rtv.(*RenderTargetView)
	if !ok || c.topology != gfx.TopologyTriangleList || c.vb == nil || c.ib == nil || c.stride < gfx.VertexStride {
		return
	}
	canvas := rtv.tex.canvas

	var (
		run     gfx.Color
		pending int
	)
	flush := func() {
		if pending == 0 {
			return
		}
		canvas.SetRGBA(float64(run[0]), float64(run[1]), float64(run[2]), float64(run[3]))
		if err := canvas.Fill(); err == nil {
			c.triangles += pending
		}
		pending = 0
	}

	indices := c.indices(startIndex, indexCount)
	for i := 0; i+3 <= len(indices); i += 3 {
		var tri [3]gfx.Vertex
		valid := true
		for k := range tri {
			if tri[k], valid = c.vertex(int64(indices[i+k]) + int64(baseVertex)); !valid {
				break
			}
		}
		if !valid {
			continue
		}
		if pending > 0 && tri[0].Color != run {
			flush()
		}
		run = tri[0].Color
		for k, v := range tri {
			x, y := c.toPixel(v)
			if k == 0 {
				canvas.MoveTo(x, y)
			} else {
				canvas.LineTo(x, y)
			}
		}
		canvas.ClosePath()
		pending++
	}
	flush()
}

func (c *Context) indices(start, count uint32) []uint32 {
	size := uint32(4)
	if c.ibFormat == gfx.FormatR16UInt {
		size = 2
	}
	data := c.ib.data
	first := c.ibOffset + start*size
	if first >= uint32(len(data)) {
		return nil
	}
	data = data[first:]
	n := min(count, uint32(len(data))/size)
	out := make([]uint32, n)
	for i := range out {
		if size == 2 {
			out[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		} else {
			out[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
	}
	return out
}

func (c *Context) vertex(index int64) (gfx.Vertex, bool) {
	if index < 0 {
		return gfx.Vertex{}, false
	}
	at := int64(c.vbOffset) + index*int64(c.stride)
	if at+int64(gfx.VertexStride) > int64(len(c.vb.data)) {
		return gfx.Vertex{}, false
	}
	b := c.vb.data[at:]
	f := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])) }
	var v gfx.Vertex
	v.Position[0], v.Position[1], v.Position[2] = f(0), f(1), f(2)
	v.Color[0], v.Color[1], v.Color[2], v.Color[3] = f(3), f(4), f(5), f(6)
	return v, true
}

// toPixel applies the viewport transform to a position in normalized
// device coordinates.
func (c *Context) toPixel(v gfx.Vertex) (float64, float64) {
	vp := c.viewport
	x := float64(vp.TopLeftX) + (float64(v.Position[0])+1)/2*float64(vp.Width)
	y := float64(vp.TopLeftY) + (1-float64(v.Position[1]))/2*float64(vp.Height)
	return x, y
}

func ggColor(c gfx.Color) gg.RGBA {
	return gg.RGBA{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}
