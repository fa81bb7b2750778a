package gfxtest

import (
	"github.com/kirides/d3doverlay/gfx"
)

// Draw is one recorded DrawIndexed together with the buffers bound at the
// time of the call.
type Draw struct {
	IndexCount  uint32
	StartIndex  uint32
	BaseVertex  int32
	Vertices    *Buffer
	Indices     *Buffer
	IndexFormat gfx.Format
	Stride      uint32
	Target      gfx.RenderTargetView
}

// Context is a fake immediate context that tracks bound state.
type Context struct {
	*Object

	RTV         gfx.RenderTargetView
	DSV         gfx.DepthStencilView
	DepthState  gfx.DepthStencilState
	Rasterizer  gfx.RasterizerState
	VS          gfx.VertexShader
	PS          gfx.PixelShader
	Layout      gfx.InputLayout
	Topology    gfx.Topology
	Viewport    gfx.Viewport
	VB          gfx.Buffer
	Stride      uint32
	IB          gfx.Buffer
	IndexFormat gfx.Format
	Clears      []gfx.Color
	Draws       []Draw
}

func (c *Context) OMGetRenderTargets() (gfx.RenderTargetView, gfx.DepthStencilView) {
	c.rec.record("OMGetRenderTargets")
	return c.RTV, c.DSV
}

func (c *Context) OMSetRenderTargets(rtv gfx.RenderTargetView, dsv gfx.DepthStencilView) {
	c.rec.record("OMSetRenderTargets %s %s", name(rtv), name(dsv))
	c.RTV, c.DSV = rtv, dsv
}

func (c *Context) OMSetDepthStencilState(state gfx.DepthStencilState, stencilRef uint32) {
	c.rec.record("OMSetDepthStencilState %s %d", name(state), stencilRef)
	c.DepthState = state
}

func (c *Context) ClearRenderTargetView(rtv gfx.RenderTargetView, color gfx.Color) {
	c.rec.record("ClearRenderTargetView %s %v", name(rtv), color)
	c.Clears = append(c.Clears, color)
}

func (c *Context) VSSetShader(shader gfx.VertexShader) {
	c.rec.record("VSSetShader %s", name(shader))
	c.VS = shader
}

func (c *Context) PSSetShader(shader gfx.PixelShader) {
	c.rec.record("PSSetShader %s", name(shader))
	c.PS = shader
}

func (c *Context) IASetInputLayout(layout gfx.InputLayout) {
	c.rec.record("IASetInputLayout %s", name(layout))
	c.Layout = layout
}

func (c *Context) IASetPrimitiveTopology(topology gfx.Topology) {
	c.rec.record("IASetPrimitiveTopology %d", topology)
	c.Topology = topology
}

func (c *Context) IASetVertexBuffer(slot uint32, buffer gfx.Buffer, stride, offset uint32) {
	c.rec.record("IASetVertexBuffer %d %s %d %d", slot, name(buffer), stride, offset)
	c.VB, c.Stride = buffer, stride
}

func (c *Context) IASetIndexBuffer(buffer gfx.Buffer, format gfx.Format, offset uint32) {
	c.rec.record("IASetIndexBuffer %s %d %d", name(buffer), format, offset)
	c.IB, c.IndexFormat = buffer, format
}

func (c *Context) RSSetState(state gfx.RasterizerState) {
	c.rec.record("RSSetState %s", name(state))
	c.Rasterizer = state
}

func (c *Context) RSSetViewport(viewport gfx.Viewport) {
	c.rec.record("RSSetViewport %v", viewport)
	c.Viewport = viewport
}

func (c *Context) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	c.rec.record("DrawIndexed %d %d %d", indexCount, startIndex, baseVertex)
	d := Draw{
		IndexCount:  indexCount,
		StartIndex:  startIndex,
		BaseVertex:  baseVertex,
		IndexFormat: c.IndexFormat,
		Stride:      c.Stride,
		Target:      c.RTV,
	}
	d.Vertices, _ = c.VB.(*Buffer)
	d.Indices, _ = c.IB.(*Buffer)
	c.Draws = append(c.Draws, d)
}
