package overlay

import (
	"github.com/kirides/d3doverlay/gfx"
)

// inputElements matches gfx.Vertex: float3 position followed by float4 colour.
var inputElements = []gfx.InputElementDesc{
	{SemanticName: "POSITION", Format: gfx.FormatR32G32B32Float, AlignedByteOffset: 0, InputSlotClass: gfx.PerVertexData},
	{SemanticName: "COLOR", Format: gfx.FormatR32G32B32A32Float, AlignedByteOffset: 12, InputSlotClass: gfx.PerVertexData},
}

var rasterizerDesc = gfx.RasterizerDesc{
	FillMode:        gfx.FillSolid,
	CullMode:        gfx.CullNone,
	DepthClipEnable: true,
}

// Strictly 2D: draw order decides what ends up on top.
var depthStencilDesc = gfx.DepthStencilDesc{
	DepthEnable:    false,
	DepthWriteMask: gfx.DepthWriteMaskZero,
	DepthFunc:      gfx.ComparisonAlways,
	StencilEnable:  false,
}

// Pipeline holds the overlay's fixed shader pair, input layout and fixed
// function state. It is built once per device and survives surface
// replacement as long as the new surface shares the device.
type Pipeline struct {
	vs     gfx.Handle[gfx.VertexShader]
	ps     gfx.Handle[gfx.PixelShader]
	layout gfx.Handle[gfx.InputLayout]
	raster gfx.Handle[gfx.RasterizerState]
	depth  gfx.Handle[gfx.DepthStencilState]
}

// NewPipeline compiles vs and ps and creates every pipeline object on
// device. Any failure releases what was already created and returns a
// gfx.ErrCreation error.
func NewPipeline(device gfx.Device, compiler gfx.Compiler, vs, ps ShaderSource) (p *Pipeline, err error) {
	p = &Pipeline{}
	defer func() {
		if err != nil {
			p.Release()
			p = nil
		}
	}()

	vsCode, err := compiler.Compile(vs.Source, vs.EntryPoint, vs.Target)
	if err != nil {
		return p, gfx.Creation("compile vertex shader", err)
	}
	psCode, err := compiler.Compile(ps.Source, ps.EntryPoint, ps.Target)
	if err != nil {
		return p, gfx.Creation("compile pixel shader", err)
	}

	vertex, err := device.CreateVertexShader(vsCode)
	if err != nil {
		return p, gfx.Creation("create vertex shader", err)
	}
	p.vs = gfx.Own(vertex)

	pixel, err := device.CreatePixelShader(psCode)
	if err != nil {
		return p, gfx.Creation("create pixel shader", err)
	}
	p.ps = gfx.Own(pixel)

	layout, err := device.CreateInputLayout(inputElements, vsCode)
	if err != nil {
		return p, gfx.Creation("create input layout", err)
	}
	p.layout = gfx.Own(layout)

	raster, err := device.CreateRasterizerState(rasterizerDesc)
	if err != nil {
		return p, gfx.Creation("create rasterizer state", err)
	}
	p.raster = gfx.Own(raster)

	depth, err := device.CreateDepthStencilState(depthStencilDesc)
	if err != nil {
		return p, gfx.Creation("create depth stencil state", err)
	}
	p.depth = gfx.Own(depth)

	return p, nil
}

// Bind sets the shader stages and the input layout. Rasterizer, viewport
// and topology state belong to the lifecycle.
func (p *Pipeline) Bind(ctx gfx.Context) {
	ctx.VSSetShader(p.vs.Get())
	ctx.PSSetShader(p.ps.Get())
	ctx.IASetInputLayout(p.layout.Get())
}

// Device is the identity of the device the pipeline objects belong to.
func (p *Pipeline) RasterizerState() gfx.RasterizerState { return p.raster.Get() }

func (p *Pipeline) DepthStencilState() gfx.DepthStencilState { return p.depth.Get() }

// Release drops every pipeline object.
func (p *Pipeline) Release() {
	p.depth.Release()
	p.raster.Release()
	p.layout.Release()
	p.ps.Release()
	p.vs.Release()
}
