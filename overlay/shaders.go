package overlay

import (
	_ "embed"
)

// ShaderSource is a shader program together with its entry point and
// target profile.
type ShaderSource struct {
	Source     []byte
	EntryPoint string
	Target     string
}

var (
	//go:embed shaders/overlay_vs.hlsl
	vertexShaderHLSL []byte
	//go:embed shaders/overlay_ps.hlsl
	pixelShaderHLSL []byte
)

// VertexShader passes position and colour through unchanged.
var VertexShader = ShaderSource{Source: vertexShaderHLSL, EntryPoint: "VSMain", Target: "vs_5_0"}

// PixelShader outputs the interpolated vertex colour.
var PixelShader = ShaderSource{Source: pixelShaderHLSL, EntryPoint: "PSMain", Target: "ps_5_0"}
