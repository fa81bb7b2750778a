package d3d

import (
	"github.com/kirides/d3doverlay/gfx"
)

const (
	D3D11_SDK_VERSION = 7

	D3D_DRIVER_TYPE_HARDWARE = 1

	D3D_FEATURE_LEVEL_10_1 = 0xa100
	D3D_FEATURE_LEVEL_11_0 = 0xb000

	D3DCOMPILE_DEBUG             = 1 << 0
	D3DCOMPILE_SKIP_OPTIMIZATION = 1 << 2

	D3D11_USAGE_STAGING   = 3
	D3D11_CPU_ACCESS_READ = 0x20000

	D3D11_STENCIL_OP_KEEP       = 1
	D3D11_COMPARISON_ALWAYS     = 8
	D3D11_DEFAULT_STENCIL_READ  = 0xff
	D3D11_DEFAULT_STENCIL_WRITE = 0xff
)

type _D3D11_TEXTURE2D_DESC struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleDesc     _DXGI_SAMPLE_DESC
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type _D3D11_BUFFER_DESC struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

type _D3D11_SUBRESOURCE_DATA struct {
	PSysMem          uintptr
	SysMemPitch      uint32
	SysMemSlicePitch uint32
}

type _D3D11_INPUT_ELEMENT_DESC struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               uint32
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       uint32
	InstanceDataStepRate uint32
}

type _D3D11_RASTERIZER_DESC struct {
	FillMode              uint32
	CullMode              uint32
	FrontCounterClockwise int32 // BOOL
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       int32
	ScissorEnable         int32
	MultisampleEnable     int32
	AntialiasedLineEnable int32
}

type _D3D11_DEPTH_STENCILOP_DESC struct {
	StencilFailOp      uint32
	StencilDepthFailOp uint32
	StencilPassOp      uint32
	StencilFunc        uint32
}

type _D3D11_DEPTH_STENCIL_DESC struct {
	DepthEnable      int32 // BOOL
	DepthWriteMask   uint32
	DepthFunc        uint32
	StencilEnable    int32
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        _D3D11_DEPTH_STENCILOP_DESC
	BackFace         _D3D11_DEPTH_STENCILOP_DESC
}

type _D3D11_VIEWPORT struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

func boolToBOOL(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func textureDesc(d gfx.Texture2DDesc) _D3D11_TEXTURE2D_DESC {
	return _D3D11_TEXTURE2D_DESC{
		Width:          d.Width,
		Height:         d.Height,
		MipLevels:      d.MipLevels,
		ArraySize:      d.ArraySize,
		Format:         uint32(d.Format),
		SampleDesc:     _DXGI_SAMPLE_DESC{Count: max(d.SampleCount, 1), Quality: d.SampleQuality},
		Usage:          uint32(d.Usage),
		BindFlags:      uint32(d.BindFlags),
		CPUAccessFlags: d.CPUAccessFlags,
		MiscFlags:      d.MiscFlags,
	}
}

func (d *_D3D11_TEXTURE2D_DESC) gfx() gfx.Texture2DDesc {
	return gfx.Texture2DDesc{
		Width:          d.Width,
		Height:         d.Height,
		MipLevels:      d.MipLevels,
		ArraySize:      d.ArraySize,
		Format:         gfx.Format(d.Format),
		SampleCount:    d.SampleDesc.Count,
		SampleQuality:  d.SampleDesc.Quality,
		Usage:          gfx.Usage(d.Usage),
		BindFlags:      gfx.BindFlag(d.BindFlags),
		CPUAccessFlags: d.CPUAccessFlags,
		MiscFlags:      d.MiscFlags,
	}
}

func bufferDesc(d gfx.BufferDesc) _D3D11_BUFFER_DESC {
	return _D3D11_BUFFER_DESC{
		ByteWidth:           d.ByteWidth,
		Usage:               uint32(d.Usage),
		BindFlags:           uint32(d.BindFlags),
		CPUAccessFlags:      d.CPUAccessFlags,
		MiscFlags:           d.MiscFlags,
		StructureByteStride: d.StructureByteStride,
	}
}

// inputElements converts elements. The returned names back the
// SemanticName pointers and have to stay reachable for the call.
func inputElements(elements []gfx.InputElementDesc) ([]_D3D11_INPUT_ELEMENT_DESC, [][]byte) {
	out := make([]_D3D11_INPUT_ELEMENT_DESC, len(elements))
	names := make([][]byte, len(elements))
	for i, e := range elements {
		names[i] = append([]byte(e.SemanticName), 0)
		out[i] = _D3D11_INPUT_ELEMENT_DESC{
			SemanticName:         &names[i][0],
			SemanticIndex:        e.SemanticIndex,
			Format:               uint32(e.Format),
			InputSlot:            e.InputSlot,
			AlignedByteOffset:    e.AlignedByteOffset,
			InputSlotClass:       uint32(e.InputSlotClass),
			InstanceDataStepRate: e.InstanceDataStepRate,
		}
	}
	return out, names
}

func rasterizerDesc(d gfx.RasterizerDesc) _D3D11_RASTERIZER_DESC {
	return _D3D11_RASTERIZER_DESC{
		FillMode:              uint32(d.FillMode),
		CullMode:              uint32(d.CullMode),
		FrontCounterClockwise: boolToBOOL(d.FrontCounterClockwise),
		DepthBias:             d.DepthBias,
		DepthBiasClamp:        d.DepthBiasClamp,
		SlopeScaledDepthBias:  d.SlopeScaledDepthBias,
		DepthClipEnable:       boolToBOOL(d.DepthClipEnable),
		ScissorEnable:         boolToBOOL(d.ScissorEnable),
		MultisampleEnable:     boolToBOOL(d.MultisampleEnable),
		AntialiasedLineEnable: boolToBOOL(d.AntialiasedLineEnable),
	}
}

func depthStencilDesc(d gfx.DepthStencilDesc) _D3D11_DEPTH_STENCIL_DESC {
	op := _D3D11_DEPTH_STENCILOP_DESC{
		StencilFailOp:      D3D11_STENCIL_OP_KEEP,
		StencilDepthFailOp: D3D11_STENCIL_OP_KEEP,
		StencilPassOp:      D3D11_STENCIL_OP_KEEP,
		StencilFunc:        D3D11_COMPARISON_ALWAYS,
	}
	readMask, writeMask := d.StencilReadMask, d.StencilWriteMask
	if readMask == 0 {
		readMask = D3D11_DEFAULT_STENCIL_READ
	}
	if writeMask == 0 {
		writeMask = D3D11_DEFAULT_STENCIL_WRITE
	}
	return _D3D11_DEPTH_STENCIL_DESC{
		DepthEnable:      boolToBOOL(d.DepthEnable),
		DepthWriteMask:   uint32(d.DepthWriteMask),
		DepthFunc:        uint32(d.DepthFunc),
		StencilEnable:    boolToBOOL(d.StencilEnable),
		StencilReadMask:  readMask,
		StencilWriteMask: writeMask,
		FrontFace:        op,
		BackFace:         op,
	}
}

func swapChainDesc(d *_DXGI_SWAP_CHAIN_DESC) gfx.SwapChainDesc {
	return gfx.SwapChainDesc{
		Width:        d.BufferDesc.Width,
		Height:       d.BufferDesc.Height,
		Format:       gfx.Format(d.BufferDesc.Format),
		BufferCount:  d.BufferCount,
		OutputWindow: d.OutputWindow,
		Windowed:     d.Windowed != 0,
	}
}
