package gfx

// Format mirrors DXGI_FORMAT.
type Format uint32

const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32Float    Format = 6
	FormatR8G8B8A8UNorm     Format = 28
	FormatR32UInt           Format = 42
	FormatD24UNormS8UInt    Format = 45
	FormatR16UInt           Format = 57
	FormatB8G8R8A8UNorm     Format = 87
)

// Usage mirrors D3D11_USAGE.
type Usage uint32

const (
	UsageDefault Usage = iota
	UsageImmutable
	UsageDynamic
	UsageStaging
)

// BindFlag mirrors D3D11_BIND_FLAG.
type BindFlag uint32

const (
	BindVertexBuffer   BindFlag = 0x1
	BindIndexBuffer    BindFlag = 0x2
	BindConstantBuffer BindFlag = 0x4
	BindShaderResource BindFlag = 0x8
	BindRenderTarget   BindFlag = 0x20
	BindDepthStencil   BindFlag = 0x40
)

// Topology mirrors D3D11_PRIMITIVE_TOPOLOGY.
type Topology uint32

const (
	TopologyUndefined    Topology = 0
	TopologyTriangleList Topology = 4
)

// FillMode mirrors D3D11_FILL_MODE.
type FillMode uint32

const (
	FillWireframe FillMode = 2
	FillSolid     FillMode = 3
)

// CullMode mirrors D3D11_CULL_MODE.
type CullMode uint32

const (
	CullNone  CullMode = 1
	CullFront CullMode = 2
	CullBack  CullMode = 3
)

// ComparisonFunc mirrors D3D11_COMPARISON_FUNC.
type ComparisonFunc uint32

const (
	ComparisonNever  ComparisonFunc = 1
	ComparisonLess   ComparisonFunc = 2
	ComparisonAlways ComparisonFunc = 8
)

// DepthWriteMask mirrors D3D11_DEPTH_WRITE_MASK.
type DepthWriteMask uint32

const (
	DepthWriteMaskZero DepthWriteMask = 0
	DepthWriteMaskAll  DepthWriteMask = 1
)

// InputClassification mirrors D3D11_INPUT_CLASSIFICATION.
type InputClassification uint32

const (
	PerVertexData   InputClassification = 0
	PerInstanceData InputClassification = 1
)

// SwapChainDesc is the part of DXGI_SWAP_CHAIN_DESC the overlay reads.
type SwapChainDesc struct {
	Width        uint32
	Height       uint32
	Format       Format
	BufferCount  uint32
	OutputWindow uintptr
	Windowed     bool
}

// Resolution returns the buffer dimensions as [width, height].
func (d SwapChainDesc) Resolution() [2]uint32 {
	return [2]uint32{d.Width, d.Height}
}

type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         Format
	SampleCount    uint32
	SampleQuality  uint32
	Usage          Usage
	BindFlags      BindFlag
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type BufferDesc struct {
	ByteWidth           uint32
	Usage               Usage
	BindFlags           BindFlag
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
}

// DepthStencilDesc leaves the per-face stencil operations at their native
// defaults (keep, always).
type DepthStencilDesc struct {
	DepthEnable      bool
	DepthWriteMask   DepthWriteMask
	DepthFunc        ComparisonFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
}

type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}
