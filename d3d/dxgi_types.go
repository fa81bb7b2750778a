package d3d

type _DXGI_RATIONAL struct {
	Numerator   uint32
	Denominator uint32
}
type _DXGI_MODE_DESC struct {
	Width            uint32
	Height           uint32
	Rational         _DXGI_RATIONAL
	Format           uint32 // DXGI_FORMAT
	ScanlineOrdering uint32 // DXGI_MODE_SCANLINE_ORDER
	Scaling          uint32 // DXGI_MODE_SCALING
}

type _DXGI_SAMPLE_DESC struct {
	Count   uint32
	Quality uint32
}

type _DXGI_SWAP_CHAIN_DESC struct {
	BufferDesc   _DXGI_MODE_DESC
	SampleDesc   _DXGI_SAMPLE_DESC
	BufferUsage  uint32
	BufferCount  uint32
	OutputWindow uintptr // HWND
	Windowed     int32   // BOOL
	SwapEffect   uint32  // DXGI_SWAP_EFFECT
	Flags        uint32
}

type DXGI_MAPPED_RECT struct {
	Pitch int32
	PBits uintptr
}

const (
	DXGI_MAP_READ = 1 << 0

	DXGI_USAGE_RENDER_TARGET_OUTPUT = 0x20

	DXGI_SWAP_EFFECT_DISCARD = 0

	DXGI_SWAP_CHAIN_FLAG_ALLOW_MODE_SWITCH = 2
)
