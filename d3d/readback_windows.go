package d3d

import (
	"fmt"
	"image"
	"unsafe"
)

// BackBufferReader copies the back-buffer of a swap chain into CPU memory,
// for example to stream what was presented.
type BackBufferReader struct {
	swapChain *SwapChain
	device    *ID3D11Device
	deviceCtx *ID3D11DeviceContext

	stagedTex  *ID3D11Texture2D
	surface    *IDXGISurface
	mappedRect DXGI_MAPPED_RECT
	size       image.Point

	needsSwizzle bool
}

// NewBackBufferReader prepares a reader for sc. The staging texture is
// created lazily and recreated when the back-buffer size changes.
func NewBackBufferReader(sc *SwapChain) (*BackBufferReader, error) {
	var dev *ID3D11Device
	hr := sc.obj.GetDevice(&iid_ID3D11Device, &dev)
	if failed(hr) {
		return nil, fmt.Errorf("failed to GetDevice. %w", _DXGI_ERROR(hr))
	}
	var deviceCtx *ID3D11DeviceContext
	dev.GetImmediateContext(&deviceCtx)
	return &BackBufferReader{swapChain: sc, device: dev, deviceCtx: deviceCtx}, nil
}

func (r *BackBufferReader) initializeStage(texture *ID3D11Texture2D) int32 {
	var hr int32
	desc := _D3D11_TEXTURE2D_DESC{}
	hr = texture.GetDesc(&desc)
	if failed(hr) {
		return hr
	}

	desc.Usage = D3D11_USAGE_STAGING
	desc.CPUAccessFlags = D3D11_CPU_ACCESS_READ
	desc.BindFlags = 0
	desc.MipLevels = 1
	desc.ArraySize = 1
	desc.MiscFlags = 0
	desc.SampleDesc.Count = 1

	hr = r.device.CreateTexture2D(&desc, &r.stagedTex)
	if failed(hr) {
		return hr
	}

	hr = r.stagedTex.QueryInterface(&iid_IDXGISurface, &r.surface)
	if failed(hr) {
		return hr
	}
	r.size = image.Pt(int(desc.Width), int(desc.Height))
	r.needsSwizzle = desc.Format == 87 // DXGI_FORMAT_B8G8R8A8_UNORM
	return 0
}

func (r *BackBufferReader) releaseStage() {
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.stagedTex != nil {
		r.stagedTex.Release()
		r.stagedTex = nil
	}
}

// Size is the size of the last read frame.
func (r *BackBufferReader) Size() image.Point { return r.size }

// GetImage copies the current back-buffer into img, reallocating img if its
// bounds do not match. It returns the image written to.
func (r *BackBufferReader) GetImage(img *image.RGBA) (*image.RGBA, error) {
	var backBuffer *ID3D11Texture2D
	hr := r.swapChain.obj.GetBuffer(0, &iid_ID3D11Texture2D, &backBuffer)
	if failed(hr) {
		return img, fmt.Errorf("failed to GetBuffer(0). %w", _DXGI_ERROR(hr))
	}
	defer backBuffer.Release()

	var desc _D3D11_TEXTURE2D_DESC
	backBuffer.GetDesc(&desc)
	if r.stagedTex == nil || r.size != image.Pt(int(desc.Width), int(desc.Height)) {
		r.releaseStage()
		hr = r.initializeStage(backBuffer)
		if failed(hr) {
			r.releaseStage()
			return img, fmt.Errorf("failed to InitializeStage. %w", _DXGI_ERROR(hr))
		}
	}

	r.deviceCtx.CopyResource2D(r.stagedTex, backBuffer)

	hr = r.surface.Map(&r.mappedRect, DXGI_MAP_READ)
	if failed(hr) {
		return img, fmt.Errorf("failed to surface.Map(...). %w", _DXGI_ERROR(hr))
	}
	defer r.surface.Unmap()

	if img == nil || img.Bounds().Size() != r.size {
		img = image.NewRGBA(image.Rectangle{Max: r.size})
	}
	rowLen := r.size.X * 4
	pitch := int(r.mappedRect.Pitch)
	src := unsafe.Slice((*byte)(unsafe.Pointer(r.mappedRect.PBits)), pitch*r.size.Y)
	for y := 0; y < r.size.Y; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		copy(row, src[y*pitch:y*pitch+rowLen])
		if r.needsSwizzle {
			for i := 0; i < rowLen; i += 4 {
				row[i], row[i+2] = row[i+2], row[i]
			}
		}
	}
	return img, nil
}

func (r *BackBufferReader) Release() {
	r.releaseStage()
	if r.deviceCtx != nil {
		r.deviceCtx.Release()
		r.deviceCtx = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}
