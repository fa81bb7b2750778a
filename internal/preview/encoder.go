package preview

import (
	"bytes"
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// Workaround for jpeg.Encode(), which requires a Flush()
// method to not call `bufio.NewWriter`
type bufferFlusher struct {
	bytes.Buffer
}

func (*bufferFlusher) Flush() error { return nil }

// Encoder turns frames into JPEG images, scaling wide frames down to Width
// first. An Encoder reuses its buffer and is not safe for concurrent use.
type Encoder struct {
	width uint
	opts  jpegOptions
	buf   bufferFlusher
}

// NewEncoder returns an encoder for the given JPEG quality. A zero width
// keeps the frame size.
func NewEncoder(quality int, width uint) *Encoder {
	return &Encoder{width: width, opts: jpegQuality(quality)}
}

// Encode returns the JPEG bytes of img. The slice is valid until the next
// call.
func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	if e.width > 0 && uint(img.Bounds().Dx()) > e.width {
		img = resize.Resize(e.width, 0, img, resize.Bilinear)
	}
	e.buf.Reset()
	if err := encodeJpeg(&e.buf, img, e.opts); err != nil {
		return nil, fmt.Errorf("failed to encode frame. %w", err)
	}
	return e.buf.Bytes(), nil
}
