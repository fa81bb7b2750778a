//go:build !libjpeg

package preview

import (
	"image"
	"image/jpeg"
	"io"
)

type jpegOptions = *jpeg.Options

func jpegQuality(q int) jpegOptions {
	return &jpeg.Options{Quality: q}
}

func encodeJpeg(w io.Writer, src image.Image, opts jpegOptions) error {
	return jpeg.Encode(w, src, opts)
}
