// Package imageio decodes image files into tightly packed RGBA8 buffers.
//
// PNG, JPEG and GIF come from the standard library; BMP, TIFF and WebP are
// registered from golang.org/x/image.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// BytesPerPixel is the size of one pixel in a decoded buffer.
const BytesPerPixel = 4

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrEmptyImage is returned when an image decodes to zero pixels.
	ErrEmptyImage = errors.New("imageio: image has no pixels")
)

// RGBA is a decoded image: Width*Height pixels, 4 bytes each in R, G, B, A
// order, non-premultiplied, rows packed with a stride of 4*Width.
type RGBA struct {
	Pix    []byte
	Width  int
	Height int
	Format string
}

// Stride returns the number of bytes per row.
func (b *RGBA) Stride() int {
	return b.Width * BytesPerPixel
}

// At returns the pixel at (x, y).
func (b *RGBA) At(x, y int) (r, g, bl, a uint8) {
	off := y*b.Stride() + x*BytesPerPixel
	p := b.Pix[off : off+4 : off+4]
	return p[0], p[1], p[2], p[3]
}

// LoadRGBA reads the file at path fully into memory and decodes it.
// The format is detected from the content, not the extension.
func LoadRGBA(path string) (*RGBA, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: read file: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image, auto-detecting the format.
func DecodeBytes(data []byte) (*RGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	buf := FromImage(img)
	if buf.Width == 0 || buf.Height == 0 {
		return nil, ErrEmptyImage
	}
	buf.Format = format
	return buf, nil
}

// FromImage converts any image.Image to a packed RGBA8 buffer.
func FromImage(img image.Image) *RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	stride := width * BytesPerPixel

	// Fast path for NRGBA images, which is what PNG yields for
	// images with an alpha channel.
	if nrgba, ok := img.(*image.NRGBA); ok {
		pix := make([]byte, stride*height)
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*stride:], nrgba.Pix[srcStart:srcStart+stride])
		}
		return &RGBA{Pix: pix, Width: width, Height: height}
	}

	// Generic path: draw.Draw un-premultiplies into NRGBA.
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &RGBA{Pix: dst.Pix, Width: width, Height: height}
}
