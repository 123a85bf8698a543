package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadRGBA_PNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	buf, err := LoadRGBA(writePNG(t, src))
	if err != nil {
		t.Fatalf("LoadRGBA() error = %v", err)
	}
	if buf.Width != 3 || buf.Height != 2 {
		t.Errorf("Dimensions = (%d, %d), want (3, 2)", buf.Width, buf.Height)
	}
	if len(buf.Pix) != 3*2*BytesPerPixel {
		t.Errorf("len(Pix) = %d, want %d", len(buf.Pix), 3*2*BytesPerPixel)
	}
	if buf.Format != "png" {
		t.Errorf("Format = %q, want %q", buf.Format, "png")
	}

	r, g, b, a := buf.At(2, 1)
	if r != 200 || g != 100 || b != 50 || a != 128 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (200, 100, 50, 128)", r, g, b, a)
	}
}

func TestDecode_BMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	var data bytes.Buffer
	if err := bmp.Encode(&data, src); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}

	buf, err := DecodeBytes(data.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if buf.Format != "bmp" {
		t.Errorf("Format = %q, want %q", buf.Format, "bmp")
	}
	r, g, b, a := buf.At(1, 2)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (10, 20, 30, 255)", r, g, b, a)
	}
}

func TestFromImage_SubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.SetNRGBA(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	sub := src.SubImage(image.Rect(4, 4, 7, 7))

	buf := FromImage(sub)
	if buf.Width != 3 || buf.Height != 3 {
		t.Fatalf("Dimensions = (%d, %d), want (3, 3)", buf.Width, buf.Height)
	}
	r, g, b, a := buf.At(1, 1)
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("Pixel = (%d, %d, %d, %d), want (1, 2, 3, 4)", r, g, b, a)
	}
}

func TestFromImage_Premultiplied(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	// Premultiplied half-transparent white.
	src.SetRGBA(0, 0, color.RGBA{R: 128, G: 128, B: 128, A: 128})

	r, g, b, a := FromImage(src).At(0, 0)
	if a != 128 {
		t.Errorf("alpha = %d, want 128", a)
	}
	if r < 254 || g < 254 || b < 254 {
		t.Errorf("Pixel = (%d, %d, %d), want un-premultiplied white", r, g, b)
	}
}

func TestLoadRGBA_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRGBA(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadRGBA(missing) error = %v, want os.ErrNotExist", err)
	}
	if _, err := LoadRGBA(garbage); !errors.Is(err, image.ErrFormat) {
		t.Errorf("LoadRGBA(garbage) error = %v, want image.ErrFormat", err)
	}
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrEmptyData", err)
	}
}
