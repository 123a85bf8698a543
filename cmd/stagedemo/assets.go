package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"
)

func writeDefaultFont(dir string) (string, error) {
	path := filepath.Join(dir, "goregular.ttf")
	return path, os.WriteFile(path, goregular.TTF, 0o600)
}

func writeIcon(dir, name string, img image.Image) (path string, err error) {
	path = filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return path, png.Encode(f, img)
}

// heartImage draws a red heart on a transparent size x size canvas.
func heartImage(size int) image.Image {
	s := float32(size)
	z := vector.NewRasterizer(size, size)
	z.MoveTo(s*0.5, s*0.9)
	z.CubeTo(s*0.05, s*0.6, s*0.0, s*0.2, s*0.28, s*0.12)
	z.CubeTo(s*0.42, s*0.08, s*0.5, s*0.2, s*0.5, s*0.28)
	z.CubeTo(s*0.5, s*0.2, s*0.58, s*0.08, s*0.72, s*0.12)
	z.CubeTo(s*1.0, s*0.2, s*0.95, s*0.6, s*0.5, s*0.9)
	z.ClosePath()
	return fill(z, size, color.NRGBA{R: 220, G: 30, B: 50, A: 255})
}

// bombImage draws a dark disc with a short fuse.
func bombImage(size int) image.Image {
	s := float32(size)
	z := vector.NewRasterizer(size, size)
	const steps = 32
	cx, cy, r := s*0.5, s*0.55, s*0.4
	for i := range steps {
		a := 2 * math.Pi * float64(i) / steps
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.MoveTo(s*0.48, s*0.2)
	z.LineTo(s*0.6, s*0.02)
	z.LineTo(s*0.66, s*0.05)
	z.LineTo(s*0.54, s*0.2)
	z.ClosePath()
	return fill(z, size, color.NRGBA{R: 40, G: 40, B: 48, A: 255})
}

func fill(z *vector.Rasterizer, size int, c color.NRGBA) image.Image {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	img := image.NewNRGBA(mask.Bounds())
	draw.DrawMask(img, img.Bounds(), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Src)
	return img
}
