package software

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

// drawTexture draws the src region of tex into the dst region of frame.
// src is clipped to the texture; an empty src or dst draws nothing.
func drawTexture(frame *image.RGBA, tex *image.NRGBA, src, dst geom.Rect, opts backend.CopyOptions, mode backend.BlendMode) {
	sr := src.Image().Intersect(tex.Bounds())
	if sr.Empty() || dst.Empty() {
		return
	}
	op := xdraw.Over
	if mode == backend.BlendNone {
		op = xdraw.Src
	}
	// The scale follows the requested src, so a region that runs past the
	// texture covers only the matching part of dst.
	xdraw.NearestNeighbor.Transform(frame, copyTransform(src, dst, opts), tex, sr, op, nil)
}

// copyTransform maps source pixels in src onto dst: the region is flipped,
// scaled to the destination size, rotated clockwise about the pivot and
// moved to dst's origin. The pivot defaults to dst's top-left corner.
func copyTransform(src, dst geom.Rect, opts backend.CopyOptions) f64.Aff3 {
	sw, sh := float64(src.W), float64(src.H)
	dw, dh := float64(dst.W), float64(dst.H)

	m := translate(-float64(src.X), -float64(src.Y))
	if opts.Flip&backend.FlipHorizontal != 0 {
		m = mul(f64.Aff3{-1, 0, sw, 0, 1, 0}, m)
	}
	if opts.Flip&backend.FlipVertical != 0 {
		m = mul(f64.Aff3{1, 0, 0, 0, -1, sh}, m)
	}
	m = mul(f64.Aff3{dw / sw, 0, 0, 0, dh / sh, 0}, m)

	if opts.Angle != 0 {
		var cx, cy float64
		if opts.Center != nil {
			cx, cy = float64(opts.Center.X), float64(opts.Center.Y)
		}
		// Screen y points down, so a positive angle turns clockwise.
		sin, cos := math.Sincos(opts.Angle * math.Pi / 180)
		rot := f64.Aff3{cos, -sin, 0, sin, cos, 0}
		m = mul(translate(-cx, -cy), m)
		m = mul(rot, m)
		m = mul(translate(cx, cy), m)
	}
	return mul(translate(float64(dst.X), float64(dst.Y)), m)
}

func translate(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

// mul returns a*b, the transform that applies b first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
