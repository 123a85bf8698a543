package stage

import (
	"image/color"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

// Rect is a public alias for geom.Rect. It is used in both world space and
// screen space; the Camera is the only translator between the two.
type Rect = geom.Rect

// Point is a public alias for geom.Point.
type Point = geom.Point

// Color is an RGBA color with 0-255 channels.
type Color = color.RGBA

// Flip selects mirroring for RenderTexture.
type Flip = backend.Flip

// Flip values.
const (
	FlipNone       = backend.FlipNone
	FlipHorizontal = backend.FlipHorizontal
	FlipVertical   = backend.FlipVertical
)

// White is the default HUD text color.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// Transform is the optional flip and rotation of a RenderTexture call.
// The zero value draws the texture as-is.
type Transform struct {
	Flip Flip

	// Angle is the clockwise rotation in degrees.
	Angle float64

	// Center is the rotation pivot relative to the top-left of the
	// destination rectangle. Nil rotates around that top-left corner.
	Center *Point
}

func (tf Transform) copyOptions() backend.CopyOptions {
	return backend.CopyOptions{Flip: tf.Flip, Angle: tf.Angle, Center: tf.Center}
}
