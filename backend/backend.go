package backend

import (
	"context"
	"errors"
	"image/color"

	"github.com/gogpu/stage/geom"
)

// Common backend errors.
var (
	// ErrNotAvailable is returned when a requested backend is not registered.
	ErrNotAvailable = errors.New("backend: not available")

	// ErrClosed is returned by operations on a backend after Close.
	ErrClosed = errors.New("backend: closed")

	// ErrInvalidSurface is returned when a surface from another backend,
	// or one that has already been freed, is passed in.
	ErrInvalidSurface = errors.New("backend: invalid surface")

	// ErrInvalidTexture is returned when a texture from another backend,
	// or one that has already been destroyed, is passed in.
	ErrInvalidTexture = errors.New("backend: invalid texture")

	// ErrInvalidFont is returned when a font from another text renderer,
	// or one that has already been closed, is passed in.
	ErrInvalidFont = errors.New("backend: invalid font")

	// ErrInvalidPixels is returned by CreateSurface when the pixel buffer
	// does not hold exactly width*height RGBA pixels.
	ErrInvalidPixels = errors.New("backend: pixel buffer does not match dimensions")
)

// BlendMode selects how draw calls are composited onto the frame.
type BlendMode uint8

const (
	// BlendNone overwrites destination pixels.
	BlendNone BlendMode = iota
	// BlendAlpha performs source-over alpha blending.
	BlendAlpha
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "none"
	case BlendAlpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// Flip is a bit set of mirror operations applied by Copy.
type Flip uint8

const (
	FlipNone       Flip = 0
	FlipHorizontal Flip = 1 << 0
	FlipVertical   Flip = 1 << 1
)

// CopyOptions carries the optional transform of a Copy call.
type CopyOptions struct {
	// Flip mirrors the source before it is placed.
	Flip Flip

	// Angle is the clockwise rotation in degrees.
	Angle float64

	// Center is the rotation pivot relative to the top-left of the
	// destination rectangle. Nil rotates around that top-left corner.
	Center *geom.Point
}

// Surface is CPU-side pixel memory owned by a backend.
// The caller that created it must call Free exactly once.
type Surface interface {
	Size() (w, h int)
	Free()
}

// Texture is a drawable backend resource.
// The caller that created it must call Destroy exactly once.
type Texture interface {
	Size() (w, h int)
	Destroy() error
}

// Font is an opened font face at a fixed point size.
type Font interface {
	Close() error
}

// Backend is the capability set the renderer needs from a native
// graphics library. It is bound to a single window for its lifetime.
//
// Implementations are not required to be safe for concurrent use;
// the renderer calls them from one goroutine.
type Backend interface {
	// Name returns the backend identifier (e.g. "software", "sdl").
	Name() string

	// WindowSize returns the size of the window in pixels.
	WindowSize() (w, h int)

	// SetBlendMode sets the blend mode used by Clear and Copy.
	SetBlendMode(mode BlendMode) error

	// CreateSurface copies pix into a new surface. pix holds width*height
	// pixels, 4 bytes each, in R, G, B, A order, non-premultiplied,
	// with a stride of 4*width.
	CreateSurface(pix []byte, width, height int) (Surface, error)

	// CreateTextureFromSurface uploads a surface into a texture.
	// The surface stays owned by the caller.
	CreateTextureFromSurface(s Surface) (Texture, error)

	// Copy draws the src region of tex into the dst region of the frame,
	// in screen coordinates.
	Copy(tex Texture, src, dst geom.Rect, opts CopyOptions) error

	// SetDrawColor sets the color used by Clear.
	SetDrawColor(c color.RGBA) error

	// Clear fills the frame with the draw color.
	Clear() error

	// Present shows the frame.
	Present() error

	// Text returns the text renderer bound to this backend.
	Text() TextRenderer

	// Close releases the window and every resource the backend still owns.
	Close() error
}

// TextRenderer rasterizes strings into surfaces.
type TextRenderer interface {
	// Init prepares the text library. It must succeed before OpenFont.
	Init() error

	// OpenFont opens the font file at path with the given point size.
	OpenFont(path string, size int) (Font, error)

	// RenderText renders s in color c with alpha-blended edges.
	RenderText(f Font, s string, c color.RGBA) (Surface, error)

	// Quit shuts the text library down.
	Quit() error
}

// Looper is implemented by backends that own the frame loop.
//
// Run calls frame once per display frame until frame returns an error,
// the window is closed, or ctx is done. A nil return means the loop ended
// normally.
type Looper interface {
	Run(ctx context.Context, frame func() error) error
}

// Config describes the window a backend opens.
type Config struct {
	Title  string
	Width  int
	Height int
}

// DefaultConfig returns an 800x600 window titled "stage".
func DefaultConfig() Config {
	return Config{Title: "stage", Width: 800, Height: 600}
}
