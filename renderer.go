package stage

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/message"

	"github.com/gogpu/stage/backend"
)

// Renderer is the rendering façade the game loop talks to. It owns a
// backend, the texture table, the camera, the HUD font and the HUD icon.
//
// A Renderer is created Ready by New and stays Ready until Close. Draw calls
// reach the backend in the order they are issued. ClearScreen must come
// before the draws of a frame and PresentFrame after them; that ordering is
// the caller's job and is not checked.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	backend  backend.Backend
	text     backend.TextRenderer
	textures *TextureTable
	camera   *Camera
	opts     options
	logger   *slog.Logger
	printer  *message.Printer

	font    backend.Font
	icon    TextureHandle
	iconW   int
	iconH   int
	hudText cachedText

	closed bool
}

// New brings up a renderer on b: it enables alpha blending, sizes the
// camera from the window, initializes the text backend, opens the HUD font
// and loads the HUD icon.
//
// Any failure is fatal. New releases what it had acquired and returns an
// *InitError; it never returns a partially initialized renderer. b is not
// closed on failure; the caller still owns it.
func New(b backend.Backend, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := Logger().With("backend", b.Name())
	propagateLogger(b, logger)

	if err := b.SetBlendMode(backend.BlendAlpha); err != nil {
		return nil, &InitError{Stage: StageBlend, Err: err}
	}

	w, h := b.WindowSize()
	r := &Renderer{
		backend:  b,
		text:     b.Text(),
		textures: NewTextureTable(b),
		camera:   NewCamera(w, h),
		opts:     o,
		logger:   logger,
	}
	if o.localized {
		r.printer = message.NewPrinter(o.lang)
	}
	r.textures.logger = logger

	if err := r.text.Init(); err != nil {
		return nil, &InitError{Stage: StageText, Err: err}
	}

	font, err := r.text.OpenFont(o.fontPath, o.fontSize)
	if err != nil {
		_ = r.text.Quit()
		return nil, &InitError{Stage: StageFont, Err: fmt.Errorf("open %s: %w", o.fontPath, err)}
	}
	r.font = font

	icon, err := r.textures.Load(o.iconPath)
	if err != nil {
		_ = r.font.Close()
		_ = r.text.Quit()
		return nil, &InitError{Stage: StageIcon, Err: err}
	}
	rec, _ := r.textures.Get(icon)
	r.icon, r.iconW, r.iconH = icon, rec.Width, rec.Height

	logger.Info("stage: renderer ready", "width", w, "height", h,
		"font", o.fontPath, "icon", o.iconPath)
	return r, nil
}

// Camera returns the renderer's camera.
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Backend returns the backend the renderer draws with.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// LoadTexture loads the image at path and returns its handle.
// The error is a *LoadError; the renderer stays usable after it.
func (r *Renderer) LoadTexture(path string) (TextureHandle, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return r.textures.Load(path)
}

// TextureInfo returns the record of a loaded texture.
func (r *Renderer) TextureInfo(h TextureHandle) (TextureRecord, bool) {
	return r.textures.Get(h)
}

// RenderTexture draws the src region of texture h into the world-space
// rectangle dst, translated to the screen by the camera.
//
// An unknown handle is skipped: no draw call is issued and nil is returned.
func (r *Renderer) RenderTexture(h TextureHandle, src, dst Rect, tf Transform) error {
	if r.closed {
		return ErrClosed
	}
	rec, ok := r.textures.Get(h)
	if !ok {
		r.logger.Debug("stage: draw skipped, unknown texture", "handle", int(h))
		return nil
	}
	return r.backend.Copy(rec.Texture, src, r.camera.ToScreen(dst), tf.copyOptions())
}

// SetWorldBounds replaces the camera's world bounds. The next
// RenderTexture call uses them.
func (r *Renderer) SetWorldBounds(bounds Rect) {
	r.camera.SetWorldBounds(bounds)
}

// CameraLookAt centers the camera on (x, y) when the renderer was created
// with WithFollowCamera, and does nothing otherwise.
func (r *Renderer) CameraLookAt(x, y int) {
	if !r.opts.followCamera {
		return
	}
	r.camera.LookAt(x, y)
}

// ToWorldCoordinates translates a screen point, such as a mouse position,
// to world space.
func (r *Renderer) ToWorldCoordinates(x, y int) Point {
	return r.camera.ToWorld(Point{X: x, Y: y})
}

// SetDrawColor sets the color ClearScreen fills with.
func (r *Renderer) SetDrawColor(red, green, blue, alpha uint8) error {
	if r.closed {
		return ErrClosed
	}
	return r.backend.SetDrawColor(Color{R: red, G: green, B: blue, A: alpha})
}

// ClearScreen clears the frame with the draw color.
func (r *Renderer) ClearScreen() error {
	if r.closed {
		return ErrClosed
	}
	return r.backend.Clear()
}

// PresentFrame shows the frame.
func (r *Renderer) PresentFrame() error {
	if r.closed {
		return ErrClosed
	}
	return r.backend.Present()
}

// Close releases every texture, the HUD font, the text backend and the
// backend itself. It is safe to call more than once; later calls return nil.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if err := r.hudText.release(); err != nil {
		errs = append(errs, err)
	}
	if err := r.textures.DestroyAll(); err != nil {
		errs = append(errs, err)
	}
	if err := r.font.Close(); err != nil {
		errs = append(errs, fmt.Errorf("stage: close font: %w", err))
	}
	if err := r.text.Quit(); err != nil {
		errs = append(errs, fmt.Errorf("stage: quit text: %w", err))
	}
	if err := r.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("stage: close backend: %w", err))
	}

	err := errors.Join(errs...)
	if err != nil {
		r.logger.Warn("stage: renderer closed with errors", "err", err)
	} else {
		r.logger.Info("stage: renderer closed")
	}
	return err
}
