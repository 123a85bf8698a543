//go:build sdl

package sdl2

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

func init() {
	backend.Register(backend.NameSDL, func(cfg backend.Config) (backend.Backend, error) {
		return New(cfg)
	})
}

// Backend draws into an SDL window through an accelerated SDL renderer.
//
// SDL requires every call to come from the thread that initialized it;
// callers keep the renderer on one goroutine locked to its OS thread.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	blend    backend.BlendMode
	text     *textRenderer

	surfaces map[*surface]struct{}
	textures map[*texture]struct{}

	logger *slog.Logger
	closed bool
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Looper  = (*Backend)(nil)
)

// New initializes SDL video and opens a centered window with a renderer.
func New(cfg backend.Config) (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}

	b := &Backend{
		window:   window,
		renderer: renderer,
		surfaces: make(map[*surface]struct{}),
		textures: make(map[*texture]struct{}),
		logger:   slog.New(slog.DiscardHandler),
	}
	b.text = &textRenderer{b: b, fonts: make(map[*font]struct{})}
	return b, nil
}

// SetLogger sets the logger used for backend events.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
}

type surface struct {
	b *Backend
	s *sdl.Surface
}

func (s *surface) Size() (int, int) { return int(s.s.W), int(s.s.H) }

func (s *surface) Free() {
	if _, ok := s.b.surfaces[s]; !ok {
		return
	}
	delete(s.b.surfaces, s)
	s.s.Free()
}

type texture struct {
	b    *Backend
	t    *sdl.Texture
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

func (t *texture) Destroy() error {
	if _, ok := t.b.textures[t]; !ok {
		return backend.ErrInvalidTexture
	}
	delete(t.b.textures, t)
	return t.t.Destroy()
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameSDL }

// WindowSize implements backend.Backend.
func (b *Backend) WindowSize() (int, int) {
	w, h := b.window.GetSize()
	return int(w), int(h)
}

// SetBlendMode implements backend.Backend.
func (b *Backend) SetBlendMode(mode backend.BlendMode) error {
	if b.closed {
		return backend.ErrClosed
	}
	if err := b.renderer.SetDrawBlendMode(sdlBlend(mode)); err != nil {
		return fmt.Errorf("sdl: set blend mode: %w", err)
	}
	b.blend = mode
	return nil
}

func sdlBlend(mode backend.BlendMode) sdl.BlendMode {
	if mode == backend.BlendAlpha {
		return sdl.BLENDMODE_BLEND
	}
	return sdl.BLENDMODE_NONE
}

// CreateSurface implements backend.Backend. The pixels are copied row by
// row, since SDL may pad rows beyond 4*width bytes.
func (b *Backend) CreateSurface(pix []byte, width, height int) (backend.Surface, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, backend.ErrInvalidPixels
	}
	s, err := sdl.CreateRGBSurfaceWithFormat(0, int32(width), int32(height), 32, uint32(sdl.PIXELFORMAT_RGBA32))
	if err != nil {
		return nil, fmt.Errorf("sdl: create surface: %w", err)
	}
	if err := s.Lock(); err != nil {
		s.Free()
		return nil, fmt.Errorf("sdl: lock surface: %w", err)
	}
	dst := s.Pixels()
	stride := width * 4
	pitch := int(s.Pitch)
	for y := range height {
		copy(dst[y*pitch:y*pitch+stride], pix[y*stride:(y+1)*stride])
	}
	s.Unlock()
	return b.track(s), nil
}

func (b *Backend) track(s *sdl.Surface) *surface {
	ss := &surface{b: b, s: s}
	b.surfaces[ss] = struct{}{}
	return ss
}

// CreateTextureFromSurface implements backend.Backend.
func (b *Backend) CreateTextureFromSurface(s backend.Surface) (backend.Texture, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	ss, ok := s.(*surface)
	if !ok || ss.b != b {
		return nil, backend.ErrInvalidSurface
	}
	if _, live := b.surfaces[ss]; !live {
		return nil, backend.ErrInvalidSurface
	}
	t, err := b.renderer.CreateTextureFromSurface(ss.s)
	if err != nil {
		return nil, fmt.Errorf("sdl: create texture: %w", err)
	}
	_, _, w, h, err := t.Query()
	if err != nil {
		_ = t.Destroy()
		return nil, fmt.Errorf("sdl: query texture: %w", err)
	}
	tex := &texture{b: b, t: t, w: int(w), h: int(h)}
	b.textures[tex] = struct{}{}
	return tex, nil
}

// Copy implements backend.Backend.
func (b *Backend) Copy(tex backend.Texture, src, dst geom.Rect, opts backend.CopyOptions) error {
	if b.closed {
		return backend.ErrClosed
	}
	t, ok := tex.(*texture)
	if !ok || t.b != b {
		return backend.ErrInvalidTexture
	}
	if _, live := b.textures[t]; !live {
		return backend.ErrInvalidTexture
	}
	if err := t.t.SetBlendMode(sdlBlend(b.blend)); err != nil {
		return fmt.Errorf("sdl: texture blend mode: %w", err)
	}

	sr := sdlRect(src)
	dr := sdlRect(dst)
	if err := b.renderer.CopyEx(t.t, &sr, &dr, opts.Angle, sdlCenter(opts.Center), sdlFlip(opts.Flip)); err != nil {
		return fmt.Errorf("sdl: copy: %w", err)
	}
	return nil
}

// sdlCenter returns the rotation pivot for CopyEx. SDL treats a nil pivot
// as the destination center, so the top-left default is passed explicitly.
func sdlCenter(c *geom.Point) *sdl.Point {
	if c == nil {
		return &sdl.Point{}
	}
	return &sdl.Point{X: int32(c.X), Y: int32(c.Y)}
}

func sdlRect(r geom.Rect) sdl.Rect {
	return sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}

func sdlFlip(f backend.Flip) sdl.RendererFlip {
	var flip sdl.RendererFlip = sdl.FLIP_NONE
	if f&backend.FlipHorizontal != 0 {
		flip |= sdl.FLIP_HORIZONTAL
	}
	if f&backend.FlipVertical != 0 {
		flip |= sdl.FLIP_VERTICAL
	}
	return flip
}

// SetDrawColor implements backend.Backend.
func (b *Backend) SetDrawColor(c color.RGBA) error {
	if b.closed {
		return backend.ErrClosed
	}
	if err := b.renderer.SetDrawColor(c.R, c.G, c.B, c.A); err != nil {
		return fmt.Errorf("sdl: set draw color: %w", err)
	}
	return nil
}

// Clear implements backend.Backend.
func (b *Backend) Clear() error {
	if b.closed {
		return backend.ErrClosed
	}
	if err := b.renderer.Clear(); err != nil {
		return fmt.Errorf("sdl: clear: %w", err)
	}
	return nil
}

// Present implements backend.Backend.
func (b *Backend) Present() error {
	if b.closed {
		return backend.ErrClosed
	}
	b.renderer.Present()
	return nil
}

// Text implements backend.Backend.
func (b *Backend) Text() backend.TextRenderer { return b.text }

// Close destroys leftover resources, the renderer and the window, and
// shuts SDL down.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	for t := range b.textures {
		errs = append(errs, t.t.Destroy())
	}
	for s := range b.surfaces {
		s.s.Free()
	}
	for f := range b.text.fonts {
		f.f.Close()
	}
	if n := len(b.textures) + len(b.surfaces) + len(b.text.fonts); n > 0 {
		b.logger.Debug("sdl: released leftover resources", "count", n)
	}
	clear(b.textures)
	clear(b.surfaces)
	clear(b.text.fonts)

	errs = append(errs, b.renderer.Destroy(), b.window.Destroy())
	sdl.Quit()
	return errors.Join(errs...)
}

// Run implements backend.Looper. It drains the SDL event queue before each
// frame and returns when the window is closed.
func (b *Backend) Run(ctx context.Context, frame func() error) error {
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if _, ok := ev.(*sdl.QuitEvent); ok {
				b.logger.Debug("sdl: quit requested")
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := frame(); err != nil {
			return err
		}
	}
}
