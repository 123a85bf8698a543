package software

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

// ErrInvalidSize is returned by New for a window with no area.
var ErrInvalidSize = errors.New("software: window size must be positive")

func init() {
	backend.Register(backend.NameSoftware, func(cfg backend.Config) (backend.Backend, error) {
		return New(cfg)
	})
}

// Backend is the in-memory backend.
//
// Backend is not safe for concurrent use.
type Backend struct {
	cfg    backend.Config
	back   *image.RGBA
	front  *image.RGBA
	frames int
	limit  int

	blend     backend.BlendMode
	drawColor color.RGBA

	surfaces map[*surface]struct{}
	textures map[*texture]struct{}
	text     *textRenderer

	logger *slog.Logger
	closed bool
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Looper  = (*Backend)(nil)
)

// New creates a backend with a cfg.Width x cfg.Height frame.
func New(cfg backend.Config) (*Backend, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	b := &Backend{
		cfg:       cfg,
		back:      image.NewRGBA(bounds),
		front:     image.NewRGBA(bounds),
		drawColor: color.RGBA{A: 255},
		surfaces:  make(map[*surface]struct{}),
		textures:  make(map[*texture]struct{}),
		logger:    slog.New(slog.DiscardHandler),
	}
	b.text = &textRenderer{b: b, fonts: make(map[*fontFace]struct{})}
	return b, nil
}

// SetLogger sets the logger used for backend events.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
}

// SetFrameLimit bounds the number of frames Run draws. Zero, the default,
// runs until the frame function fails or the context is done.
func (b *Backend) SetFrameLimit(n int) {
	b.limit = max(n, 0)
}

type surface struct {
	b   *Backend
	img *image.NRGBA
}

func (s *surface) Size() (int, int) {
	r := s.img.Bounds()
	return r.Dx(), r.Dy()
}

func (s *surface) Free() {
	delete(s.b.surfaces, s)
}

type texture struct {
	b   *Backend
	img *image.NRGBA
}

func (t *texture) Size() (int, int) {
	r := t.img.Bounds()
	return r.Dx(), r.Dy()
}

func (t *texture) Destroy() error {
	if _, ok := t.b.textures[t]; !ok {
		return backend.ErrInvalidTexture
	}
	delete(t.b.textures, t)
	return nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameSoftware }

// WindowSize implements backend.Backend.
func (b *Backend) WindowSize() (int, int) { return b.cfg.Width, b.cfg.Height }

// SetBlendMode implements backend.Backend.
func (b *Backend) SetBlendMode(mode backend.BlendMode) error {
	if b.closed {
		return backend.ErrClosed
	}
	b.blend = mode
	return nil
}

// CreateSurface implements backend.Backend.
func (b *Backend) CreateSurface(pix []byte, width, height int) (backend.Surface, error) {
	if b.closed {
		return nil, backend.ErrClosed
	}
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, backend.ErrInvalidPixels
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	return b.newSurface(img), nil
}

func (b *Backend) newSurface(img *image.NRGBA) *surface {
	s := &surface{b: b, img: img}
	b.surfaces[s] = struct{}{}
	return s
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
	img := image.NewNRGBA(ss.img.Bounds())
	copy(img.Pix, ss.img.Pix)
	t := &texture{b: b, img: img}
	b.textures[t] = struct{}{}
	return t, nil
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
	drawTexture(b.back, t.img, src, dst, opts, b.blend)
	return nil
}

// SetDrawColor implements backend.Backend.
func (b *Backend) SetDrawColor(c color.RGBA) error {
	if b.closed {
		return backend.ErrClosed
	}
	b.drawColor = c
	return nil
}

// Clear implements backend.Backend. The whole frame is overwritten with the
// draw color regardless of the blend mode.
func (b *Backend) Clear() error {
	if b.closed {
		return backend.ErrClosed
	}
	c := color.NRGBA(b.drawColor)
	draw.Draw(b.back, b.back.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// Present implements backend.Backend.
func (b *Backend) Present() error {
	if b.closed {
		return backend.ErrClosed
	}
	copy(b.front.Pix, b.back.Pix)
	b.frames++
	return nil
}

// Text implements backend.Backend.
func (b *Backend) Text() backend.TextRenderer { return b.text }

// Close implements backend.Backend. Surfaces, textures and fonts that are
// still alive are released.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if n := len(b.textures) + len(b.surfaces) + len(b.text.fonts); n > 0 {
		b.logger.Debug("software: releasing resources on close",
			"textures", len(b.textures), "surfaces", len(b.surfaces), "fonts", len(b.text.fonts))
	}
	clear(b.textures)
	clear(b.surfaces)
	clear(b.text.fonts)
	return nil
}

// Frame returns a copy of the last presented frame.
func (b *Backend) Frame() *image.RGBA {
	img := image.NewRGBA(b.front.Bounds())
	copy(img.Pix, b.front.Pix)
	return img
}

// Frames returns the number of presented frames.
func (b *Backend) Frames() int { return b.frames }

// SavePNG writes the last presented frame to path.
func (b *Backend) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("software: save png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("software: save png: %w", cerr)
		}
	}()
	if err := png.Encode(f, b.front); err != nil {
		return fmt.Errorf("software: save png: %w", err)
	}
	return nil
}

// Run implements backend.Looper. There is no window to close, so the loop
// ends when the frame limit is reached, ctx is done, or frame fails.
// A done context ends the loop normally.
func (b *Backend) Run(ctx context.Context, frame func() error) error {
	for n := 0; b.limit == 0 || n < b.limit; n++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if b.closed {
			return backend.ErrClosed
		}
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}
