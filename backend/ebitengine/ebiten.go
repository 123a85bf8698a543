//go:build ebiten

package ebitengine

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

func init() {
	backend.Register(backend.NameEbiten, func(cfg backend.Config) (backend.Backend, error) {
		return New(cfg)
	})
}

// Backend draws into offscreen ebiten images and shows them from
// Game.Draw.
type Backend struct {
	cfg       backend.Config
	back      *ebiten.Image
	front     *ebiten.Image
	blend     backend.BlendMode
	drawColor color.RGBA
	text      *textRenderer

	surfaces map[*surface]struct{}
	textures map[*texture]struct{}

	logger *slog.Logger
	closed bool
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Looper  = (*Backend)(nil)
)

// New configures the Ebitengine window and allocates the frame buffers.
// The window opens when Run is called.
func New(cfg backend.Config) (*Backend, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("ebiten: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	b := &Backend{
		cfg:       cfg,
		back:      ebiten.NewImage(cfg.Width, cfg.Height),
		front:     ebiten.NewImage(cfg.Width, cfg.Height),
		drawColor: color.RGBA{A: 255},
		surfaces:  make(map[*surface]struct{}),
		textures:  make(map[*texture]struct{}),
		logger:    slog.New(slog.DiscardHandler),
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
	b   *Backend
	img *ebiten.Image
}

func (s *surface) Size() (int, int) { return s.img.Bounds().Dx(), s.img.Bounds().Dy() }

func (s *surface) Free() {
	if _, ok := s.b.surfaces[s]; !ok {
		return
	}
	delete(s.b.surfaces, s)
	s.img.Deallocate()
}

type texture struct {
	b   *Backend
	img *ebiten.Image
}

func (t *texture) Size() (int, int) { return t.img.Bounds().Dx(), t.img.Bounds().Dy() }

func (t *texture) Destroy() error {
	if _, ok := t.b.textures[t]; !ok {
		return backend.ErrInvalidTexture
	}
	delete(t.b.textures, t)
	t.img.Deallocate()
	return nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameEbiten }

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
	return b.track(ebiten.NewImageFromImage(img)), nil
}

func (b *Backend) track(img *ebiten.Image) *surface {
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
	w, h := ss.Size()
	img := ebiten.NewImage(w, h)
	img.DrawImage(ss.img, &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy})
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
	sr := src.Image().Intersect(t.img.Bounds())
	if sr.Empty() || dst.Empty() {
		return nil
	}
	sub := t.img.SubImage(sr).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{Blend: ebitenBlend(b.blend)}
	op.GeoM = copyGeoM(src, sr, dst, opts)
	b.back.DrawImage(sub, op)
	return nil
}

// copyGeoM maps the sub-image sr onto dst. Ebiten places a sub-image's
// Bounds().Min at the GeoM origin, so local coordinates start at zero. sr is
// src clipped to the texture; the scale follows the requested src so a
// clipped region covers only the matching part of dst.
func copyGeoM(src geom.Rect, sr image.Rectangle, dst geom.Rect, opts backend.CopyOptions) ebiten.GeoM {
	sw, sh := float64(src.W), float64(src.H)
	dw, dh := float64(dst.W), float64(dst.H)

	var g ebiten.GeoM
	g.Translate(float64(sr.Min.X-src.X), float64(sr.Min.Y-src.Y))
	if opts.Flip&backend.FlipHorizontal != 0 {
		g.Scale(-1, 1)
		g.Translate(sw, 0)
	}
	if opts.Flip&backend.FlipVertical != 0 {
		g.Scale(1, -1)
		g.Translate(0, sh)
	}
	g.Scale(dw/sw, dh/sh)
	if opts.Angle != 0 {
		var cx, cy float64
		if opts.Center != nil {
			cx, cy = float64(opts.Center.X), float64(opts.Center.Y)
		}
		g.Translate(-cx, -cy)
		g.Rotate(opts.Angle * math.Pi / 180)
		g.Translate(cx, cy)
	}
	g.Translate(float64(dst.X), float64(dst.Y))
	return g
}

func ebitenBlend(mode backend.BlendMode) ebiten.Blend {
	if mode == backend.BlendNone {
		return ebiten.BlendCopy
	}
	return ebiten.BlendSourceOver
}

// SetDrawColor implements backend.Backend.
func (b *Backend) SetDrawColor(c color.RGBA) error {
	if b.closed {
		return backend.ErrClosed
	}
	b.drawColor = c
	return nil
}

// Clear implements backend.Backend.
func (b *Backend) Clear() error {
	if b.closed {
		return backend.ErrClosed
	}
	b.back.Fill(color.NRGBA(b.drawColor))
	return nil
}

// Present implements backend.Backend.
func (b *Backend) Present() error {
	if b.closed {
		return backend.ErrClosed
	}
	b.front.DrawImage(b.back, &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy})
	return nil
}

// Text implements backend.Backend.
func (b *Backend) Text() backend.TextRenderer { return b.text }

// Close deallocates every image the backend still owns. The window itself
// closes when Run returns.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	for t := range b.textures {
		t.img.Deallocate()
	}
	for s := range b.surfaces {
		s.img.Deallocate()
	}
	if n := len(b.textures) + len(b.surfaces); n > 0 {
		b.logger.Debug("ebiten: released leftover images", "count", n)
	}
	clear(b.textures)
	clear(b.surfaces)
	clear(b.text.fonts)
	b.back.Deallocate()
	b.front.Deallocate()
	return nil
}

// Run implements backend.Looper. frame is called from Game.Update, once
// per tick.
func (b *Backend) Run(ctx context.Context, frame func() error) error {
	return ebiten.RunGame(&game{b: b, ctx: ctx, frame: frame})
}

type game struct {
	b     *Backend
	ctx   context.Context
	frame func() error
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || g.b.closed {
		return ebiten.Termination
	}
	return g.frame()
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.b.front, nil)
}

func (g *game) Layout(int, int) (int, int) {
	return g.b.cfg.Width, g.b.cfg.Height
}
