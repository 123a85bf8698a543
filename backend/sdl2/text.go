//go:build sdl

package sdl2

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/gogpu/stage/backend"
)

// ErrTextNotReady is returned by OpenFont before Init.
var ErrTextNotReady = errors.New("sdl: ttf not initialized")

// textRenderer wraps SDL_ttf.
type textRenderer struct {
	b     *Backend
	ready bool
	fonts map[*font]struct{}
}

var _ backend.TextRenderer = (*textRenderer)(nil)

type font struct {
	r *textRenderer
	f *ttf.Font
}

func (f *font) Close() error {
	if _, ok := f.r.fonts[f]; !ok {
		return backend.ErrInvalidFont
	}
	delete(f.r.fonts, f)
	f.f.Close()
	return nil
}

func (t *textRenderer) Init() error {
	if err := ttf.Init(); err != nil {
		return fmt.Errorf("sdl: ttf init: %w", err)
	}
	t.ready = true
	return nil
}

func (t *textRenderer) Quit() error {
	if !t.ready {
		return nil
	}
	t.ready = false
	ttf.Quit()
	return nil
}

func (t *textRenderer) OpenFont(path string, size int) (backend.Font, error) {
	if !t.ready {
		return nil, ErrTextNotReady
	}
	f, err := ttf.OpenFont(path, size)
	if err != nil {
		return nil, fmt.Errorf("sdl: open font: %w", err)
	}
	ff := &font{r: t, f: f}
	t.fonts[ff] = struct{}{}
	return ff, nil
}

// RenderText renders s with blended (anti-aliased) edges.
func (t *textRenderer) RenderText(f backend.Font, s string, c color.RGBA) (backend.Surface, error) {
	ff, ok := f.(*font)
	if !ok || ff.r != t {
		return nil, backend.ErrInvalidFont
	}
	if _, live := t.fonts[ff]; !live {
		return nil, backend.ErrInvalidFont
	}
	surf, err := ff.f.RenderUTF8Blended(s, sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
	if err != nil {
		return nil, fmt.Errorf("sdl: render text: %w", err)
	}
	return t.b.track(surf), nil
}
