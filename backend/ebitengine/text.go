//go:build ebiten

package ebitengine

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gogpu/stage/backend"
)

// ErrTextNotReady is returned by OpenFont before Init.
var ErrTextNotReady = errors.New("ebiten: text not initialized")

// textRenderer draws strings with ebiten's text/v2 GoTextFace.
type textRenderer struct {
	b     *Backend
	ready bool
	fonts map[*font]struct{}
}

var _ backend.TextRenderer = (*textRenderer)(nil)

type font struct {
	r    *textRenderer
	face *text.GoTextFace
}

func (f *font) Close() error {
	if _, ok := f.r.fonts[f]; !ok {
		return backend.ErrInvalidFont
	}
	delete(f.r.fonts, f)
	return nil
}

func (t *textRenderer) Init() error {
	t.ready = true
	return nil
}

func (t *textRenderer) Quit() error {
	t.ready = false
	return nil
}

func (t *textRenderer) OpenFont(path string, size int) (backend.Font, error) {
	if !t.ready {
		return nil, ErrTextNotReady
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ebiten: open font: %w", err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ebiten: parse font %s: %w", path, err)
	}
	f := &font{r: t, face: &text.GoTextFace{Source: src, Size: float64(size)}}
	t.fonts[f] = struct{}{}
	return f, nil
}

// RenderText draws s into a new image as tall as the face's line.
func (t *textRenderer) RenderText(f backend.Font, s string, c color.RGBA) (backend.Surface, error) {
	ff, ok := f.(*font)
	if !ok || ff.r != t {
		return nil, backend.ErrInvalidFont
	}
	if _, live := t.fonts[ff]; !live {
		return nil, backend.ErrInvalidFont
	}
	m := ff.face.Metrics()
	w, _ := text.Measure(s, ff.face, 0)
	h := m.HAscent + m.HDescent

	img := ebiten.NewImage(max(int(math.Ceil(w)), 1), max(int(math.Ceil(h)), 1))
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(color.NRGBA(c))
	text.Draw(img, s, ff.face, op)
	return t.b.track(img), nil
}
