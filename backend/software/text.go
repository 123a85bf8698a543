package software

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"slices"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/internal/cache"
)

// outlineCacheSize is the number of glyph outlines kept per font.
const outlineCacheSize = 256

// ErrTextNotReady is returned by OpenFont and RenderText outside of
// Init / Quit.
var ErrTextNotReady = errors.New("software: text not initialized")

// textRenderer shapes strings with go-text and fills the glyph outlines
// with x/image/vector.
type textRenderer struct {
	b     *Backend
	ready bool
	fonts map[*fontFace]struct{}
}

var _ backend.TextRenderer = (*textRenderer)(nil)

// fontFace is one opened font file at a fixed pixel size.
type fontFace struct {
	r       *textRenderer
	path    string
	size    int
	outline *sfnt.Font
	face    *gotext.Face
	ascent  int
	descent int

	buf      sfnt.Buffer
	shaper   shaping.HarfbuzzShaper
	outlines *cache.LRU[sfnt.GlyphIndex, sfnt.Segments]
}

func (f *fontFace) Close() error {
	if _, ok := f.r.fonts[f]; !ok {
		return backend.ErrInvalidFont
	}
	delete(f.r.fonts, f)
	return nil
}

func (t *textRenderer) Init() error {
	if t.b.closed {
		return backend.ErrClosed
	}
	t.ready = true
	return nil
}

func (t *textRenderer) Quit() error {
	if t.b.closed {
		return backend.ErrClosed
	}
	t.ready = false
	return nil
}

// OpenFont reads the TrueType or OpenType file at path. size is in pixels
// per em.
func (t *textRenderer) OpenFont(path string, size int) (backend.Font, error) {
	if t.b.closed {
		return nil, backend.ErrClosed
	}
	if !t.ready {
		return nil, ErrTextNotReady
	}
	if size <= 0 {
		return nil, fmt.Errorf("software: open font %s: invalid size %d", path, size)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("software: open font: %w", err)
	}
	outline, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("software: parse font %s: %w", path, err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("software: parse font %s: %w", path, err)
	}

	f := &fontFace{
		r:        t,
		path:     path,
		size:     size,
		outline:  outline,
		face:     face,
		outlines: cache.New[sfnt.GlyphIndex, sfnt.Segments](outlineCacheSize),
	}
	m, err := outline.Metrics(&f.buf, fixed.I(size), xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("software: font metrics %s: %w", path, err)
	}
	f.ascent = m.Ascent.Ceil()
	f.descent = m.Descent.Ceil()

	t.fonts[f] = struct{}{}
	t.b.logger.Debug("software: font opened", "path", path, "size", size,
		"ascent", f.ascent, "descent", f.descent)
	return f, nil
}

// RenderText renders s on one line into a surface as tall as the font's
// ascent plus descent and as wide as the shaped advance. Pixels outside the
// glyphs are transparent.
func (t *textRenderer) RenderText(f backend.Font, s string, c color.RGBA) (backend.Surface, error) {
	if t.b.closed {
		return nil, backend.ErrClosed
	}
	if !t.ready {
		return nil, ErrTextNotReady
	}
	ff, ok := f.(*fontFace)
	if !ok || ff.r != t {
		return nil, backend.ErrInvalidFont
	}
	if _, live := t.fonts[ff]; !live {
		return nil, backend.ErrInvalidFont
	}

	glyphs, advance := ff.shape(s)
	w := max(advance.Ceil(), 1)
	h := max(ff.ascent+ff.descent, 1)

	mask, err := ff.rasterize(glyphs, w, h)
	if err != nil {
		return nil, fmt.Errorf("software: render %q: %w", s, err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(img, img.Bounds(), image.NewUniform(color.NRGBA(c)), image.Point{}, mask, image.Point{}, draw.Src)
	return t.b.newSurface(img), nil
}

func (f *fontFace) shape(s string) ([]shaping.Glyph, fixed.Int26_6) {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0
	}
	script := language.Latin
	for _, r := range runes {
		if r != ' ' {
			script = language.LookupScript(r)
			break
		}
	}
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      fixed.I(f.size),
		Script:    script,
		Language:  language.NewLanguage("en"),
	})
	return out.Glyphs, out.Advance
}

// rasterize fills the outlines of glyphs, laid out from the left edge on
// the font's baseline, into a w x h coverage mask.
func (f *fontFace) rasterize(glyphs []shaping.Glyph, w, h int) (*image.Alpha, error) {
	z := vector.NewRasterizer(w, h)
	baseline := float32(f.ascent)

	var pen fixed.Int26_6
	for _, g := range glyphs {
		ox := fixedFloat(pen + g.XOffset)
		oy := baseline - fixedFloat(g.YOffset)
		pen += g.Advance

		segs, ok, err := f.glyph(sfnt.GlyphIndex(g.GlyphID))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		addSegments(z, segs, ox, oy)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, nil
}

// glyph returns the outline of gid at the font's size. Glyphs without an
// outline, such as color emoji, report ok == false.
func (f *fontFace) glyph(gid sfnt.GlyphIndex) (sfnt.Segments, bool, error) {
	if segs, hit := f.outlines.Get(gid); hit {
		return segs, segs != nil, nil
	}
	segs, err := f.outline.LoadGlyph(&f.buf, gid, fixed.I(f.size), nil)
	if errors.Is(err, sfnt.ErrNotFound) || errors.Is(err, sfnt.ErrColoredGlyph) {
		f.outlines.Put(gid, nil)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	// LoadGlyph reuses buf, so keep a copy.
	segs = slices.Clone(segs)
	f.outlines.Put(gid, segs)
	return segs, true, nil
}

// addSegments appends one glyph outline, offset by (ox, oy), to z. sfnt
// outlines already use a y-down coordinate system.
func addSegments(z *vector.Rasterizer, segs sfnt.Segments, ox, oy float32) {
	open := false
	for _, seg := range segs {
		p := func(i int) (float32, float32) {
			return ox + fixedFloat(seg.Args[i].X), oy + fixedFloat(seg.Args[i].Y)
		}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(p(0))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(p(0))
		case sfnt.SegmentOpQuadTo:
			bx, by := p(0)
			cx, cy := p(1)
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := p(0)
			cx, cy := p(1)
			dx, dy := p(2)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
}

func fixedFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
