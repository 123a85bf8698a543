package recording

import (
	"fmt"
	"image/color"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

// Name is the backend name reported by Backend.Name.
const Name = "recording"

// GlyphWidth is the width in pixels of one rune in a rendered text surface.
const GlyphWidth = 8

// Failures holds errors to return from the matching operation.
// A nil field means the operation succeeds.
type Failures struct {
	SetBlendMode  error
	CreateSurface error
	CreateTexture error
	Copy          error
	SetDrawColor  error
	Clear         error
	Present       error
	TextInit      error
	OpenFont      error
	RenderText    error
}

// Backend records every call made through backend.Backend and
// backend.TextRenderer.
//
// Backend is not safe for concurrent use.
type Backend struct {
	width, height int

	// Fail injects errors into the next calls of each operation.
	Fail Failures

	commands []Command
	nextID   ID

	surfaces map[ID]*surface
	textures map[ID]*texture
	fonts    map[ID]*font

	drawColor color.RGBA
	blend     backend.BlendMode
	textReady bool
	closed    bool
	text      textRenderer
}

var (
	_ backend.Backend      = (*Backend)(nil)
	_ backend.TextRenderer = textRenderer{}
)

// New creates a recording backend for a window of the given size.
func New(width, height int) *Backend {
	b := &Backend{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 64),
		surfaces: make(map[ID]*surface),
		textures: make(map[ID]*texture),
		fonts:    make(map[ID]*font),
	}
	b.text = textRenderer{b: b}
	return b
}

type surface struct {
	b    *Backend
	id   ID
	w, h int
	pix  []byte
}

func (s *surface) Size() (int, int) { return s.w, s.h }

func (s *surface) Free() {
	if _, ok := s.b.surfaces[s.id]; !ok {
		return
	}
	delete(s.b.surfaces, s.id)
	s.b.record(FreeSurfaceCommand{Surface: s.id})
}

type texture struct {
	b    *Backend
	id   ID
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

func (t *texture) Destroy() error {
	if _, ok := t.b.textures[t.id]; !ok {
		return backend.ErrInvalidTexture
	}
	delete(t.b.textures, t.id)
	t.b.record(DestroyTextureCommand{Texture: t.id})
	return nil
}

type font struct {
	b    *Backend
	id   ID
	size int
}

func (f *font) Close() error {
	if _, ok := f.b.fonts[f.id]; !ok {
		return backend.ErrInvalidFont
	}
	delete(f.b.fonts, f.id)
	f.b.record(CloseFontCommand{Font: f.id})
	return nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return Name }

// WindowSize implements backend.Backend.
func (b *Backend) WindowSize() (int, int) { return b.width, b.height }

// SetBlendMode implements backend.Backend.
func (b *Backend) SetBlendMode(mode backend.BlendMode) error {
	if err := b.check(b.Fail.SetBlendMode); err != nil {
		return err
	}
	b.blend = mode
	b.record(SetBlendModeCommand{Mode: mode})
	return nil
}

// CreateSurface implements backend.Backend.
func (b *Backend) CreateSurface(pix []byte, width, height int) (backend.Surface, error) {
	if err := b.check(b.Fail.CreateSurface); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, backend.ErrInvalidPixels
	}
	s := b.newSurface(width, height, slices.Clone(pix))
	b.record(CreateSurfaceCommand{Surface: s.id, Width: width, Height: height, Pix: s.pix})
	return s, nil
}

// CreateTextureFromSurface implements backend.Backend.
func (b *Backend) CreateTextureFromSurface(s backend.Surface) (backend.Texture, error) {
	if err := b.check(b.Fail.CreateTexture); err != nil {
		return nil, err
	}
	rs, ok := s.(*surface)
	if !ok || rs.b != b || b.surfaces[rs.id] == nil {
		return nil, backend.ErrInvalidSurface
	}
	t := &texture{b: b, id: b.newID(), w: rs.w, h: rs.h}
	b.textures[t.id] = t
	b.record(CreateTextureCommand{Texture: t.id, Surface: rs.id, Width: t.w, Height: t.h})
	return t, nil
}

// Copy implements backend.Backend.
func (b *Backend) Copy(tex backend.Texture, src, dst geom.Rect, opts backend.CopyOptions) error {
	if err := b.check(b.Fail.Copy); err != nil {
		return err
	}
	rt, ok := tex.(*texture)
	if !ok || rt.b != b || b.textures[rt.id] == nil {
		return backend.ErrInvalidTexture
	}
	if opts.Center != nil {
		c := *opts.Center
		opts.Center = &c
	}
	b.record(CopyCommand{Texture: rt.id, Src: src, Dst: dst, Options: opts})
	return nil
}

// SetDrawColor implements backend.Backend.
func (b *Backend) SetDrawColor(c color.RGBA) error {
	if err := b.check(b.Fail.SetDrawColor); err != nil {
		return err
	}
	b.drawColor = c
	b.record(SetDrawColorCommand{Color: c})
	return nil
}

// Clear implements backend.Backend.
func (b *Backend) Clear() error {
	if err := b.check(b.Fail.Clear); err != nil {
		return err
	}
	b.record(ClearCommand{Color: b.drawColor})
	return nil
}

// Present implements backend.Backend.
func (b *Backend) Present() error {
	if err := b.check(b.Fail.Present); err != nil {
		return err
	}
	b.record(PresentCommand{})
	return nil
}

// Text implements backend.Backend.
func (b *Backend) Text() backend.TextRenderer { return b.text }

// Close implements backend.Backend. Resources still alive are left in the
// live counters so tests can detect leaks.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.record(CloseCommand{})
	return nil
}

// Commands returns a copy of all recorded commands in call order.
func (b *Backend) Commands() []Command {
	return slices.Clone(b.commands)
}

// CommandsOf returns the recorded commands of type t in call order.
func (b *Backend) CommandsOf(t CommandType) []Command {
	var out []Command
	for _, c := range b.commands {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many commands of type t were recorded.
func (b *Backend) Count(t CommandType) int {
	n := 0
	for _, c := range b.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset drops the recorded commands. Live resources are kept.
func (b *Backend) Reset() {
	b.commands = b.commands[:0]
}

// LiveSurfaces returns the number of surfaces not yet freed.
func (b *Backend) LiveSurfaces() int { return len(b.surfaces) }

// LiveTextures returns the number of textures not yet destroyed.
func (b *Backend) LiveTextures() int { return len(b.textures) }

// LiveFonts returns the number of fonts not yet closed.
func (b *Backend) LiveFonts() int { return len(b.fonts) }

// BlendMode returns the current blend mode.
func (b *Backend) BlendMode() backend.BlendMode { return b.blend }

// DrawColor returns the current draw color.
func (b *Backend) DrawColor() color.RGBA { return b.drawColor }

// Closed reports whether Close has been called.
func (b *Backend) Closed() bool { return b.closed }

// TextureID returns the recording ID of a texture created by b.
func (b *Backend) TextureID(tex backend.Texture) (ID, bool) {
	rt, ok := tex.(*texture)
	if !ok || rt.b != b {
		return 0, false
	}
	return rt.id, true
}

func (b *Backend) check(injected error) error {
	if b.closed {
		return backend.ErrClosed
	}
	return injected
}

func (b *Backend) newID() ID {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Backend) newSurface(w, h int, pix []byte) *surface {
	s := &surface{b: b, id: b.newID(), w: w, h: h, pix: pix}
	b.surfaces[s.id] = s
	return s
}

func (b *Backend) record(c Command) {
	b.commands = append(b.commands, c)
}

// textRenderer implements backend.TextRenderer on top of the recording.
type textRenderer struct {
	b *Backend
}

func (t textRenderer) Init() error {
	if err := t.b.check(t.b.Fail.TextInit); err != nil {
		return err
	}
	t.b.textReady = true
	t.b.record(TextInitCommand{})
	return nil
}

func (t textRenderer) OpenFont(path string, size int) (backend.Font, error) {
	if err := t.b.check(t.b.Fail.OpenFont); err != nil {
		return nil, err
	}
	if !t.b.textReady {
		return nil, fmt.Errorf("recording: open font %s: text not initialized", path)
	}
	if size <= 0 {
		return nil, fmt.Errorf("recording: open font %s: invalid size %d", path, size)
	}
	f := &font{b: t.b, id: t.b.newID(), size: size}
	t.b.fonts[f.id] = f
	t.b.record(OpenFontCommand{Font: f.id, Path: path, Size: size})
	return f, nil
}

func (t textRenderer) RenderText(f backend.Font, s string, c color.RGBA) (backend.Surface, error) {
	if err := t.b.check(t.b.Fail.RenderText); err != nil {
		return nil, err
	}
	rf, ok := f.(*font)
	if !ok || rf.b != t.b || t.b.fonts[rf.id] == nil {
		return nil, backend.ErrInvalidFont
	}
	w := max(utf8.RuneCountInString(s), 1) * GlyphWidth
	h := rf.size
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	surf := t.b.newSurface(w, h, pix)
	t.b.record(RenderTextCommand{Font: rf.id, Surface: surf.id, Text: s, Color: c})
	return surf, nil
}

func (t textRenderer) Quit() error {
	if t.b.closed {
		return backend.ErrClosed
	}
	t.b.textReady = false
	t.b.record(TextQuitCommand{})
	return nil
}
