package recording

import (
	"errors"
	"fmt"

	"github.com/gogpu/stage/backend"
)

// ErrUnknownResource is returned by Playback when a command refers to a
// resource that was never created in the recording.
var ErrUnknownResource = errors.New("recording: unknown resource")

// Playback replays the recorded commands onto target in order.
//
// Resources are recreated on target and released where the recording
// released them; the ones still alive at the end of the recording are
// released before Playback returns. CloseCommand is not replayed: the
// caller owns target.
func (b *Backend) Playback(target backend.Backend) error {
	p := player{
		target:   target,
		surfaces: make(map[ID]backend.Surface),
		textures: make(map[ID]backend.Texture),
		fonts:    make(map[ID]backend.Font),
	}
	defer p.release()

	for i, cmd := range b.commands {
		if err := p.play(cmd); err != nil {
			return fmt.Errorf("recording: playback command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}

type player struct {
	target   backend.Backend
	surfaces map[ID]backend.Surface
	textures map[ID]backend.Texture
	fonts    map[ID]backend.Font
}

func (p *player) play(cmd Command) error {
	switch c := cmd.(type) {
	case CreateSurfaceCommand:
		s, err := p.target.CreateSurface(c.Pix, c.Width, c.Height)
		if err != nil {
			return err
		}
		p.surfaces[c.Surface] = s

	case FreeSurfaceCommand:
		s, ok := p.surfaces[c.Surface]
		if !ok {
			return ErrUnknownResource
		}
		s.Free()
		delete(p.surfaces, c.Surface)

	case CreateTextureCommand:
		s, ok := p.surfaces[c.Surface]
		if !ok {
			return ErrUnknownResource
		}
		t, err := p.target.CreateTextureFromSurface(s)
		if err != nil {
			return err
		}
		p.textures[c.Texture] = t

	case DestroyTextureCommand:
		t, ok := p.textures[c.Texture]
		if !ok {
			return ErrUnknownResource
		}
		delete(p.textures, c.Texture)
		return t.Destroy()

	case SetBlendModeCommand:
		return p.target.SetBlendMode(c.Mode)

	case SetDrawColorCommand:
		return p.target.SetDrawColor(c.Color)

	case ClearCommand:
		return p.target.Clear()

	case CopyCommand:
		t, ok := p.textures[c.Texture]
		if !ok {
			return ErrUnknownResource
		}
		return p.target.Copy(t, c.Src, c.Dst, c.Options)

	case PresentCommand:
		return p.target.Present()

	case TextInitCommand:
		return p.target.Text().Init()

	case OpenFontCommand:
		f, err := p.target.Text().OpenFont(c.Path, c.Size)
		if err != nil {
			return err
		}
		p.fonts[c.Font] = f

	case CloseFontCommand:
		f, ok := p.fonts[c.Font]
		if !ok {
			return ErrUnknownResource
		}
		delete(p.fonts, c.Font)
		return f.Close()

	case RenderTextCommand:
		f, ok := p.fonts[c.Font]
		if !ok {
			return ErrUnknownResource
		}
		s, err := p.target.Text().RenderText(f, c.Text, c.Color)
		if err != nil {
			return err
		}
		p.surfaces[c.Surface] = s

	case TextQuitCommand:
		return p.target.Text().Quit()

	case CloseCommand:
		// The caller owns target.
	}
	return nil
}

func (p *player) release() {
	for _, t := range p.textures {
		_ = t.Destroy()
	}
	for _, s := range p.surfaces {
		s.Free()
	}
	for _, f := range p.fonts {
		_ = f.Close()
	}
}
