package stage

import (
	"fmt"

	"github.com/gogpu/stage/backend"
)

// HUD layout, in screen pixels.
const (
	hudMargin    = 10
	hudSpacing   = 4
	hudTextGap   = 5
	hudIconScale = 4 // icons are drawn at 1/hudIconScale of their size
)

// cachedText is the HUD string texture kept between frames by
// WithTextCache.
type cachedText struct {
	text string
	tex  backend.Texture
	w, h int
}

func (c *cachedText) release() error {
	if c.tex == nil {
		return nil
	}
	err := c.tex.Destroy()
	*c = cachedText{}
	if err != nil {
		return fmt.Errorf("stage: destroy hud text: %w", err)
	}
	return nil
}

// CounterText returns the HUD counter string for n. The number is plain
// digits unless WithLanguage was given.
func (r *Renderer) CounterText(n int) string {
	if r.printer == nil {
		return fmt.Sprintf("Bombs avoided: %d", n)
	}
	return r.printer.Sprintf("Bombs avoided: %d", n)
}

// DrawUI draws the heads-up display in screen space: one icon per life,
// right-aligned along the top margin from right to left, and the counter
// text right-aligned below the icon row.
//
// Icons are drawn at a quarter of their native size. The counter string is
// rendered to a transient texture that is destroyed after the draw, so it
// is rasterized again every frame unless the renderer was created with
// WithTextCache.
func (r *Renderer) DrawUI(lives, counter int) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.backend.SetBlendMode(backend.BlendAlpha); err != nil {
		return err
	}

	w, _ := r.camera.Viewport()
	displayW := r.iconW / hudIconScale
	displayH := r.iconH / hudIconScale

	icon, _ := r.textures.Get(r.icon)
	src := Rect{W: r.iconW, H: r.iconH}
	for i := range max(lives, 0) {
		dst := Rect{
			X: w - hudMargin - (i+1)*(displayW+hudSpacing),
			Y: hudMargin,
			W: displayW,
			H: displayH,
		}
		if err := r.backend.Copy(icon.Texture, src, dst, backend.CopyOptions{}); err != nil {
			return fmt.Errorf("stage: draw life icon %d: %w", i, err)
		}
	}

	s := r.CounterText(counter)
	tex, tw, th, err := r.counterTexture(s)
	if err != nil {
		return err
	}
	dst := Rect{
		X: w - hudMargin - tw,
		Y: hudMargin + displayH + hudTextGap,
		W: tw,
		H: th,
	}
	err = r.backend.Copy(tex, Rect{W: tw, H: th}, dst, backend.CopyOptions{})
	if !r.opts.textCache {
		if derr := tex.Destroy(); derr != nil {
			r.logger.Warn("stage: destroy hud text", "err", derr)
		}
	}
	if err != nil {
		return fmt.Errorf("stage: draw hud text: %w", err)
	}
	return nil
}

// counterTexture renders s into a texture, or returns the cached texture
// when caching is enabled and s has not changed.
func (r *Renderer) counterTexture(s string) (backend.Texture, int, int, error) {
	if r.opts.textCache && r.hudText.tex != nil && r.hudText.text == s {
		return r.hudText.tex, r.hudText.w, r.hudText.h, nil
	}

	surf, err := r.text.RenderText(r.font, s, r.opts.textColor)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("stage: render hud text: %w", err)
	}
	tex, err := r.backend.CreateTextureFromSurface(surf)
	surf.Free()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("stage: upload hud text: %w", err)
	}
	tw, th := tex.Size()

	if r.opts.textCache {
		if err := r.hudText.release(); err != nil {
			r.logger.Warn("stage: replace hud text", "err", err)
		}
		r.hudText = cachedText{text: s, tex: tex, w: tw, h: th}
	}
	return tex, tw, th, nil
}
