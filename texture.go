package stage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/internal/imageio"
)

// TextureHandle identifies a texture loaded through a TextureTable.
// Handles are assigned from 0 upward, one per successful load, and are
// never reused while the table lives.
type TextureHandle int

// TextureRecord is a loaded texture and its pixel size.
type TextureRecord struct {
	Handle  TextureHandle
	Texture backend.Texture
	Width   int
	Height  int
}

// TextureTable owns every texture loaded through it. Textures live until
// DestroyAll; there is no per-texture eviction.
//
// TextureTable is not safe for concurrent use.
type TextureTable struct {
	backend backend.Backend
	records map[TextureHandle]TextureRecord
	next    TextureHandle
	logger  *slog.Logger
}

// NewTextureTable creates an empty table that creates textures on b.
func NewTextureTable(b backend.Backend) *TextureTable {
	return &TextureTable{
		backend: b,
		records: make(map[TextureHandle]TextureRecord),
		logger:  Logger(),
	}
}

// Load decodes the image file at path to RGBA, uploads it through an
// intermediate surface, and returns the handle of the new texture.
//
// On failure the table is unchanged and the returned error is a *LoadError.
// If texture creation fails the intermediate surface is freed first.
func (t *TextureTable) Load(path string) (TextureHandle, error) {
	img, err := imageio.LoadRGBA(path)
	if err != nil {
		return 0, &LoadError{Path: path, Stage: StageDecode, Err: err}
	}

	surface, err := t.backend.CreateSurface(img.Pix, img.Width, img.Height)
	if err != nil {
		return 0, &LoadError{Path: path, Stage: StageSurface, Err: err}
	}
	tex, err := t.backend.CreateTextureFromSurface(surface)
	surface.Free()
	if err != nil {
		return 0, &LoadError{Path: path, Stage: StageTexture, Err: err}
	}

	h := t.next
	t.records[h] = TextureRecord{
		Handle:  h,
		Texture: tex,
		Width:   img.Width,
		Height:  img.Height,
	}
	t.next++

	t.logger.Debug("stage: texture loaded",
		"handle", int(h), "path", path, "width", img.Width, "height", img.Height, "format", img.Format)
	return h, nil
}

// Get returns the record for h. A missing handle is reported with
// ok == false and is not an error.
func (t *TextureTable) Get(h TextureHandle) (TextureRecord, bool) {
	rec, ok := t.records[h]
	return rec, ok
}

// Len returns the number of live textures.
func (t *TextureTable) Len() int {
	return len(t.records)
}

// DestroyAll destroys every texture and empties the table. The handle
// counter is not reset, so handles stay unique for the table's lifetime.
func (t *TextureTable) DestroyAll() error {
	var errs []error
	for h, rec := range t.records {
		if err := rec.Texture.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("stage: destroy texture %d: %w", h, err))
		}
		delete(t.records, h)
	}
	return errors.Join(errs...)
}
