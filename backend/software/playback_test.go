package software

import (
	"image/color"
	"testing"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/backend/recording"
	"github.com/gogpu/stage/geom"
)

func TestPlaybackOntoSoftware(t *testing.T) {
	rec := recording.New(8, 8)
	pix := make([]byte, 2*2*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+3] = 255, 255
	}
	s, err := rec.CreateSurface(pix, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	tex, err := rec.CreateTextureFromSurface(s)
	if err != nil {
		t.Fatal(err)
	}
	s.Free()
	steps := []error{
		rec.SetBlendMode(backend.BlendAlpha),
		rec.SetDrawColor(color.RGBA{G: 255, A: 255}),
		rec.Clear(),
		rec.Copy(tex, geom.R(0, 0, 2, 2), geom.R(4, 4, 4, 4), backend.CopyOptions{}),
		rec.Present(),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	sw := newTestBackend(t, 8, 8)
	if err := rec.Playback(sw); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	frame := sw.Frame()
	if got := frame.RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("background = %v, want green", got)
	}
	if got := frame.RGBAAt(6, 6); got != red {
		t.Errorf("copied pixel = %v, want red", got)
	}
	if len(sw.textures) != 0 || len(sw.surfaces) != 0 {
		t.Errorf("playback leaked %d textures, %d surfaces", len(sw.textures), len(sw.surfaces))
	}
}
