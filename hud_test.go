package stage

import (
	"errors"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/backend/recording"
)

func TestCounterText(t *testing.T) {
	tests := []struct {
		opts []Option
		n    int
		want string
	}{
		{nil, 0, "Bombs avoided: 0"},
		{nil, 1234, "Bombs avoided: 1234"},
		{nil, 1234567, "Bombs avoided: 1234567"},
		{[]Option{WithLanguage(language.English)}, 7, "Bombs avoided: 7"},
		{[]Option{WithLanguage(language.English)}, 1234567, "Bombs avoided: 1,234,567"},
		{[]Option{WithLanguage(language.German)}, 1234567, "Bombs avoided: 1.234.567"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r, _ := newTestRenderer(t, tt.opts...)
			if got := r.CounterText(tt.n); got != tt.want {
				t.Errorf("CounterText(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestDrawUILayout(t *testing.T) {
	r, rec := newTestRenderer(t)
	iconID, _ := rec.TextureID(mustTexture(t, r, r.icon))
	rec.Reset()

	if err := r.DrawUI(3, 7); err != nil {
		t.Fatalf("DrawUI() error = %v", err)
	}
	if rec.Commands()[0].Type() != recording.CmdSetBlendMode {
		t.Errorf("first command = %v, want SetBlendMode", rec.Commands()[0].Type())
	}

	copies := rec.CommandsOf(recording.CmdCopy)
	if len(copies) != 4 {
		t.Fatalf("Copy commands = %d, want 3 icons + 1 text", len(copies))
	}

	// Icons: 64x48 at 1/4 size, right-aligned, right to left.
	wantX := []int{770, 750, 730}
	for i := range 3 {
		cc := copies[i].(recording.CopyCommand)
		if cc.Texture != iconID {
			t.Errorf("icon copy %d texture = %d, want %d", i, cc.Texture, iconID)
		}
		want := Rect{X: wantX[i], Y: 10, W: 16, H: 12}
		if cc.Dst != want {
			t.Errorf("icon copy %d Dst = %v, want %v", i, cc.Dst, want)
		}
		if cc.Src != (Rect{W: 64, H: 48}) {
			t.Errorf("icon copy %d Src = %v, want full icon", i, cc.Src)
		}
	}

	// Text: right-aligned below the icon row.
	s := "Bombs avoided: 7"
	tw := utf8.RuneCountInString(s) * recording.GlyphWidth
	text := copies[3].(recording.CopyCommand)
	if text.Texture == iconID {
		t.Error("text copy used the icon texture")
	}
	want := Rect{X: testWidth - 10 - tw, Y: 10 + 12 + 5, W: tw, H: testFontSize}
	if text.Dst != want {
		t.Errorf("text Dst = %v, want %v", text.Dst, want)
	}

	rt := rec.CommandsOf(recording.CmdRenderText)
	if len(rt) != 1 || rt[0].(recording.RenderTextCommand).Text != s {
		t.Errorf("RenderText = %v, want one call with %q", rt, s)
	}
	if rt[0].(recording.RenderTextCommand).Color != White {
		t.Errorf("text color = %v, want White", rt[0].(recording.RenderTextCommand).Color)
	}
}

func TestDrawUIIgnoresCamera(t *testing.T) {
	r, rec := newTestRenderer(t, WithFollowCamera())
	r.SetWorldBounds(Rect{W: 5000, H: 5000})
	r.CameraLookAt(2500, 2500)
	rec.Reset()

	if err := r.DrawUI(1, 0); err != nil {
		t.Fatal(err)
	}
	cc := rec.CommandsOf(recording.CmdCopy)[0].(recording.CopyCommand)
	if cc.Dst.X != 770 || cc.Dst.Y != 10 {
		t.Errorf("icon Dst = %v, want screen position (770,10)", cc.Dst)
	}
}

func TestDrawUINoLives(t *testing.T) {
	for _, lives := range []int{0, -3} {
		r, rec := newTestRenderer(t)
		rec.Reset()
		if err := r.DrawUI(lives, 1); err != nil {
			t.Fatalf("DrawUI(%d) error = %v", lives, err)
		}
		if n := rec.Count(recording.CmdCopy); n != 1 {
			t.Errorf("DrawUI(%d) Copy commands = %d, want only the text", lives, n)
		}
	}
}

func TestDrawUIRestoresBlendMode(t *testing.T) {
	r, rec := newTestRenderer(t)
	if err := rec.SetBlendMode(backend.BlendNone); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawUI(1, 1); err != nil {
		t.Fatal(err)
	}
	if rec.BlendMode() != backend.BlendAlpha {
		t.Errorf("BlendMode() after DrawUI = %v, want alpha", rec.BlendMode())
	}
}

func TestDrawUITextPerFrame(t *testing.T) {
	r, rec := newTestRenderer(t)
	rec.Reset()

	for range 3 {
		if err := r.DrawUI(2, 9); err != nil {
			t.Fatal(err)
		}
	}
	if n := rec.Count(recording.CmdRenderText); n != 3 {
		t.Errorf("RenderText calls = %d, want 3", n)
	}
	if n := rec.Count(recording.CmdDestroyTexture); n != 3 {
		t.Errorf("DestroyTexture calls = %d, want 3", n)
	}
	// Only the icon is left.
	if rec.LiveTextures() != 1 || rec.LiveSurfaces() != 0 {
		t.Errorf("live = (%d textures, %d surfaces), want (1, 0)", rec.LiveTextures(), rec.LiveSurfaces())
	}
}

func TestDrawUITextCache(t *testing.T) {
	r, rec := newTestRenderer(t, WithTextCache())
	rec.Reset()

	counters := []int{9, 9, 9, 10, 10}
	for _, n := range counters {
		if err := r.DrawUI(1, n); err != nil {
			t.Fatal(err)
		}
	}
	if n := rec.Count(recording.CmdRenderText); n != 2 {
		t.Errorf("RenderText calls = %d, want 2 (one per distinct string)", n)
	}
	if n := rec.Count(recording.CmdDestroyTexture); n != 1 {
		t.Errorf("DestroyTexture calls = %d, want 1 (the replaced string)", n)
	}
	if rec.LiveTextures() != 2 {
		t.Errorf("LiveTextures() = %d, want icon + cached text", rec.LiveTextures())
	}
}

func TestDrawUITextFailure(t *testing.T) {
	r, rec := newTestRenderer(t)
	boom := errors.New("boom")
	rec.Fail.RenderText = boom
	rec.Reset()

	if err := r.DrawUI(2, 1); !errors.Is(err, boom) {
		t.Fatalf("DrawUI() error = %v, want boom", err)
	}
	// Icons were already drawn; nothing leaked.
	if n := rec.Count(recording.CmdCopy); n != 2 {
		t.Errorf("Copy commands = %d, want 2", n)
	}
	if rec.LiveSurfaces() != 0 || rec.LiveTextures() != 1 {
		t.Errorf("live = (%d surfaces, %d textures), want (0, 1)", rec.LiveSurfaces(), rec.LiveTextures())
	}

	rec.Fail = recording.Failures{}
	if err := r.DrawUI(2, 1); err != nil {
		t.Errorf("DrawUI() after recovery error = %v", err)
	}
}

func mustTexture(t *testing.T, r *Renderer, h TextureHandle) backend.Texture {
	t.Helper()
	rec, ok := r.TextureInfo(h)
	if !ok {
		t.Fatalf("TextureInfo(%d) missing", h)
	}
	return rec.Texture
}
