package stage

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/backend/recording"
)

const (
	testWidth    = 800
	testHeight   = 600
	testFontPath = "fonts/ui.ttf"
	testFontSize = 16
)

// newTestRenderer creates a renderer on an 800x600 recording backend with
// a 64x48 icon, so HUD icons are displayed at 16x12.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *recording.Backend) {
	t.Helper()
	rec := recording.New(testWidth, testHeight)
	icon := writeTestPNG(t, "heart.png", 64, 48, color.NRGBA{R: 255, A: 255})

	all := append([]Option{WithFont(testFontPath, testFontSize), WithIcon(icon)}, opts...)
	r, err := New(rec, all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, rec
}

func commandTypes(cmds []recording.Command) []recording.CommandType {
	out := make([]recording.CommandType, len(cmds))
	for i, c := range cmds {
		out[i] = c.Type()
	}
	return out
}

func TestNewSequence(t *testing.T) {
	_, rec := newTestRenderer(t)

	want := []recording.CommandType{
		recording.CmdSetBlendMode,
		recording.CmdTextInit,
		recording.CmdOpenFont,
		recording.CmdCreateSurface,
		recording.CmdCreateTexture,
		recording.CmdFreeSurface,
	}
	got := commandTypes(rec.Commands())
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if rec.BlendMode() != backend.BlendAlpha {
		t.Errorf("BlendMode() = %v, want alpha", rec.BlendMode())
	}
	open := rec.CommandsOf(recording.CmdOpenFont)[0].(recording.OpenFontCommand)
	if open.Path != testFontPath || open.Size != testFontSize {
		t.Errorf("OpenFont(%q, %d), want (%q, %d)", open.Path, open.Size, testFontPath, testFontSize)
	}
	if rec.LiveTextures() != 1 || rec.LiveFonts() != 1 || rec.LiveSurfaces() != 0 {
		t.Errorf("live = (%d textures, %d fonts, %d surfaces), want (1, 1, 0)",
			rec.LiveTextures(), rec.LiveFonts(), rec.LiveSurfaces())
	}
}

func TestNewCameraMatchesWindow(t *testing.T) {
	r, _ := newTestRenderer(t)
	w, h := r.Camera().Viewport()
	if w != testWidth || h != testHeight {
		t.Errorf("Viewport() = %dx%d, want %dx%d", w, h, testWidth, testHeight)
	}
	if got := r.Camera().Origin(); got != (Point{}) {
		t.Errorf("Origin() = %v, want (0,0)", got)
	}
}

func TestNewFailures(t *testing.T) {
	boom := errors.New("boom")
	icon := writeTestPNG(t, "heart.png", 8, 8, color.NRGBA{A: 255})
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name      string
		fail      func(*recording.Failures)
		iconPath  string
		wantStage string
		wantQuit  bool
	}{
		{"blend", func(f *recording.Failures) { f.SetBlendMode = boom }, icon, StageBlend, false},
		{"text", func(f *recording.Failures) { f.TextInit = boom }, icon, StageText, false},
		{"font", func(f *recording.Failures) { f.OpenFont = boom }, icon, StageFont, true},
		{"icon missing", nil, missing, StageIcon, true},
		{"icon texture", func(f *recording.Failures) { f.CreateTexture = boom }, icon, StageIcon, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.New(testWidth, testHeight)
			if tt.fail != nil {
				tt.fail(&rec.Fail)
			}

			r, err := New(rec, WithFont(testFontPath, testFontSize), WithIcon(tt.iconPath))
			if r != nil {
				t.Error("New() returned a renderer on failure")
			}
			if !errors.Is(err, ErrInit) {
				t.Fatalf("New() error = %v, want ErrInit", err)
			}
			var ie *InitError
			if !errors.As(err, &ie) || ie.Stage != tt.wantStage {
				t.Errorf("InitError = %+v, want stage %q", ie, tt.wantStage)
			}

			if rec.LiveFonts() != 0 || rec.LiveTextures() != 0 || rec.LiveSurfaces() != 0 {
				t.Errorf("leaked (%d fonts, %d textures, %d surfaces)",
					rec.LiveFonts(), rec.LiveTextures(), rec.LiveSurfaces())
			}
			if got := rec.Count(recording.CmdTextQuit) == 1; got != tt.wantQuit {
				t.Errorf("text quit = %v, want %v", got, tt.wantQuit)
			}
			if rec.Closed() {
				t.Error("New() closed the backend it was given")
			}
		})
	}
}

func TestNewIconLoadErrorIsAlsoLoadError(t *testing.T) {
	rec := recording.New(testWidth, testHeight)
	_, err := New(rec, WithIcon(filepath.Join(t.TempDir(), "none.png")))
	if !errors.Is(err, ErrInit) || !errors.Is(err, ErrLoad) {
		t.Errorf("New() error = %v, want both ErrInit and ErrLoad", err)
	}
}

func TestRenderTextureUnknownHandle(t *testing.T) {
	r, rec := newTestRenderer(t)
	rec.Reset()

	if err := r.RenderTexture(99, Rect{W: 10, H: 10}, Rect{W: 10, H: 10}, Transform{}); err != nil {
		t.Fatalf("RenderTexture(unknown) error = %v, want nil", err)
	}
	if n := rec.Count(recording.CmdCopy); n != 0 {
		t.Errorf("Copy commands = %d, want 0", n)
	}
}

func TestRenderTextureTranslatesDestination(t *testing.T) {
	r, rec := newTestRenderer(t)
	h, err := r.LoadTexture(writeTestPNG(t, "s.png", 32, 32, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	src := Rect{X: 0, Y: 0, W: 32, H: 32}
	dst := Rect{X: 150, Y: 80, W: 32, H: 32}
	center := Point{X: 1, Y: 2}
	tf := Transform{Flip: FlipHorizontal, Angle: 90, Center: &center}

	r.SetWorldBounds(Rect{X: 100, Y: 50, W: 2000, H: 2000})
	if err := r.RenderTexture(h, src, dst, tf); err != nil {
		t.Fatal(err)
	}
	// The new bounds take effect on the very next draw.
	r.SetWorldBounds(Rect{X: 300, Y: 300, W: 2000, H: 2000})
	if err := r.RenderTexture(h, src, dst, tf); err != nil {
		t.Fatal(err)
	}

	copies := rec.CommandsOf(recording.CmdCopy)
	if len(copies) != 2 {
		t.Fatalf("Copy commands = %d, want 2", len(copies))
	}
	wantDst := []Rect{
		{X: 50, Y: 30, W: 32, H: 32},
		{X: -150, Y: -220, W: 32, H: 32},
	}
	for i, c := range copies {
		cc := c.(recording.CopyCommand)
		if cc.Dst != wantDst[i] {
			t.Errorf("copy[%d].Dst = %v, want %v", i, cc.Dst, wantDst[i])
		}
		if cc.Src != src {
			t.Errorf("copy[%d].Src = %v, want %v", i, cc.Src, src)
		}
		if cc.Options.Flip != FlipHorizontal || cc.Options.Angle != 90 {
			t.Errorf("copy[%d].Options = %+v", i, cc.Options)
		}
		if cc.Options.Center == nil || *cc.Options.Center != center {
			t.Errorf("copy[%d].Options.Center = %v, want %v", i, cc.Options.Center, center)
		}
	}
}

func TestCameraLookAtRequiresFollow(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.SetWorldBounds(Rect{W: 4000, H: 4000})

	r.CameraLookAt(2000, 2000)
	if got := r.Camera().Origin(); got != (Point{}) {
		t.Errorf("Origin() after CameraLookAt without follow = %v, want (0,0)", got)
	}

	f, _ := newTestRenderer(t, WithFollowCamera())
	f.SetWorldBounds(Rect{W: 4000, H: 4000})
	f.CameraLookAt(2000, 2000)
	if got := f.Camera().Origin(); got != (Point{X: 1600, Y: 1700}) {
		t.Errorf("Origin() after CameraLookAt = %v, want (1600,1700)", got)
	}
	if got := f.ToWorldCoordinates(10, 20); got != (Point{X: 1610, Y: 1720}) {
		t.Errorf("ToWorldCoordinates(10, 20) = %v, want (1610,1720)", got)
	}
}

func TestFrameCommandOrder(t *testing.T) {
	r, rec := newTestRenderer(t)
	h, err := r.LoadTexture(writeTestPNG(t, "s.png", 4, 4, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	steps := []func() error{
		func() error { return r.SetDrawColor(1, 2, 3, 255) },
		r.ClearScreen,
		func() error { return r.RenderTexture(h, Rect{W: 4, H: 4}, Rect{W: 4, H: 4}, Transform{}) },
		func() error { return r.RenderTexture(h, Rect{W: 4, H: 4}, Rect{X: 8, W: 4, H: 4}, Transform{}) },
		r.PresentFrame,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	want := []recording.CommandType{
		recording.CmdSetDrawColor,
		recording.CmdClear,
		recording.CmdCopy,
		recording.CmdCopy,
		recording.CmdPresent,
	}
	got := commandTypes(rec.Commands())
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	clr := rec.CommandsOf(recording.CmdClear)[0].(recording.ClearCommand)
	if want := (Color{R: 1, G: 2, B: 3, A: 255}); clr.Color != want {
		t.Errorf("Clear color = %v, want %v", clr.Color, want)
	}
}

func TestBackendErrorsPropagate(t *testing.T) {
	r, rec := newTestRenderer(t)
	boom := errors.New("boom")
	rec.Fail.Clear = boom
	rec.Fail.Present = boom

	if err := r.ClearScreen(); !errors.Is(err, boom) {
		t.Errorf("ClearScreen() error = %v, want boom", err)
	}
	if err := r.PresentFrame(); !errors.Is(err, boom) {
		t.Errorf("PresentFrame() error = %v, want boom", err)
	}
}

func TestLoadTextureFailureKeepsRendererUsable(t *testing.T) {
	r, _ := newTestRenderer(t)

	if _, err := r.LoadTexture(filepath.Join(t.TempDir(), "gone.png")); !errors.Is(err, ErrLoad) {
		t.Fatalf("LoadTexture(missing) error = %v, want ErrLoad", err)
	}
	// The icon took handle 0.
	h, err := r.LoadTexture(writeTestPNG(t, "ok.png", 2, 2, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	if h != 1 {
		t.Errorf("handle = %d, want 1", h)
	}
	if rec, ok := r.TextureInfo(h); !ok || rec.Width != 2 || rec.Height != 2 {
		t.Errorf("TextureInfo(%d) = %+v, %v", h, rec, ok)
	}
}

func TestClose(t *testing.T) {
	r, rec := newTestRenderer(t, WithTextCache())
	for i := range 3 {
		if _, err := r.LoadTexture(writeTestPNG(t, "t.png", 2, 2, color.NRGBA{A: 255})); err != nil {
			t.Fatalf("LoadTexture #%d error = %v", i, err)
		}
	}
	if err := r.DrawUI(2, 5); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if rec.LiveTextures() != 0 || rec.LiveFonts() != 0 || rec.LiveSurfaces() != 0 {
		t.Errorf("after Close: (%d textures, %d fonts, %d surfaces) live",
			rec.LiveTextures(), rec.LiveFonts(), rec.LiveSurfaces())
	}
	if !rec.Closed() {
		t.Error("backend not closed")
	}

	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if n := rec.Count(recording.CmdClose); n != 1 {
		t.Errorf("backend Close calls = %d, want 1", n)
	}

	ops := map[string]func() error{
		"ClearScreen":   r.ClearScreen,
		"PresentFrame":  r.PresentFrame,
		"SetDrawColor":  func() error { return r.SetDrawColor(0, 0, 0, 0) },
		"DrawUI":        func() error { return r.DrawUI(1, 1) },
		"RenderTexture": func() error { return r.RenderTexture(0, Rect{}, Rect{}, Transform{}) },
		"LoadTexture": func() error {
			_, err := r.LoadTexture("x.png")
			return err
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrClosed) {
			t.Errorf("%s after Close error = %v, want ErrClosed", name, err)
		}
	}
}
