// Package recording provides a backend that captures every call as a typed
// command instead of drawing.
//
// The recording backend is the test double for the stage renderer and a
// headless way to inspect what a frame would draw. It tracks live surfaces,
// textures and fonts so leaks show up as non-zero counters, and it can be
// told to fail any operation.
//
// # Basic Usage
//
//	rec := recording.New(800, 600)
//	r, err := stage.New(rec, stage.WithFont("ui.ttf", 16))
//	...
//	r.DrawUI(3, 7)
//
//	for _, cmd := range rec.CommandsOf(recording.CmdCopy) {
//	    c := cmd.(recording.CopyCommand)
//	    fmt.Println(c.Dst)
//	}
//
// # Failure Injection
//
//	rec.Fail.CreateTexture = errors.New("out of video memory")
//
// # Playback
//
// A recorded session can be replayed onto a real backend, e.g. to turn a
// test run into a PNG with the software backend:
//
//	err := rec.Playback(sw)
//
// Text measured during recording uses a fixed cell of GlyphWidth by the font
// size, so a replayed frame may place text differently than a live one.
package recording
