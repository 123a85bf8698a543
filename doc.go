// Package stage is the rendering façade of a small 2D game.
//
// # Overview
//
// A Renderer sits between the game loop and a graphics backend. The game
// loads image files as textures, draws them in world coordinates, and asks
// for a heads-up display of remaining lives and a score counter. The
// renderer translates world coordinates through a Camera and forwards every
// draw to the backend.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/stage"
//		"github.com/gogpu/stage/backend"
//		_ "github.com/gogpu/stage/backend/software"
//	)
//
//	b, err := backend.OpenDefault(backend.DefaultConfig())
//	r, err := stage.New(b, stage.WithFont("ui.ttf", 16), stage.WithIcon("heart.png"))
//	defer r.Close()
//
//	player, err := r.LoadTexture("player.png")
//
//	// Each frame
//	r.SetDrawColor(0, 0, 0, 255)
//	r.ClearScreen()
//	r.RenderTexture(player, stage.Rect{W: 32, H: 32}, stage.Rect{X: px, Y: py, W: 32, H: 32}, stage.Transform{})
//	r.DrawUI(lives, avoided)
//	r.PresentFrame()
//
// # Backends
//
// A backend is anything implementing backend.Backend. The software backend
// is pure Go and always available; the sdl2 and ebitengine packages are
// built with the "sdl" and "ebiten" build tags. The recording backend
// captures calls as typed commands for tests.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in degrees, positive is clockwise
//
// World rectangles are translated by the camera origin; the HUD is drawn in
// screen coordinates.
//
// # Errors
//
// New fails with an *InitError matching ErrInit. Texture loads fail with a
// *LoadError matching ErrLoad and leave the renderer usable. Drawing with a
// handle that was never loaded is not an error; the draw is skipped.
package stage

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
