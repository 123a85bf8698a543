// Package backend defines the capability set the stage renderer needs from a
// native graphics library, and a registry to pick one at runtime.
//
// The renderer never branches on platform. It only calls an injected Backend
// that can create surfaces and textures, draw, clear and present, plus the
// TextRenderer it hands out.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Importing a backend package registers it:
//
//	import _ "github.com/gogpu/stage/backend/software"
//
// # Backend Selection
//
// Use OpenDefault to get the best available backend, or Open to request
// a specific backend by name:
//
//	b, err := backend.OpenDefault(backend.DefaultConfig())
//
//	// Or request a specific backend
//	b, err := backend.Open("software", backend.Config{Width: 320, Height: 240})
//
// # Available Backends
//
//   - "software": pure Go, renders into memory (always available)
//   - "sdl": go-sdl2 window and SDL_ttf text (build tag sdl)
//   - "ebiten": ebiten window and text/v2 (build tag ebiten)
//
// The recording backend in backend/recording is not registered; construct
// it directly to capture draw commands.
package backend
