//go:build sdl

// Package sdl2 implements backend.Backend on SDL2 through go-sdl2.
//
// The package is only built with the "sdl" build tag, since it needs cgo
// and the SDL2 and SDL2_ttf development libraries:
//
//	go build -tags sdl ./...
//
// Importing it registers the backend under backend.NameSDL.
package sdl2
