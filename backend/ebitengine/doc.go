//go:build ebiten

// Package ebitengine implements backend.Backend on Ebitengine.
//
// Ebitengine owns the frame loop, so the backend is also a backend.Looper:
// Run hands the frame function to ebiten.RunGame. Draw calls made inside
// the frame function go to an offscreen back buffer; Present copies it to
// the buffer Ebitengine shows on the next Draw.
//
// The package is only built with the "ebiten" build tag. Importing it
// registers the backend under backend.NameEbiten.
package ebitengine
