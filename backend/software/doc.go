// Package software implements backend.Backend in pure Go.
//
// Frames are drawn into an in-memory *image.RGBA back buffer. Present copies
// the back buffer into a front buffer that can be read with Frame or written
// out with SavePNG, so the package works without a display and is what the
// renderer falls back to when no native backend is built in.
//
// Importing the package registers it under backend.NameSoftware:
//
//	import _ "github.com/gogpu/stage/backend/software"
//
// Texture copies go through golang.org/x/image/draw. Text is shaped with
// go-text/typesetting and rasterized from sfnt outlines with
// golang.org/x/image/vector.
package software
