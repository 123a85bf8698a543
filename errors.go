package stage

import (
	"errors"
	"fmt"
)

// Sentinel errors for the renderer.
var (
	// ErrInit matches every *InitError. Construction failures are fatal:
	// there is no partial renderer and no retry.
	ErrInit = errors.New("stage: renderer initialization failed")

	// ErrLoad matches every *LoadError. A failed load leaves the
	// texture table unchanged and the renderer usable.
	ErrLoad = errors.New("stage: texture load failed")

	// ErrClosed is returned by renderer operations after Close.
	ErrClosed = errors.New("stage: renderer closed")
)

// Construction stages reported by InitError.
const (
	StageBlend = "blend"
	StageText  = "text"
	StageFont  = "font"
	StageIcon  = "icon"
)

// Load stages reported by LoadError.
const (
	StageDecode  = "decode"
	StageSurface = "surface"
	StageTexture = "texture"
)

// InitError is returned by New when the renderer cannot be brought up.
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("stage: init %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInit.
func (e *InitError) Is(target error) bool { return target == ErrInit }

// LoadError is returned when a texture cannot be loaded.
type LoadError struct {
	Path  string
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("stage: load %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }
