//go:build sdl

package main

import (
	"runtime"

	_ "github.com/gogpu/stage/backend/sdl2"
)

// SDL must be driven from the thread that initialized it.
func init() {
	runtime.LockOSThread()
}
