package recording

import (
	"image/color"

	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/geom"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one backend call.
type CommandType uint8

const (
	// Resource commands
	CmdCreateSurface  CommandType = iota // Create a surface from RGBA pixels
	CmdFreeSurface                       // Free a surface
	CmdCreateTexture                     // Create a texture from a surface
	CmdDestroyTexture                    // Destroy a texture

	// Frame commands
	CmdSetBlendMode // Set the blend mode
	CmdSetDrawColor // Set the clear color
	CmdClear        // Clear the frame
	CmdCopy         // Draw a texture region
	CmdPresent      // Present the frame

	// Text commands
	CmdTextInit   // Initialize the text library
	CmdOpenFont   // Open a font
	CmdCloseFont  // Close a font
	CmdRenderText // Render a string to a surface
	CmdTextQuit   // Shut the text library down

	CmdClose // Close the backend
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateSurface:  "CreateSurface",
	CmdFreeSurface:    "FreeSurface",
	CmdCreateTexture:  "CreateTexture",
	CmdDestroyTexture: "DestroyTexture",
	CmdSetBlendMode:   "SetBlendMode",
	CmdSetDrawColor:   "SetDrawColor",
	CmdClear:          "Clear",
	CmdCopy:           "Copy",
	CmdPresent:        "Present",
	CmdTextInit:       "TextInit",
	CmdOpenFont:       "OpenFont",
	CmdCloseFont:      "CloseFont",
	CmdRenderText:     "RenderText",
	CmdTextQuit:       "TextQuit",
	CmdClose:          "Close",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ID identifies a surface, texture or font within one recording.
// IDs are shared across resource kinds and never reused.
type ID uint32

// --------------------------------------------------------------------------
// Resource Commands
// --------------------------------------------------------------------------

// CreateSurfaceCommand records a successful CreateSurface.
type CreateSurfaceCommand struct {
	Surface ID
	Width   int
	Height  int
	// Pix is a copy of the uploaded pixels, kept for Playback.
	Pix []byte
}

// Type implements Command.
func (CreateSurfaceCommand) Type() CommandType { return CmdCreateSurface }

// FreeSurfaceCommand records a surface release.
type FreeSurfaceCommand struct {
	Surface ID
}

// Type implements Command.
func (FreeSurfaceCommand) Type() CommandType { return CmdFreeSurface }

// CreateTextureCommand records a successful CreateTextureFromSurface.
type CreateTextureCommand struct {
	Texture ID
	Surface ID
	Width   int
	Height  int
}

// Type implements Command.
func (CreateTextureCommand) Type() CommandType { return CmdCreateTexture }

// DestroyTextureCommand records a texture release.
type DestroyTextureCommand struct {
	Texture ID
}

// Type implements Command.
func (DestroyTextureCommand) Type() CommandType { return CmdDestroyTexture }

// --------------------------------------------------------------------------
// Frame Commands
// --------------------------------------------------------------------------

// SetBlendModeCommand records a blend mode change.
type SetBlendModeCommand struct {
	Mode backend.BlendMode
}

// Type implements Command.
func (SetBlendModeCommand) Type() CommandType { return CmdSetBlendMode }

// SetDrawColorCommand records a draw color change.
type SetDrawColorCommand struct {
	Color color.RGBA
}

// Type implements Command.
func (SetDrawColorCommand) Type() CommandType { return CmdSetDrawColor }

// ClearCommand records a frame clear with the draw color at that time.
type ClearCommand struct {
	Color color.RGBA
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// CopyCommand records a draw call.
type CopyCommand struct {
	Texture ID
	// Src is the source region in texture pixels.
	Src geom.Rect
	// Dst is the destination region in screen coordinates.
	Dst     geom.Rect
	Options backend.CopyOptions
}

// Type implements Command.
func (CopyCommand) Type() CommandType { return CmdCopy }

// PresentCommand records a frame present.
type PresentCommand struct{}

// Type implements Command.
func (PresentCommand) Type() CommandType { return CmdPresent }

// --------------------------------------------------------------------------
// Text Commands
// --------------------------------------------------------------------------

// TextInitCommand records text library initialization.
type TextInitCommand struct{}

// Type implements Command.
func (TextInitCommand) Type() CommandType { return CmdTextInit }

// OpenFontCommand records a successful OpenFont.
type OpenFontCommand struct {
	Font ID
	Path string
	Size int
}

// Type implements Command.
func (OpenFontCommand) Type() CommandType { return CmdOpenFont }

// CloseFontCommand records a font release.
type CloseFontCommand struct {
	Font ID
}

// Type implements Command.
func (CloseFontCommand) Type() CommandType { return CmdCloseFont }

// RenderTextCommand records a successful RenderText.
type RenderTextCommand struct {
	Font    ID
	Surface ID
	Text    string
	Color   color.RGBA
}

// Type implements Command.
func (RenderTextCommand) Type() CommandType { return CmdRenderText }

// TextQuitCommand records text library shutdown.
type TextQuitCommand struct{}

// Type implements Command.
func (TextQuitCommand) Type() CommandType { return CmdTextQuit }

// CloseCommand records backend shutdown.
type CloseCommand struct{}

// Type implements Command.
func (CloseCommand) Type() CommandType { return CmdClose }
