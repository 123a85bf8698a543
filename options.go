package stage

import "golang.org/x/text/language"

// Default asset locations, relative to the working directory.
const (
	DefaultFontPath = "Assets/arial.ttf"
	DefaultFontSize = 16
	DefaultIconPath = "Assets/heart.png"
)

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default assets
//	r, err := stage.New(b)
//
//	// Custom font and cached HUD text
//	r, err := stage.New(b, stage.WithFont("ui.ttf", 20), stage.WithTextCache())
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	fontPath     string
	fontSize     int
	iconPath     string
	textColor    Color
	lang         language.Tag
	localized    bool
	textCache    bool
	followCamera bool
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		fontPath:  DefaultFontPath,
		fontSize:  DefaultFontSize,
		iconPath:  DefaultIconPath,
		textColor: White,
		lang:      language.Und,
	}
}

// WithFont sets the HUD font file and point size.
func WithFont(path string, size int) Option {
	return func(o *options) {
		o.fontPath = path
		o.fontSize = size
	}
}

// WithIcon sets the image drawn once per remaining life in the HUD.
func WithIcon(path string) Option {
	return func(o *options) {
		o.iconPath = path
	}
}

// WithTextColor sets the HUD text color. The default is White.
func WithTextColor(c Color) Option {
	return func(o *options) {
		o.textColor = c
	}
}

// WithLanguage formats the HUD counter for tag, e.g. with digit grouping.
// Without it the counter is plain digits.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
		o.localized = true
	}
}

// WithTextCache keeps the last rendered HUD string as a texture and only
// re-renders when the string changes.
//
// Without it the counter text is rasterized, uploaded and destroyed on
// every DrawUI call.
func WithTextCache() Option {
	return func(o *options) {
		o.textCache = true
	}
}

// WithFollowCamera lets CameraLookAt move the camera. Without it the
// viewport only changes through SetWorldBounds.
func WithFollowCamera() Option {
	return func(o *options) {
		o.followCamera = true
	}
}
