// Command stagedemo runs a short bomb-dodging scene through the stage
// renderer.
//
// With the software backend the last frame is written to a PNG file:
//
//	stagedemo -frames 120 -output demo.png
//
// Build with -tags sdl or -tags ebiten to open a window instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/backend"
	"github.com/gogpu/stage/backend/software"
)

func main() {
	var (
		name    = flag.String("backend", "", "backend name (default: best available)")
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		frames  = flag.Int("frames", 120, "frames to draw with the software backend")
		font    = flag.String("font", "", "HUD font file (default: Go Regular)")
		icon    = flag.String("icon", "", "HUD life icon (default: generated heart)")
		output  = flag.String("output", "demo.png", "PNG file for the last software frame")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	stage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*name, *width, *height, *frames, *font, *icon, *output); err != nil {
		fmt.Fprintln(os.Stderr, "stagedemo:", err)
		os.Exit(1)
	}
}

func run(name string, width, height, frames int, fontPath, iconPath, output string) error {
	assets, err := os.MkdirTemp("", "stagedemo")
	if err != nil {
		return err
	}
	defer os.RemoveAll(assets)

	if fontPath == "" {
		if fontPath, err = writeDefaultFont(assets); err != nil {
			return err
		}
	}
	if iconPath == "" {
		if iconPath, err = writeIcon(assets, "heart.png", heartImage(64)); err != nil {
			return err
		}
	}
	bombPath, err := writeIcon(assets, "bomb.png", bombImage(32))
	if err != nil {
		return err
	}

	cfg := backend.Config{Title: "stage demo", Width: width, Height: height}
	var b backend.Backend
	if name == "" {
		b, err = backend.OpenDefault(cfg)
	} else {
		b, err = backend.Open(name, cfg)
	}
	if err != nil {
		return err
	}
	sw, isSoftware := b.(*software.Backend)
	if isSoftware {
		sw.SetFrameLimit(frames)
	}

	r, err := stage.New(b,
		stage.WithFont(fontPath, stage.DefaultFontSize),
		stage.WithIcon(iconPath),
		stage.WithTextCache(),
		stage.WithFollowCamera(),
	)
	if err != nil {
		_ = b.Close()
		return err
	}
	defer r.Close()

	bomb, err := r.LoadTexture(bombPath)
	if err != nil {
		return err
	}
	scene := newScene(r, bomb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if looper, ok := b.(backend.Looper); ok {
		err = looper.Run(ctx, scene.frame)
	} else {
		for range frames {
			if err = scene.frame(); err != nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}

	if isSoftware && output != "" {
		if err := sw.SavePNG(output); err != nil {
			return err
		}
		stage.Logger().Info("stagedemo: frame saved", "path", output, "frames", sw.Frames())
	}
	return nil
}
