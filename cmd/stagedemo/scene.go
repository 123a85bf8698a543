package main

import (
	"math/rand/v2"

	"github.com/gogpu/stage"
)

const (
	worldW    = 2000
	worldH    = 1500
	bombSize  = 32
	bombCount = 12
	startLife = 3
)

type bomb struct {
	x, y, vy int
	angle    float64
}

// scene is a player drifting through a world of falling bombs. Bombs that
// leave the bottom of the world count as avoided; bombs that pass through
// the player cost a life.
type scene struct {
	r       *stage.Renderer
	tex     stage.TextureHandle
	rng     *rand.Rand
	bombs   []bomb
	px, py  int
	lives   int
	avoided int
	tick    int
}

func newScene(r *stage.Renderer, tex stage.TextureHandle) *scene {
	s := &scene{
		r:     r,
		tex:   tex,
		rng:   rand.New(rand.NewPCG(1, 2)),
		px:    worldW / 2,
		py:    worldH - 200,
		lives: startLife,
	}
	r.SetWorldBounds(stage.Rect{W: worldW, H: worldH})
	for range bombCount {
		s.bombs = append(s.bombs, s.spawn())
	}
	return s
}

func (s *scene) spawn() bomb {
	return bomb{
		x:  s.rng.IntN(worldW - bombSize),
		y:  -s.rng.IntN(worldH),
		vy: 4 + s.rng.IntN(8),
	}
}

func (s *scene) update() {
	s.tick++
	// Sweep the player back and forth along the bottom of the world.
	s.px += 6
	if s.px > worldW {
		s.px = 0
	}
	s.r.CameraLookAt(s.px, s.py)

	player := stage.Rect{X: s.px - 16, Y: s.py - 16, W: 32, H: 32}
	for i := range s.bombs {
		b := &s.bombs[i]
		b.y += b.vy
		b.angle += 3
		hit := player.Contains(stage.Point{X: b.x + bombSize/2, Y: b.y + bombSize/2})
		switch {
		case hit:
			s.lives = max(s.lives-1, 0)
			*b = s.spawn()
		case b.y > worldH:
			s.avoided++
			*b = s.spawn()
		}
	}
	if s.lives == 0 {
		s.lives = startLife
	}
}

func (s *scene) frame() error {
	s.update()

	if err := s.r.SetDrawColor(24, 24, 40, 255); err != nil {
		return err
	}
	if err := s.r.ClearScreen(); err != nil {
		return err
	}
	src := stage.Rect{W: bombSize, H: bombSize}
	spin := &stage.Point{X: bombSize / 2, Y: bombSize / 2}
	for _, b := range s.bombs {
		dst := stage.Rect{X: b.x, Y: b.y, W: bombSize, H: bombSize}
		if err := s.r.RenderTexture(s.tex, src, dst, stage.Transform{Angle: b.angle, Center: spin}); err != nil {
			return err
		}
	}
	player := stage.Rect{X: s.px - 16, Y: s.py - 16, W: 32, H: 32}
	flip := stage.FlipNone
	if s.tick/30%2 == 1 {
		flip = stage.FlipHorizontal
	}
	if err := s.r.RenderTexture(s.tex, src, player, stage.Transform{Flip: flip}); err != nil {
		return err
	}
	if err := s.r.DrawUI(s.lives, s.avoided); err != nil {
		return err
	}
	return s.r.PresentFrame()
}
