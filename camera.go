package stage

// Camera translates between world space and screen space.
//
// The camera keeps a world-space center. The viewport origin, the world
// point drawn at the top-left of the screen, is the center minus half the
// viewport. Whenever the world is at least as large as the viewport on an
// axis, the center is clamped so the whole viewport stays inside the world
// bounds on that axis. On an axis where the world is smaller, the viewport
// is centered on the world.
//
// Camera is not safe for concurrent use.
type Camera struct {
	width, height int
	bounds        Rect
	center        Point
}

// NewCamera creates a camera for a viewport of the given size. The world
// bounds start out equal to the viewport, so the origin is (0, 0).
func NewCamera(width, height int) *Camera {
	c := &Camera{
		width:  width,
		height: height,
		center: Point{X: width / 2, Y: height / 2},
	}
	c.SetWorldBounds(Rect{W: width, H: height})
	return c
}

// Viewport returns the viewport size fixed at construction.
func (c *Camera) Viewport() (w, h int) {
	return c.width, c.height
}

// Bounds returns the current world bounds.
func (c *Camera) Bounds() Rect {
	return c.bounds
}

// Center returns the world point at the middle of the viewport.
func (c *Camera) Center() Point {
	return c.center
}

// Origin returns the world point drawn at the top-left of the screen.
func (c *Camera) Origin() Point {
	return Point{X: c.center.X - c.width/2, Y: c.center.Y - c.height/2}
}

// SetWorldBounds replaces the world bounds and re-clamps the center.
// It takes effect for the next translation.
func (c *Camera) SetWorldBounds(bounds Rect) {
	c.bounds = bounds
	c.center = c.clamp(c.center)
}

// LookAt moves the center to (x, y), clamped to the world bounds.
func (c *Camera) LookAt(x, y int) {
	c.center = c.clamp(Point{X: x, Y: y})
}

// ToScreen translates a world-space rectangle to screen space.
// The size is unchanged.
func (c *Camera) ToScreen(r Rect) Rect {
	o := c.Origin()
	return r.Translate(Point{X: -o.X, Y: -o.Y})
}

// ToWorld translates a screen-space point to world space.
// It is the exact inverse of ToScreen.
func (c *Camera) ToWorld(p Point) Point {
	return p.Add(c.Origin())
}

func (c *Camera) clamp(p Point) Point {
	return Point{
		X: clampAxis(p.X, c.bounds.X, c.bounds.W, c.width),
		Y: clampAxis(p.Y, c.bounds.Y, c.bounds.H, c.height),
	}
}

// clampAxis keeps a center coordinate such that [v-view/2, v-view/2+view)
// lies inside [start, start+size).
func clampAxis(v, start, size, view int) int {
	if size < view {
		return start + size/2
	}
	lo := start + view/2
	hi := start + size - view + view/2
	return min(max(v, lo), hi)
}
