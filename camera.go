package wander

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultSmoothing is the camera follow factor: each tick the camera
// moves this fraction of the remaining distance to its target. Smaller
// values give a laggier, smoother camera.
const DefaultSmoothing = 0.1

// Camera is the 2D view offset into the world: the world coordinate
// rendered at the screen's top-left corner. The game loop mutates it
// once per tick; rendering only reads the final offset.
type Camera struct {
	X, Y float32

	// Smoothing is the exponential follow factor per tick.
	Smoothing float32

	// Viewport is the visible size in pixels.
	ViewportW, ViewportH float32

	// World bounds the camera is clamped to.
	WorldW, WorldH float32

	tweenX *gween.Tween
	tweenY *gween.Tween
}

// NewCamera creates a camera for the given viewport and world sizes.
func NewCamera(viewportW, viewportH, worldW, worldH float32) *Camera {
	return &Camera{
		Smoothing: DefaultSmoothing,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
}

// SetViewport updates the visible size after a resize and re-clamps so
// the next frame does not show area outside the world.
func (c *Camera) SetViewport(w, h float32) {
	c.ViewportW = w
	c.ViewportH = h
	c.clamp()
}

// Update advances the camera one tick toward the target offset using
// exponential smoothing, then clamps to [0, world-viewport] per axis.
// Clamping happens after smoothing so the offset never oscillates
// across a world edge; the cost is a visible snap instead of a smooth
// deceleration at the boundary.
//
// An active ScrollTo tween overrides the target until it completes.
func (c *Camera) Update(dt float32, targetX, targetY float32) {
	if c.tweenX != nil {
		v, done := c.tweenX.Update(dt)
		c.X = v
		if done {
			c.tweenX = nil
		}
		v, done = c.tweenY.Update(dt)
		c.Y = v
		if done {
			c.tweenY = nil
		}
	} else {
		c.X += (targetX - c.X) * c.Smoothing
		c.Y += (targetY - c.Y) * c.Smoothing
	}
	c.clamp()
}

// ScrollTo animates the camera offset to (x, y) over duration seconds,
// suspending follow behavior until the tween finishes.
func (c *Camera) ScrollTo(x, y, duration float32) {
	c.tweenX = gween.New(c.X, x, duration, ease.InOutQuad)
	c.tweenY = gween.New(c.Y, y, duration, ease.InOutQuad)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.tweenX != nil }

// ViewProjection returns the orthographic projection translated by the
// camera offset, mapping world pixels directly to device coordinates.
func (c *Camera) ViewProjection() Mat4 {
	return orthoMatrix(c.X, c.X+c.ViewportW, c.Y+c.ViewportH, c.Y, -1, 1)
}

// CenterTarget returns the offset that centers the viewport on a world
// point, before clamping.
func (c *Camera) CenterTarget(x, y float32) (tx, ty float32) {
	return x - c.ViewportW/2, y - c.ViewportH/2
}

func (c *Camera) clamp() {
	maxX := c.WorldW - c.ViewportW
	maxY := c.WorldH - c.ViewportH
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	c.X = clampf(c.X, 0, maxX)
	c.Y = clampf(c.Y, 0, maxY)
}
