package wander

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Facing is the direction a character sprite faces.
type Facing int

const (
	FacingSouth Facing = iota
	FacingNorth
	FacingEast
	FacingWest
)

// DefaultMoveSpeed is the character's walk speed in pixels per second.
const DefaultMoveSpeed = 400

// Character is the player avatar: a world position (center point),
// sprite dimensions, facing, and a walk-cycle timer that drives the
// bobbing animation.
type Character struct {
	X, Y   float32
	W, H   float32
	Speed  float32
	Facing Facing

	Sprites map[Facing]Sprite // may be sparse while assets load

	walkTimer float32
	moving    bool
}

// NewCharacter creates a character at the given center position.
func NewCharacter(x, y float32) *Character {
	return &Character{
		X:     x,
		Y:     y,
		W:     48,
		H:     64,
		Speed: DefaultMoveSpeed,
	}
}

// Update advances position by dir*speed*dt and derives facing from the
// dominant axis of movement. A zero direction leaves facing unchanged.
func (ch *Character) Update(dir Vec2, dt float32) {
	ch.moving = dir.X != 0 || dir.Y != 0
	if !ch.moving {
		return
	}

	ch.X += dir.X * ch.Speed * dt
	ch.Y += dir.Y * ch.Speed * dt

	ax, ay := dir.X, dir.Y
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	if ax >= ay {
		if dir.X > 0 {
			ch.Facing = FacingEast
		} else {
			ch.Facing = FacingWest
		}
	} else {
		if dir.Y > 0 {
			ch.Facing = FacingSouth
		} else {
			ch.Facing = FacingNorth
		}
	}
}

// ClampTo keeps the sprite's visual bounds inside the world rectangle,
// using half the sprite size as margin around the center point.
func (ch *Character) ClampTo(worldW, worldH float32) {
	ch.X = clampf(ch.X, ch.W/2, worldW-ch.W/2)
	ch.Y = clampf(ch.Y, ch.H/2, worldH-ch.H/2)
}

// Advance progresses the walk-cycle timer while moving.
func (ch *Character) Advance(dt float32) {
	if ch.moving {
		ch.walkTimer += dt
	}
}

// WalkPhase returns the walk-cycle phase in [0,1), for bob animation.
func (ch *Character) WalkPhase() float32 {
	const cycle = 0.4 // seconds per step
	p := ch.walkTimer / cycle
	return p - float32(int(p))
}

// Sprite returns the sprite for the current facing, falling back to
// any available one while assets are still loading.
func (ch *Character) Sprite() (Sprite, bool) {
	if s, ok := ch.Sprites[ch.Facing]; ok {
		return s, true
	}
	for _, s := range ch.Sprites {
		return s, true
	}
	return Sprite{}, false
}

// Decoration is a static drawn element with no behavior.
type Decoration struct {
	X, Y   float32
	Sprite Sprite
}

// DefaultInteractRange is the proximity radius, in pixels, within
// which an interactable can be triggered.
const DefaultInteractRange = 200

// Interactable is a world object the player can trigger when in range.
// While the player is in range it renders a pulsing highlight overlay.
type Interactable struct {
	Place  Place
	Range  float32
	Sprite Sprite
	Action Event

	glow     *gween.Tween
	glowUp   bool
	glowVal  float32
	hovering bool
}

// NewInteractable creates an interactable at a place with the default
// range.
func NewInteractable(place Place, sprite Sprite, action Event) *Interactable {
	return &Interactable{
		Place:  place,
		Range:  DefaultInteractRange,
		Sprite: sprite,
		Action: action,
	}
}

// InRange reports whether (x, y) is within interact range of the
// place. Comparison is on squared distance; the boundary is inclusive.
func (it *Interactable) InRange(x, y float32) bool {
	dx := x - it.Place.X
	dy := y - it.Place.Y
	return dx*dx+dy*dy <= it.Range*it.Range
}

// Advance updates the highlight pulse, active only while hovering.
func (it *Interactable) Advance(dt float32, inRange bool) {
	it.hovering = inRange
	if !inRange {
		it.glow = nil
		it.glowVal = 0
		return
	}
	if it.glow == nil {
		it.glow = gween.New(0.4, 1.0, 0.6, ease.InOutSine)
		it.glowUp = true
	}
	v, done := it.glow.Update(dt)
	it.glowVal = v
	if done {
		// Ping-pong between dim and bright.
		if it.glowUp {
			it.glow = gween.New(1.0, 0.4, 0.6, ease.InOutSine)
		} else {
			it.glow = gween.New(0.4, 1.0, 0.6, ease.InOutSine)
		}
		it.glowUp = !it.glowUp
	}
}

// Glow returns the current highlight intensity, 0 when out of range.
func (it *Interactable) Glow() float32 { return it.glowVal }

// Hovering reports whether the player was in range at the last tick.
func (it *Interactable) Hovering() bool { return it.hovering }
