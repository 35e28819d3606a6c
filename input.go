package wander

// Key identifies a movement or action key.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyInteract
	KeyCount
)

// touchStopRadius is how close, in world pixels, the player must be to
// a tap target before touch-driven movement stops.
const touchStopRadius = 8

// InputState holds the per-frame input the game loop consumes: a
// direction vector and a one-shot interact flag. The windowing layer
// populates it from key and pointer callbacks.
//
// The game loop pushes the camera offset in before reading the
// direction, so tap coordinates convert from screen space to world
// space with the current frame's offset rather than a stale one.
type InputState struct {
	keyDown [KeyCount]bool

	interactPressed bool

	touchActive      bool
	touchX, touchY   float32 // screen space
	cameraX, cameraY float32
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{}
}

// SetKey records a key press or release.
func (in *InputState) SetKey(k Key, down bool) {
	if k < 0 || k >= KeyCount {
		return
	}
	if k == KeyInteract {
		if down && !in.keyDown[k] {
			in.interactPressed = true
		}
		in.keyDown[k] = down
		return
	}
	in.keyDown[k] = down
}

// KeyDown reports whether a key is currently held.
func (in *InputState) KeyDown(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return in.keyDown[k]
}

// SetTouch records a touch/tap target in screen coordinates, or ends
// the touch when active is false.
func (in *InputState) SetTouch(screenX, screenY float32, active bool) {
	in.touchActive = active
	in.touchX = screenX
	in.touchY = screenY
}

// SetCameraOffset pushes the current camera offset in so touch targets
// resolve to world space. Must be called before Direction each tick.
func (in *InputState) SetCameraOffset(x, y float32) {
	in.cameraX = x
	in.cameraY = y
}

// ConsumeInteract returns true at most once per interact press. The
// game loop routes the press either to world interaction or to an
// active minigame, never both.
func (in *InputState) ConsumeInteract() bool {
	p := in.interactPressed
	in.interactPressed = false
	return p
}

// PressInteract registers a one-shot interact press directly. Used by
// pointer input where a tap on an interactable acts like the key.
func (in *InputState) PressInteract() {
	in.interactPressed = true
}

// Direction returns the current movement direction: unit-length or
// zero. Keyboard input wins over touch. Diagonals are normalized so
// diagonal speed matches cardinal speed. Y is negative upward,
// matching the screen's top-left origin.
func (in *InputState) Direction(playerX, playerY float32) Vec2 {
	var d Vec2
	if in.keyDown[KeyLeft] {
		d.X -= 1
	}
	if in.keyDown[KeyRight] {
		d.X += 1
	}
	if in.keyDown[KeyUp] {
		d.Y -= 1
	}
	if in.keyDown[KeyDown] {
		d.Y += 1
	}
	if d.X != 0 || d.Y != 0 {
		return d.Normalized()
	}

	if in.touchActive {
		worldX := in.touchX + in.cameraX
		worldY := in.touchY + in.cameraY
		to := Vec2{X: worldX - playerX, Y: worldY - playerY}
		if to.Len() <= touchStopRadius {
			in.touchActive = false
			return Vec2{}
		}
		return to.Normalized()
	}
	return Vec2{}
}
