package wander

import "testing"

func TestInputState_CardinalDirections(t *testing.T) {
	in := NewInputState()

	in.SetKey(KeyRight, true)
	d := in.Direction(0, 0)
	if d.X != 1 || d.Y != 0 {
		t.Errorf("Expected (1,0), got (%g,%g)", d.X, d.Y)
	}

	in.SetKey(KeyRight, false)
	in.SetKey(KeyUp, true)
	d = in.Direction(0, 0)
	if d.X != 0 || d.Y != -1 {
		t.Errorf("Expected (0,-1) with top-left origin, got (%g,%g)", d.X, d.Y)
	}
}

func TestInputState_DiagonalNormalized(t *testing.T) {
	in := NewInputState()
	in.SetKey(KeyRight, true)
	in.SetKey(KeyUp, true)

	d := in.Direction(0, 0)
	if !approx(d.Len(), 1) {
		t.Errorf("Expected unit-length diagonal, got length %g", d.Len())
	}
	if !approx(d.X, 0.7071) || !approx(d.Y, -0.7071) {
		t.Errorf("Expected (0.7071,-0.7071), got (%g,%g)", d.X, d.Y)
	}
}

func TestInputState_OpposingKeysCancel(t *testing.T) {
	in := NewInputState()
	in.SetKey(KeyLeft, true)
	in.SetKey(KeyRight, true)
	d := in.Direction(0, 0)
	if d.X != 0 || d.Y != 0 {
		t.Errorf("Expected zero direction, got (%g,%g)", d.X, d.Y)
	}
}

func TestInputState_InteractOneShot(t *testing.T) {
	in := NewInputState()

	in.SetKey(KeyInteract, true)
	if !in.ConsumeInteract() {
		t.Fatal("Expected first consume to return true")
	}
	if in.ConsumeInteract() {
		t.Error("Expected second consume to return false for the same press")
	}

	// Holding the key does not re-trigger.
	in.SetKey(KeyInteract, true)
	if in.ConsumeInteract() {
		t.Error("Expected no press while the key is held")
	}

	// Release and press again is a new press.
	in.SetKey(KeyInteract, false)
	in.SetKey(KeyInteract, true)
	if !in.ConsumeInteract() {
		t.Error("Expected a fresh press after release")
	}
}

func TestInputState_PressInteract(t *testing.T) {
	in := NewInputState()
	in.PressInteract()
	if !in.ConsumeInteract() {
		t.Error("Expected PressInteract to register a one-shot press")
	}
}

func TestInputState_TouchUsesCameraOffset(t *testing.T) {
	in := NewInputState()
	in.SetCameraOffset(1000, 500)
	in.SetTouch(100, 100, true)

	// Player at the touch's world position plus an eastward offset:
	// the direction should point west.
	d := in.Direction(1100+50, 600)
	if !approx(d.X, -1) || !approx(d.Y, 0) {
		t.Errorf("Expected (-1,0) toward world target, got (%g,%g)", d.X, d.Y)
	}
}

func TestInputState_TouchStopsNearTarget(t *testing.T) {
	in := NewInputState()
	in.SetTouch(100, 100, true)

	d := in.Direction(103, 100) // within the stop radius
	if d.X != 0 || d.Y != 0 {
		t.Errorf("Expected zero direction inside stop radius, got (%g,%g)", d.X, d.Y)
	}
	// The touch deactivates when reached.
	d = in.Direction(200, 200)
	if d.X != 0 || d.Y != 0 {
		t.Errorf("Expected touch cleared after arrival, got (%g,%g)", d.X, d.Y)
	}
}

func TestInputState_KeyboardWinsOverTouch(t *testing.T) {
	in := NewInputState()
	in.SetTouch(0, 0, true)
	in.SetKey(KeyDown, true)

	d := in.Direction(500, 500)
	if d.X != 0 || d.Y != 1 {
		t.Errorf("Expected keyboard direction (0,1), got (%g,%g)", d.X, d.Y)
	}
}
