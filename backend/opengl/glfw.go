package opengl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/stickfig/wander"
)

// Window wraps a GLFW window with the callbacks the game needs:
// movement keys, interact, pointer taps, framebuffer resizing, and
// focus-driven pause/resume. Must be used from the main OS thread.
type Window struct {
	win   *glfw.Window
	input *wander.InputState

	// OnResize receives the new framebuffer size in physical pixels.
	OnResize func(width, height int)
	// OnFocus receives focus changes, for pausing the loop.
	OnFocus func(focused bool)
}

// NewWindow initializes GLFW, opens a core-profile 4.1 window, and
// makes its context current. The returned framebuffer size may differ
// from the requested size on high-DPI displays; callers must size the
// viewport and projection from FramebufferSize, not the request.
func NewWindow(title string, width, height int, input *wander.InputState) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", ErrContextUnavailable, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", ErrContextUnavailable, err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	w := &Window{win: win, input: input}
	win.SetKeyCallback(w.keyCallback)
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	win.SetFocusCallback(w.focusCallback)

	return w, nil
}

// FramebufferSize returns the drawable size in physical pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Poll processes pending window events.
func (w *Window) Poll() { glfw.PollEvents() }

// Swap presents the rendered frame.
func (w *Window) Swap() { w.win.SwapBuffers() }

// Terminate destroys the window and shuts GLFW down.
func (w *Window) Terminate() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k, ok := mapKey(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		w.input.SetKey(k, true)
	case glfw.Release:
		w.input.SetKey(k, false)
	}
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := w.win.GetCursorPos()
	sx, sy := w.toFramebuffer(x, y)
	switch action {
	case glfw.Press:
		w.input.SetTouch(sx, sy, true)
	case glfw.Release:
		w.input.SetTouch(sx, sy, false)
	}
}

func (w *Window) cursorPosCallback(_ *glfw.Window, x, y float64) {
	if w.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		sx, sy := w.toFramebuffer(x, y)
		w.input.SetTouch(sx, sy, true)
	}
}

// toFramebuffer converts layout-space cursor coordinates to physical
// pixels, so taps line up with the framebuffer-sized projection on
// high-DPI displays.
func (w *Window) toFramebuffer(x, y float64) (float32, float32) {
	lw, lh := w.win.GetSize()
	fw, fh := w.win.GetFramebufferSize()
	if lw == 0 || lh == 0 {
		return float32(x), float32(y)
	}
	return float32(x * float64(fw) / float64(lw)), float32(y * float64(fh) / float64(lh))
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if w.OnResize != nil {
		w.OnResize(width, height)
	}
}

func (w *Window) focusCallback(_ *glfw.Window, focused bool) {
	if w.OnFocus != nil {
		w.OnFocus(focused)
	}
}

func mapKey(key glfw.Key) (wander.Key, bool) {
	switch key {
	case glfw.KeyUp, glfw.KeyW:
		return wander.KeyUp, true
	case glfw.KeyDown, glfw.KeyS:
		return wander.KeyDown, true
	case glfw.KeyLeft, glfw.KeyA:
		return wander.KeyLeft, true
	case glfw.KeyRight, glfw.KeyD:
		return wander.KeyRight, true
	case glfw.KeyE, glfw.KeySpace, glfw.KeyEnter:
		return wander.KeyInteract, true
	default:
		return 0, false
	}
}
