package wander

import (
	"os"
	"path/filepath"
	"strings"
)

// Theme is the light/dark scene state. Dark mode is implemented as a
// batch-wide global tint so no per-entity code changes; the light
// switch interactable toggles it. The preference persists to a single
// local file.
type Theme struct {
	dark bool
	path string // empty disables persistence
}

// NewTheme creates a theme, restoring a saved preference from path if
// one exists.
func NewTheme(path string) *Theme {
	t := &Theme{path: path}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			t.dark = strings.TrimSpace(string(data)) == "dark"
		}
	}
	return t
}

// Dark reports whether dark mode is active.
func (t *Theme) Dark() bool { return t.dark }

// Toggle flips the theme and persists the new preference. A failed
// write is logged and otherwise ignored; the in-memory state wins.
func (t *Theme) Toggle() {
	t.dark = !t.dark
	if t.path == "" {
		return
	}
	val := "light"
	if t.dark {
		val = "dark"
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		logWarnf("save theme preference: %v", err)
		return
	}
	if err := os.WriteFile(t.path, []byte(val+"\n"), 0o644); err != nil {
		logWarnf("save theme preference: %v", err)
	}
}

// Tint returns the global tint for the current theme.
func (t *Theme) Tint() Color {
	if t.dark {
		return Color{R: 0.45, G: 0.5, B: 0.7, A: 1}
	}
	return White
}

// ClearColor returns the frame clear color for the current theme.
func (t *Theme) ClearColor() Color {
	if t.dark {
		return Color{R: 0.05, G: 0.06, B: 0.1, A: 1}
	}
	return Color{R: 0.55, G: 0.78, B: 0.45, A: 1}
}
