package wander

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Place is a named world position entities query against: where to
// draw, and where to test proximity.
type Place struct {
	ID       string  `toml:"id"`
	X        float32 `toml:"x"`
	Y        float32 `toml:"y"`
	Category string  `toml:"category"`
}

// World is the static, read-only layout table: world dimensions plus
// named places. It never changes after load.
type World struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	Places []Place `toml:"places"`
}

// ParseWorld decodes a TOML world layout.
func ParseWorld(data []byte) (*World, error) {
	var w World
	if err := toml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse world layout: %w", err)
	}
	if w.Width <= 0 || w.Height <= 0 {
		return nil, fmt.Errorf("world layout: dimensions must be positive, got %gx%g", w.Width, w.Height)
	}
	return &w, nil
}

// LoadWorld reads and decodes a TOML world layout file.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world layout: %w", err)
	}
	return ParseWorld(data)
}

// Place looks up a place by id.
func (w *World) Place(id string) (Place, bool) {
	for _, p := range w.Places {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}

// PlacesIn returns all places with the given category, in layout
// order.
func (w *World) PlacesIn(category string) []Place {
	var out []Place
	for _, p := range w.Places {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// DefaultWorld returns the built-in layout used when no world file is
// supplied: a small field with a light switch, a resume sign, a wizard
// tower, and a few decorations.
func DefaultWorld() *World {
	return &World{
		Width:  2400,
		Height: 1600,
		Places: []Place{
			{ID: "spawn", X: 1200, Y: 800, Category: "marker"},
			{ID: "light-switch", X: 500, Y: 500, Category: "interactable"},
			{ID: "wizard-tower", X: 1900, Y: 400, Category: "interactable"},
			{ID: "resume-sign", X: 900, Y: 1100, Category: "interactable"},
			{ID: "projects-sign", X: 1500, Y: 1200, Category: "signage"},
			{ID: "coming-soon", X: 2100, Y: 1300, Category: "signage"},
			{ID: "stats", X: 1200, Y: 200, Category: "marker"},
			{ID: "tree-1", X: 300, Y: 900, Category: "decoration"},
			{ID: "tree-2", X: 700, Y: 300, Category: "decoration"},
			{ID: "tree-3", X: 1700, Y: 900, Category: "decoration"},
			{ID: "rock-1", X: 1100, Y: 500, Category: "decoration"},
			{ID: "rock-2", X: 2000, Y: 1100, Category: "decoration"},
		},
	}
}
