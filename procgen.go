package wander

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Procedural mockup sprites: small character-grid patterns scaled up
// with nearest-neighbor filtering, uploaded through the normal texture
// path so entity code never distinguishes generated art from loaded
// art.

// Palette maps pattern runes to colors. The space rune is always
// transparent.
type Palette map[rune]Color

// GeneratePattern rasterizes a row-per-string pattern at the given
// integer scale. Runes missing from the palette render transparent.
func GeneratePattern(rows []string, palette Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	h := len(rows)
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, row := range rows {
		for x, r := range row {
			if r == ' ' {
				continue
			}
			if c, ok := palette[r]; ok {
				setPixel(small, x, y, c)
			}
		}
	}
	if scale == 1 {
		return small
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return dst
}

// GenerateSprite rasterizes a pattern and uploads it, returning a
// sprite that satisfies the same contract as file-loaded assets.
func GenerateSprite(loader *TextureLoader, rows []string, palette Palette, scale int) (Sprite, error) {
	return loader.CreateFromImage(GeneratePattern(rows, palette, scale))
}

// Stick-figure and scenery patterns for art-asset-free development.

var mockupPalette = Palette{
	'#': Black,
	'o': Color{R: 0.95, G: 0.8, B: 0.65, A: 1},
	'g': Color{R: 0.2, G: 0.55, B: 0.25, A: 1},
	'b': Color{R: 0.45, G: 0.3, B: 0.15, A: 1},
	'r': Color{R: 0.5, G: 0.5, B: 0.55, A: 1},
	'p': Color{R: 0.5, G: 0.25, B: 0.65, A: 1},
	'y': Color{R: 0.95, G: 0.85, B: 0.3, A: 1},
}

// StickFigurePattern returns the avatar pattern for a facing. The
// side-facing patterns mirror each other.
func StickFigurePattern(f Facing) []string {
	side := []string{
		"  oo  ",
		"  oo  ",
		"  ##  ",
		" ###  ",
		"  ##  ",
		"  ##  ",
		" #  # ",
		" #  # ",
	}
	switch f {
	case FacingWest:
		return mirrorPattern(side)
	case FacingEast:
		return side
	default:
		return []string{
			"  oo  ",
			"  oo  ",
			"  ##  ",
			" #### ",
			"# ## #",
			"  ##  ",
			" #  # ",
			" #  # ",
		}
	}
}

// WizardPattern returns the battle wizard mockup.
func WizardPattern() []string {
	return []string{
		"  pp  ",
		" pppp ",
		"  oo  ",
		" pppp ",
		"pppppp",
		" pppp ",
		" p  p ",
		" p  p ",
	}
}

// TreePattern returns a decorative tree mockup.
func TreePattern() []string {
	return []string{
		"  ggg  ",
		" ggggg ",
		"ggggggg",
		" ggggg ",
		"  bbb  ",
		"  bbb  ",
	}
}

// RockPattern returns a decorative rock mockup.
func RockPattern() []string {
	return []string{
		"  rr  ",
		" rrrr ",
		"rrrrrr",
	}
}

// SignPattern returns a signage mockup.
func SignPattern() []string {
	return []string{
		"yyyyyy",
		"yyyyyy",
		"  bb  ",
		"  bb  ",
	}
}

// MockupPalette returns the palette the built-in patterns use.
func MockupPalette() Palette { return mockupPalette }

func mirrorPattern(rows []string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		b := []byte(row)
		for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
			b[l], b[r] = b[r], b[l]
		}
		out[i] = string(b)
	}
	return out
}
