package wander

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fzipp/bmfont"
)

// Font renders bitmap-font text through the sprite batch: each glyph
// becomes one quad addressing a sub-rectangle of a page texture, so
// text shares the batching path with every other sprite.
type Font struct {
	desc  *bmfont.Descriptor
	pages map[int]Sprite
}

// LoadFont reads an AngelCode .fnt descriptor and loads its page
// textures through the loader. Page image paths resolve relative to
// the descriptor's directory.
func LoadFont(loader *TextureLoader, path string) (*Font, error) {
	desc, err := bmfont.LoadDescriptor(path)
	if err != nil {
		return nil, fmt.Errorf("load font descriptor: %w", err)
	}

	pages := make(map[int]Sprite, len(desc.Pages))
	dir := filepath.Dir(path)
	for id, page := range desc.Pages {
		s, err := loader.LoadImage(filepath.Join(dir, page.File))
		if err != nil {
			return nil, fmt.Errorf("font page %d: %w", id, err)
		}
		pages[id] = s
	}
	return &Font{desc: desc, pages: pages}, nil
}

// NewFont builds a font from an already-parsed descriptor and page
// sprites, keyed by page id. Useful when page textures are generated
// rather than loaded.
func NewFont(desc *bmfont.Descriptor, pages map[int]Sprite) *Font {
	return &Font{desc: desc, pages: pages}
}

// ReadFontDescriptor parses a .fnt descriptor from a reader.
func ReadFontDescriptor(r io.Reader) (*bmfont.Descriptor, error) {
	return bmfont.ReadDescriptor(r)
}

// LineHeight returns the vertical advance between text lines.
func (f *Font) LineHeight() float32 {
	return float32(f.desc.Common.LineHeight)
}

// Measure returns the pixel width of a single line of text, including
// kerning.
func (f *Font) Measure(text string) float32 {
	var w float32
	var prev rune = -1
	for _, r := range text {
		ch, ok := f.desc.Chars[r]
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			if k, ok := f.desc.Kerning[bmfont.CharPair{First: prev, Second: r}]; ok {
				w += float32(k.Amount)
			}
		}
		w += float32(ch.XAdvance)
		prev = r
	}
	return w
}

// Draw lays the text out left-to-right starting at (x, y) (top-left of
// the line) and records one quad per glyph. Unknown runes are skipped.
func (f *Font) Draw(batch *SpriteBatch, text string, x, y float32, tint Color) error {
	penX := x
	var prev rune = -1
	scaleW := float32(f.desc.Common.ScaleW)
	scaleH := float32(f.desc.Common.ScaleH)

	for _, r := range text {
		if r == '\n' {
			penX = x
			y += f.LineHeight()
			prev = -1
			continue
		}
		ch, ok := f.desc.Chars[r]
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			if k, ok := f.desc.Kerning[bmfont.CharPair{First: prev, Second: r}]; ok {
				penX += float32(k.Amount)
			}
		}

		page, ok := f.pages[ch.Page]
		if ok && ch.Width > 0 && ch.Height > 0 {
			glyph := Region(page.Texture, scaleW, scaleH,
				float32(ch.X), float32(ch.Y), float32(ch.Width), float32(ch.Height))
			gx := penX + float32(ch.XOffset)
			gy := y + float32(ch.YOffset)
			if err := batch.Draw(glyph, gx, gy, tint); err != nil {
				return err
			}
		}

		penX += float32(ch.XAdvance)
		prev = r
	}
	return nil
}

// DrawCentered draws a single line horizontally centered on cx.
func (f *Font) DrawCentered(batch *SpriteBatch, text string, cx, y float32, tint Color) error {
	return f.Draw(batch, text, cx-f.Measure(text)/2, y, tint)
}
