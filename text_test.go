package wander

import (
	"strings"
	"testing"

	"github.com/fzipp/bmfont"
)

func testFont(pageTex TextureID) *Font {
	desc := &bmfont.Descriptor{
		Common: bmfont.Common{LineHeight: 32, Base: 26, ScaleW: 256, ScaleH: 128},
		Pages:  map[int]bmfont.Page{0: {ID: 0, File: "page0.png"}},
		Chars: map[rune]bmfont.Char{
			'A': {ID: 'A', X: 0, Y: 0, Width: 16, Height: 20, XOffset: 1, YOffset: 2, XAdvance: 18, Page: 0},
			'B': {ID: 'B', X: 16, Y: 0, Width: 12, Height: 20, XOffset: 2, YOffset: 2, XAdvance: 14, Page: 0},
			' ': {ID: ' ', X: 0, Y: 0, Width: 0, Height: 0, XAdvance: 8, Page: 0},
		},
		Kerning: map[bmfont.CharPair]bmfont.Kerning{
			{First: 'A', Second: 'B'}: {Amount: -2},
		},
	}
	return NewFont(desc, map[int]Sprite{0: FullTexture(pageTex, 256, 128)})
}

func TestFont_Measure(t *testing.T) {
	f := testFont(1)

	if got := f.Measure("A"); got != 18 {
		t.Errorf("Measure(A): expected 18, got %g", got)
	}
	// Kerning between A and B applies: 18 - 2 + 14.
	if got := f.Measure("AB"); got != 30 {
		t.Errorf("Measure(AB): expected 30, got %g", got)
	}
	// Unknown runes are skipped and break the kerning pair.
	if got := f.Measure("A?B"); got != 32 {
		t.Errorf("Measure(A?B): expected 32, got %g", got)
	}
	if f.LineHeight() != 32 {
		t.Errorf("Expected line height 32, got %g", f.LineHeight())
	}
}

func TestFont_DrawGlyphQuads(t *testing.T) {
	dev := newMockDevice()
	batch, err := NewSpriteBatch(dev, 100)
	if err != nil {
		t.Fatal(err)
	}
	page := solidSprite(dev)
	f := testFont(page.Texture)

	batch.Begin()
	if err := f.Draw(batch, "AB", 100, 50, White); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := batch.End(); err != nil {
		t.Fatal(err)
	}

	if len(dev.calls) != 1 {
		t.Fatalf("Expected glyphs batched into 1 call, got %d", len(dev.calls))
	}
	call := dev.calls[0]
	if call.quads != 2 {
		t.Fatalf("Expected 2 glyph quads, got %d", call.quads)
	}
	if call.texture != page.Texture {
		t.Errorf("Expected page texture %d, got %d", page.Texture, call.texture)
	}

	// First glyph 'A' at pen + offsets.
	v := call.vertices
	if v[0] != 101 || v[1] != 52 {
		t.Errorf("Glyph A position: expected (101,52), got (%g,%g)", v[0], v[1])
	}
	// Its UV addresses the 16x20 region at the texture origin.
	if !approx(v[2], 0) || !approx(v[3], 0) {
		t.Errorf("Glyph A TL UV: expected (0,0), got (%g,%g)", v[2], v[3])
	}
	tr := v[floatsPerVertex:]
	if !approx(tr[2], 16.0/256) || !approx(tr[3], 0) {
		t.Errorf("Glyph A TR UV: expected (%g,0), got (%g,%g)", 16.0/256, tr[2], tr[3])
	}

	// Second glyph 'B' advanced by A's XAdvance plus kerning.
	b := call.vertices[quadFloats:]
	wantX := float32(100 + 18 - 2 + 2) // pen + advance + kerning + B's XOffset
	if b[0] != wantX {
		t.Errorf("Glyph B position: expected x=%g, got %g", wantX, b[0])
	}
}

func TestFont_DrawHandlesNewlinesAndSpaces(t *testing.T) {
	dev := newMockDevice()
	batch, _ := NewSpriteBatch(dev, 100)
	page := solidSprite(dev)
	f := testFont(page.Texture)

	batch.Begin()
	if err := f.Draw(batch, "A B\nA", 0, 0, White); err != nil {
		t.Fatal(err)
	}
	batch.End()

	// Spaces have zero area and produce no quad; 3 visible glyphs.
	if dev.calls[0].quads != 3 {
		t.Fatalf("Expected 3 quads, got %d", dev.calls[0].quads)
	}

	// The glyph after the newline restarts at x and drops a line.
	third := dev.calls[0].vertices[2*quadFloats:]
	if third[0] != 1 || third[1] != 34 {
		t.Errorf("Second-line glyph: expected (1,34), got (%g,%g)", third[0], third[1])
	}
}

func TestFont_DrawCentered(t *testing.T) {
	dev := newMockDevice()
	batch, _ := NewSpriteBatch(dev, 100)
	page := solidSprite(dev)
	f := testFont(page.Texture)

	batch.Begin()
	if err := f.DrawCentered(batch, "A", 100, 0, White); err != nil {
		t.Fatal(err)
	}
	batch.End()

	// "A" measures 18, so the pen starts at 91; the glyph adds XOffset 1.
	v := dev.calls[0].vertices
	if v[0] != 92 {
		t.Errorf("Centered glyph: expected x=92, got %g", v[0])
	}
}

const testFnt = `info face="test" size=32 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=32 base=26 scaleW=256 scaleH=128 pages=1 packed=0 alphaChnl=1 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="page0.png"
chars count=2
char id=65 x=0 y=0 width=16 height=20 xoffset=1 yoffset=2 xadvance=18 page=0 chnl=15
char id=66 x=16 y=0 width=12 height=20 xoffset=2 yoffset=2 xadvance=14 page=0 chnl=15
kernings count=1
kerning first=65 second=66 amount=-2
`

func TestReadFontDescriptor(t *testing.T) {
	desc, err := ReadFontDescriptor(strings.NewReader(testFnt))
	if err != nil {
		t.Fatalf("ReadFontDescriptor: %v", err)
	}

	if desc.Common.LineHeight != 32 || desc.Common.ScaleW != 256 {
		t.Errorf("Unexpected common block: %+v", desc.Common)
	}
	if len(desc.Pages) != 1 || desc.Pages[0].File != "page0.png" {
		t.Errorf("Unexpected pages: %+v", desc.Pages)
	}
	a, ok := desc.Chars['A']
	if !ok {
		t.Fatal("Expected char A in descriptor")
	}
	if a.Width != 16 || a.XAdvance != 18 {
		t.Errorf("Unexpected char A: %+v", a)
	}
	k, ok := desc.Kerning[bmfont.CharPair{First: 'A', Second: 'B'}]
	if !ok || k.Amount != -2 {
		t.Errorf("Expected kerning A/B of -2, got %+v (present=%v)", k, ok)
	}

	// A descriptor from the parser drives Measure identically to a
	// hand-built one.
	f := NewFont(desc, map[int]Sprite{0: FullTexture(1, 256, 128)})
	if got := f.Measure("AB"); got != 30 {
		t.Errorf("Measure(AB): expected 30, got %g", got)
	}
}
