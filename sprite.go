package wander

// Sprite is a non-owning reference into a GPU texture: the texture
// handle, the pixel dimensions of the visual content, and the
// normalized UV sub-rectangle addressing it. Many sprites may share one
// texture (atlas addressing). Sprites are immutable values; the
// TextureLoader that created the texture owns it.
type Sprite struct {
	Texture TextureID
	Width   float32
	Height  float32
	U0, V0  float32 // Top-left UV
	U1, V1  float32 // Bottom-right UV
}

// FullTexture returns a sprite spanning an entire texture of the given
// pixel size.
func FullTexture(tex TextureID, width, height float32) Sprite {
	return Sprite{Texture: tex, Width: width, Height: height, U1: 1, V1: 1}
}

// Region returns a sprite addressing the pixel sub-rectangle
// (x,y,w,h) of this sprite's texture, where texW and texH are the full
// texture dimensions. UV origin is the texture's top-left corner.
func Region(tex TextureID, texW, texH, x, y, w, h float32) Sprite {
	return Sprite{
		Texture: tex,
		Width:   w,
		Height:  h,
		U0:      x / texW,
		V0:      y / texH,
		U1:      (x + w) / texW,
		V1:      (y + h) / texH,
	}
}
