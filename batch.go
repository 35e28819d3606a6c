package wander

import (
	"fmt"
	"image"
	"math"
)

// Vertex packing: position (x, y), texture coordinate (u, v), and RGBA
// tint, 8 floats per vertex, 4 vertices per quad. The quad is wound for
// two triangles sharing a diagonal: {TL,TR,BR} and {BR,BL,TL}.
const (
	vertsPerQuad    = 4
	floatsPerVertex = 8
	quadFloats      = vertsPerQuad * floatsPerVertex
)

// DefaultBatchCapacity is the number of sprites a batch accumulates
// before it must flush.
const DefaultBatchCapacity = 1000

// BatchLifecycleError reports Begin/Draw/End called out of sequence.
// It is raised as a panic because out-of-order calls indicate a bug in
// the caller's frame loop, not a runtime condition to recover from.
type BatchLifecycleError string

func (e BatchLifecycleError) Error() string { return string(e) }

// SpriteBatch coalesces many same-texture quads into single draw
// calls while preserving the caller's submission order exactly. There
// is no depth buffer, so back-to-front ordering is the painter's
// algorithm and must not be reordered.
//
// A batch is owned by the game-loop thread and is not safe for
// concurrent use.
type SpriteBatch struct {
	device   Device
	capacity int
	verts    []float32 // capacity * quadFloats, reused every frame
	count    int       // quads accumulated since the last flush
	drawing  bool
	texture  TextureID // texture of the current accumulation run

	white      Sprite // reserved 1x1 opaque white, for solid rects
	globalTint Color

	flushes   int // draw calls issued since Begin
	lastDraws int // draw calls issued by the previous Begin/End pair
}

// NewSpriteBatch creates a batch with the given sprite capacity. It
// reserves a 1x1 white texture on the device so that solid-color quads
// share the textured batching path.
func NewSpriteBatch(device Device, capacity int) (*SpriteBatch, error) {
	if capacity <= 0 {
		capacity = DefaultBatchCapacity
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Pix[0], white.Pix[1], white.Pix[2], white.Pix[3] = 255, 255, 255, 255
	tex, err := device.CreateTexture(white)
	if err != nil {
		return nil, fmt.Errorf("white texture: %w", err)
	}

	return &SpriteBatch{
		device:     device,
		capacity:   capacity,
		verts:      make([]float32, 0, capacity*quadFloats),
		white:      FullTexture(tex, 1, 1),
		globalTint: White,
	}, nil
}

// Capacity returns the sprite capacity fixed at construction.
func (b *SpriteBatch) Capacity() int { return b.capacity }

// WhiteTexture returns the reserved 1x1 white texture handle.
func (b *SpriteBatch) WhiteTexture() TextureID { return b.white.Texture }

// SetGlobalTint sets a batch-wide color multiplier layered on top of
// every per-draw tint. Used for whole-scene recoloring (dark mode)
// without touching individual callers.
func (b *SpriteBatch) SetGlobalTint(c Color) { b.globalTint = c }

// GlobalTint returns the current batch-wide color multiplier.
func (b *SpriteBatch) GlobalTint() Color { return b.globalTint }

// DrawCalls returns the number of GPU draw calls issued during the
// most recently completed Begin/End pair.
func (b *SpriteBatch) DrawCalls() int { return b.lastDraws }

// Begin starts recording draw requests. Panics with
// BatchLifecycleError if the batch is already recording.
func (b *SpriteBatch) Begin() {
	if b.drawing {
		panic(BatchLifecycleError("SpriteBatch.Begin called while already recording"))
	}
	b.drawing = true
	b.count = 0
	b.verts = b.verts[:0]
	b.texture = 0
	b.flushes = 0
}

// End flushes any accumulated quads and stops recording. Panics with
// BatchLifecycleError if the batch is not recording.
func (b *SpriteBatch) End() error {
	if !b.drawing {
		panic(BatchLifecycleError("SpriteBatch.End called without Begin"))
	}
	err := b.flush()
	b.drawing = false
	b.lastDraws = b.flushes
	return err
}

// Draw records a sprite at its natural pixel size.
func (b *SpriteBatch) Draw(s Sprite, x, y float32, tint Color) error {
	return b.DrawEx(s, x, y, s.Width, s.Height, 0, tint)
}

// DrawEx records a sprite quad at (x,y) with explicit size, rotated by
// rotation radians about the quad's center. The tint is multiplied
// componentwise with the global tint; resulting channels above 1.0 are
// passed through unclamped.
//
// If the sprite's texture differs from the current accumulation run,
// or capacity is reached, everything accumulated so far is flushed
// first, so submission order is preserved across texture changes.
func (b *SpriteBatch) DrawEx(s Sprite, x, y, w, h, rotation float32, tint Color) error {
	if !b.drawing {
		panic(BatchLifecycleError("SpriteBatch.Draw called without Begin"))
	}

	if b.count > 0 && (s.Texture != b.texture || b.count >= b.capacity) {
		if err := b.flush(); err != nil {
			return err
		}
	}
	b.texture = s.Texture

	c := tint.Scale(b.globalTint)

	// Corner order TL, TR, BR, BL, matching the precomputed index
	// pattern [4n, 4n+1, 4n+2, 4n+2, 4n+3, 4n].
	px := [4]float32{x, x + w, x + w, x}
	py := [4]float32{y, y, y + h, y + h}

	if rotation != 0 {
		cx := x + w/2
		cy := y + h/2
		sin := float32(math.Sin(float64(rotation)))
		cos := float32(math.Cos(float64(rotation)))
		for i := 0; i < 4; i++ {
			dx := px[i] - cx
			dy := py[i] - cy
			px[i] = cx + dx*cos - dy*sin
			py[i] = cy + dx*sin + dy*cos
		}
	}

	u := [4]float32{s.U0, s.U1, s.U1, s.U0}
	v := [4]float32{s.V0, s.V0, s.V1, s.V1}

	for i := 0; i < 4; i++ {
		b.verts = append(b.verts,
			px[i], py[i],
			u[i], v[i],
			c.R, c.G, c.B, c.A,
		)
	}
	b.count++
	return nil
}

// DrawRect records a solid-color quad. It draws through the reserved
// white texture so solid fills batch together with textured sprites
// instead of taking a separate code path.
func (b *SpriteBatch) DrawRect(x, y, w, h float32, c Color) error {
	return b.DrawEx(b.white, x, y, w, h, 0, c)
}

// flush uploads the live region of the vertex buffer and issues one
// indexed draw call, then resets the accumulation. No-op when empty.
// Only count*quadFloats floats are handed to the device, never the
// whole preallocated buffer.
func (b *SpriteBatch) flush() error {
	if b.count == 0 {
		return nil
	}
	tex := b.texture
	if tex == 0 {
		tex = b.white.Texture
	}
	err := b.device.DrawQuads(b.verts[:b.count*quadFloats], b.count, tex)
	b.count = 0
	b.verts = b.verts[:0]
	b.flushes++
	if err != nil {
		return fmt.Errorf("batch flush: %w", err)
	}
	return nil
}
