package wander

import "image"

// drawCall records one DrawQuads invocation, with the vertex data
// copied out since the batch reuses its buffer between flushes.
type drawCall struct {
	vertices []float32
	quads    int
	texture  TextureID
}

// mockDevice is a recording Device for tests. No GPU involved.
type mockDevice struct {
	nextTex    TextureID
	textures   map[TextureID]*image.RGBA
	deleted    []TextureID
	calls      []drawCall
	projection Mat4
	cleared    []Color
	viewportW  int
	viewportH  int

	createErr error
	drawErr   error
}

func newMockDevice() *mockDevice {
	return &mockDevice{textures: make(map[TextureID]*image.RGBA)}
}

func (d *mockDevice) CreateTexture(img *image.RGBA) (TextureID, error) {
	if d.createErr != nil {
		return 0, d.createErr
	}
	d.nextTex++
	d.textures[d.nextTex] = img
	return d.nextTex, nil
}

func (d *mockDevice) DeleteTexture(id TextureID) {
	delete(d.textures, id)
	d.deleted = append(d.deleted, id)
}

func (d *mockDevice) DrawQuads(vertices []float32, quadCount int, texture TextureID) error {
	if d.drawErr != nil {
		return d.drawErr
	}
	copied := make([]float32, len(vertices))
	copy(copied, vertices)
	d.calls = append(d.calls, drawCall{vertices: copied, quads: quadCount, texture: texture})
	return nil
}

func (d *mockDevice) SetProjection(m Mat4) { d.projection = m }

func (d *mockDevice) SetViewport(width, height int) {
	d.viewportW = width
	d.viewportH = height
}

func (d *mockDevice) Clear(c Color) { d.cleared = append(d.cleared, c) }

// solidSprite creates a 1x1 sprite on the device, bypassing the loader.
func solidSprite(d *mockDevice) Sprite {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	tex, _ := d.CreateTexture(img)
	return FullTexture(tex, 1, 1)
}
