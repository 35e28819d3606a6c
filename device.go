package wander

import "image"

// TextureID is an opaque GPU texture handle.
type TextureID uint32

// Device is the GPU surface the engine renders through. The OpenGL
// implementation lives in backend/opengl; tests substitute a recording
// mock. All methods must be called from the game-loop thread.
type Device interface {
	// CreateTexture uploads pixel data and returns a texture handle.
	CreateTexture(img *image.RGBA) (TextureID, error)

	// DeleteTexture releases a texture. Unknown handles are ignored.
	DeleteTexture(id TextureID)

	// DrawQuads uploads the given vertex data (quadCount quads, 4
	// vertices of 8 floats each) and issues exactly one indexed draw
	// call covering quadCount*6 indices with the given texture bound.
	// The slice holds only the live region of the caller's buffer;
	// implementations must not upload beyond len(vertices).
	DrawQuads(vertices []float32, quadCount int, texture TextureID) error

	// SetProjection installs the projection matrix used by subsequent
	// draw calls.
	SetProjection(m Mat4)

	// SetViewport resizes the drawable area, in physical pixels.
	SetViewport(width, height int)

	// Clear sets the clear color and clears the color buffer.
	Clear(c Color)
}
