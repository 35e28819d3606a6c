// Package opengl implements wander.Device on OpenGL 4.1 with GLFW
// windowing.
package opengl

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/stickfig/wander"
)

// ErrContextUnavailable is returned when the OpenGL context cannot be
// initialized. Fatal: the application surfaces an unsupported-GPU
// message and does not proceed.
var ErrContextUnavailable = errors.New("opengl: context unavailable")

// Vertex layout shared with wander.SpriteBatch: position (2), texture
// coordinate (2), RGBA color (4), all float32.
const (
	floatsPerVertex = 8
	vertsPerQuad    = 4
	indicesPerQuad  = 6
	floatSize       = 4
	indexSize       = 2 // uint16
)

// Shader sources. Attribute slots are fixed: 0 position, 1 texCoord,
// 2 color. Colors pass through unclamped; overdriven glow tints
// saturate when the fragment output is written.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 a_position;
layout (location = 1) in vec2 a_texCoord;
layout (location = 2) in vec4 a_color;

out vec2 v_texCoord;
out vec4 v_color;

uniform mat4 u_projection;

void main() {
    gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
    v_texCoord = a_texCoord;
    v_color = a_color;
}
`

const fragmentShaderSource = `
#version 410 core
in vec2 v_texCoord;
in vec4 v_color;

out vec4 fragColor;

uniform sampler2D u_texture;
uniform bool u_useTexture;

void main() {
    if (u_useTexture) {
        fragColor = texture(u_texture, v_texCoord) * v_color;
    } else {
        fragColor = v_color;
    }
}
`

// Renderer implements wander.Device: it owns the shader program, the
// vertex/index buffers, and the texture registry. Construct after the
// GL context is current; all methods must run on that same thread.
type Renderer struct {
	program  *ShaderProgram
	vao, vbo uint32
	ebo      uint32
	capacity int // max quads per draw

	width  int
	height int

	projection wander.Mat4
	textures   map[wander.TextureID]bool
}

// NewRenderer initializes GL state and builds the pipeline: shader
// program, VAO with the fixed vertex layout, a vertex buffer sized for
// capacity quads, and an index buffer precomputed once for the maximum
// capacity (quad n uses indices [4n,4n+1,4n+2,4n+2,4n+3,4n]) and never
// rewritten.
func NewRenderer(width, height, capacity int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	if capacity <= 0 {
		capacity = wander.DefaultBatchCapacity
	}

	program, err := NewShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		program:  program,
		capacity: capacity,
		width:    width,
		height:   height,
		textures: make(map[wander.TextureID]bool),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*vertsPerQuad*floatsPerVertex*floatSize, nil, gl.DYNAMIC_DRAW)

	stride := int32(floatsPerVertex * floatSize)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*floatSize)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*floatSize)
	gl.EnableVertexAttribArray(2)

	indices := make([]uint16, capacity*indicesPerQuad)
	for q := 0; q < capacity; q++ {
		base := uint16(q * vertsPerQuad)
		i := q * indicesPerQuad
		indices[i+0] = base
		indices[i+1] = base + 1
		indices[i+2] = base + 2
		indices[i+3] = base + 2
		indices[i+4] = base + 3
		indices[i+5] = base
	}
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*indexSize, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	// Purely 2D: alpha "over" compositing, no depth, no backface
	// culling.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	gl.Viewport(0, 0, int32(width), int32(height))

	r.program.Use()
	r.program.SetInt("u_texture", 0)
	r.program.SetInt("u_useTexture", 1)

	return r, nil
}

// CreateTexture uploads RGBA pixels as a nearest-filtered texture.
func (r *Renderer) CreateTexture(img *image.RGBA) (wander.TextureID, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("opengl: empty texture %dx%d", w, h)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	id := wander.TextureID(tex)
	r.textures[id] = true
	return id, nil
}

// DeleteTexture releases a texture created by this renderer.
func (r *Renderer) DeleteTexture(id wander.TextureID) {
	if !r.textures[id] {
		return
	}
	delete(r.textures, id)
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

// DrawQuads uploads the live vertex region and issues one indexed draw
// call. Only len(vertices) floats are uploaded, never the whole GPU
// buffer.
func (r *Renderer) DrawQuads(vertices []float32, quadCount int, texture wander.TextureID) error {
	if quadCount == 0 {
		return nil
	}
	if quadCount > r.capacity {
		return fmt.Errorf("opengl: %d quads exceeds buffer capacity %d", quadCount, r.capacity)
	}
	if len(vertices) != quadCount*vertsPerQuad*floatsPerVertex {
		return fmt.Errorf("opengl: vertex data length %d does not match %d quads", len(vertices), quadCount)
	}

	r.program.Use()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*floatSize, gl.Ptr(vertices))

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(quadCount*indicesPerQuad), gl.UNSIGNED_SHORT, 0)

	gl.BindVertexArray(0)

	if errCode := gl.GetError(); errCode == gl.OUT_OF_MEMORY {
		// Unrecoverable; propagate rather than swallow.
		return fmt.Errorf("opengl: out of memory uploading %d quads", quadCount)
	} else if errCode != gl.NO_ERROR {
		return fmt.Errorf("opengl: draw error 0x%04x", errCode)
	}
	return nil
}

// SetProjection installs the projection matrix.
func (r *Renderer) SetProjection(m wander.Mat4) {
	r.projection = m
	r.program.Use()
	r.program.SetMatrix4("u_projection", m)
}

// SetViewport resizes the drawable area in physical pixels.
func (r *Renderer) SetViewport(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear sets the clear color and clears the color buffer only; depth
// and stencil are unused.
func (r *Renderer) Clear(c wander.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// ReloadShader swaps in a recompiled program, keeping the old one if
// compilation or linking fails.
func (r *Renderer) ReloadShader(vertexSource, fragmentSource string) error {
	program, err := NewShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	r.program.Delete()
	r.program = program
	r.program.Use()
	r.program.SetInt("u_texture", 0)
	r.program.SetInt("u_useTexture", 1)
	r.program.SetMatrix4("u_projection", r.projection)
	return nil
}

// Delete releases all GL resources this renderer owns.
func (r *Renderer) Delete() {
	for id := range r.textures {
		tex := uint32(id)
		gl.DeleteTextures(1, &tex)
	}
	r.textures = make(map[wander.TextureID]bool)
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != nil {
		r.program.Delete()
	}
}

var _ wander.Device = (*Renderer)(nil)
