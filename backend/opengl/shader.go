package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/stickfig/wander"
)

// ShaderCompileError reports a failed shader stage compilation, with
// the driver's diagnostic log. Fatal at startup: nothing can render
// with a broken shader.
type ShaderCompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// ShaderLinkError reports a failed program link, with the linker log.
type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

// ShaderProgram wraps a linked GL program with cached uniform and
// attribute locations, so lookups after construction are map reads
// rather than driver queries.
type ShaderProgram struct {
	id       uint32
	uniforms map[string]int32
	attribs  map[string]uint32
}

// NewShaderProgram compiles the two stages, links them, and enumerates
// all active uniforms and attributes into the location caches.
func NewShaderProgram(vertexSource, fragmentSource string) (*ShaderProgram, error) {
	vertex, err := compileShader(vertexSource, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, err
	}
	fragment, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		gl.DeleteShader(vertex)
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	// Stages are owned by the program once linked.
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		defer gl.DeleteProgram(program)
		return nil, &ShaderLinkError{Log: programInfoLog(program)}
	}

	p := &ShaderProgram{
		id:       program,
		uniforms: make(map[string]int32),
		attribs:  make(map[string]uint32),
	}
	p.enumerate()
	return p, nil
}

func compileShader(source string, xtype uint32, stage string) (uint32, error) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	shader := gl.CreateShader(xtype)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logBuf := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logBuf[0])
		gl.DeleteShader(shader)
		return 0, &ShaderCompileError{Stage: stage, Log: string(logBuf[:logLength])}
	}
	return shader, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logBuf := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &logBuf[0])
	return string(logBuf[:logLength])
}

// enumerate caches the locations of every active uniform and attribute.
func (p *ShaderProgram) enumerate() {
	var count int32
	buf := make([]byte, 256)

	gl.GetProgramiv(p.id, gl.ACTIVE_UNIFORMS, &count)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(p.id, uint32(i), int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		p.uniforms[name] = gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	}

	gl.GetProgramiv(p.id, gl.ACTIVE_ATTRIBUTES, &count)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(p.id, uint32(i), int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		p.attribs[name] = uint32(gl.GetAttribLocation(p.id, gl.Str(name+"\x00")))
	}
}

// Use makes this program current for subsequent draw calls. Global GPU
// state change.
func (p *ShaderProgram) Use() {
	gl.UseProgram(p.id)
}

// uniformLoc returns -1 for uniforms this program doesn't have, which
// the typed setters treat as a silent no-op. Shader variants that drop
// an unused uniform stay compatible with callers that still set it.
func (p *ShaderProgram) uniformLoc(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// SetMatrix4 sets a mat4 uniform. No-op if the uniform is not active.
func (p *ShaderProgram) SetMatrix4(name string, m wander.Mat4) {
	if loc := p.uniformLoc(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// SetFloat sets a float uniform. No-op if the uniform is not active.
func (p *ShaderProgram) SetFloat(name string, v float32) {
	if loc := p.uniformLoc(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetInt sets an int (or sampler) uniform. No-op if not active.
func (p *ShaderProgram) SetInt(name string, v int32) {
	if loc := p.uniformLoc(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetVec2 sets a vec2 uniform. No-op if the uniform is not active.
func (p *ShaderProgram) SetVec2(name string, x, y float32) {
	if loc := p.uniformLoc(name); loc >= 0 {
		gl.Uniform2f(loc, x, y)
	}
}

// AttribLocation returns the cached slot for an active attribute.
func (p *ShaderProgram) AttribLocation(name string) (uint32, bool) {
	loc, ok := p.attribs[name]
	return loc, ok
}

// Delete releases the GL program.
func (p *ShaderProgram) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
