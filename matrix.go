package wander

// Mat4 is a 4x4 matrix in column-major order, as consumed by the GPU.
type Mat4 [16]float32

// Ortho builds an orthographic projection mapping the pixel rectangle
// [0,width]x[0,height] to device coordinates [-1,1]x[-1,1]. The origin
// is the top-left corner with Y increasing downward, so (0,0) maps to
// (-1,1) and (width,height) maps to (1,-1). Z maps [near,far] to
// [-1,1]; depth testing is disabled so Z only satisfies the pipeline.
//
// Must be rebuilt whenever the drawable surface is resized. Width and
// height are physical pixels, not layout units.
func Ortho(width, height float32) Mat4 {
	return orthoMatrix(0, width, height, 0, -1, 1)
}

// orthoMatrix creates a general orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// Transform applies the matrix to a homogeneous point and returns the
// transformed components.
func (m Mat4) Transform(x, y, z, w float32) (tx, ty, tz, tw float32) {
	tx = m[0]*x + m[4]*y + m[8]*z + m[12]*w
	ty = m[1]*x + m[5]*y + m[9]*z + m[13]*w
	tz = m[2]*x + m[6]*y + m[10]*z + m[14]*w
	tw = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	return
}

// Project maps a 2D point through the matrix and returns device
// coordinates after the perspective divide.
func (m Mat4) Project(x, y float32) (dx, dy float32) {
	tx, ty, _, tw := m.Transform(x, y, 0, 1)
	if tw == 0 {
		return 0, 0
	}
	return tx / tw, ty / tw
}
