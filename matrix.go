package evergreen

import "math"

// Mat4 is a 4x4 matrix in column-major order: element (row r, column c) is
// m[c*4+r]. Points are column vectors, so A.Mul(B) applies B first.
type Mat4 [16]float64

// Identity4 is the identity matrix.
var Identity4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[r]*o[c*4] +
				m[4+r]*o[c*4+1] +
				m[8+r]*o[c*4+2] +
				m[12+r]*o[c*4+3]
		}
	}
	return out
}

// MulPoint transforms a point (w=1) and returns the result along with its w
// component. Callers doing projection divide by w themselves.
func (m Mat4) MulPoint(v Vec3) (Vec3, float64) {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}, m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
}

// MulDir transforms a direction (w=0).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity4
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale4 returns a uniform scale matrix.
func Scale4(s float64) Mat4 {
	m := Identity4
	m[0], m[5], m[10] = s, s, s
	return m
}

// RotateX returns a rotation of a radians around the X axis.
func RotateX(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity4
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY returns a rotation of a radians around the Y axis.
func RotateY(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity4
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateZ returns a rotation of a radians around the Z axis.
func RotateZ(a float64) Mat4 {
	s, c := math.Sincos(a)
	m := Identity4
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// RotateXYZ returns Rx * Ry * Rz for Euler angles in XYZ order.
func RotateXYZ(e Vec3) Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// Compose returns Translate(pos) * RotateXYZ(rot) * Scale4(scale).
func Compose(pos, rot Vec3, scale float64) Mat4 {
	m := RotateXYZ(rot)
	for i := 0; i < 3; i++ {
		m[i] *= scale
		m[4+i] *= scale
		m[8+i] *= scale
	}
	m[12], m[13], m[14] = pos.X, pos.Y, pos.Z
	return m
}

// Perspective returns a right-handed projection matrix mapping view-space
// depth [-near, -far] to clip-space z [-1, 1]. fovY is in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// LookAt returns a view matrix for an eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}
