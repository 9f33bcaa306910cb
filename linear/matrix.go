package linear

import (
	math "github.com/chewxy/math32"
)

// degToRad converts an angle in degrees to radians, as a source
// convenience for callers that do not already work in radians.
const degToRad = math.Pi / 180

// Radians converts deg to radians.
func Radians(deg float32) float32 { return deg * degToRad }

// Mat4 is a column-major 4x4 matrix of float32.
// It follows the column-vector convention: m.MulV(&out, v) sets out
// to v transformed by m (i.e., the mathematical m⋅v).
type Mat4 [4]Vec4

// I makes m an identity matrix.
func (m *Mat4) I() {
	*m = Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul sets m to contain l ⋅ r.
func (m *Mat4) Mul(l, r *Mat4) {
	var res Mat4
	for i := range res {
		for j := 0; j < 4; j++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += l[k].at(j) * r[i].at(k)
			}
			res[i].set(j, s)
		}
	}
	*m = res
}

// MulV sets v to contain m ⋅ w.
func (m *Mat4) MulV(v *Vec4, w Vec4) {
	*v = Vec4{}
	for i := 0; i < 4; i++ {
		c := m[i]
		v.X += c.X * w.at(i)
		v.Y += c.Y * w.at(i)
		v.Z += c.Z * w.at(i)
		v.W += c.W * w.at(i)
	}
}

// Transpose sets m to contain the transpose of n.
func (m *Mat4) Transpose(n *Mat4) {
	var res Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			res[i].set(j, n[j].at(i))
		}
	}
	*m = res
}

// Invert sets m to contain the inverse of n.
func (m *Mat4) Invert(n *Mat4) {
	a := n.array()
	s0 := a[0]*a[5] - a[1]*a[4]
	s1 := a[0]*a[6] - a[2]*a[4]
	s2 := a[0]*a[7] - a[3]*a[4]
	s3 := a[1]*a[6] - a[2]*a[5]
	s4 := a[1]*a[7] - a[3]*a[5]
	s5 := a[2]*a[7] - a[3]*a[6]
	c0 := a[8]*a[13] - a[9]*a[12]
	c1 := a[8]*a[14] - a[10]*a[12]
	c2 := a[8]*a[15] - a[11]*a[12]
	c3 := a[9]*a[14] - a[10]*a[13]
	c4 := a[9]*a[15] - a[11]*a[13]
	c5 := a[10]*a[15] - a[11]*a[14]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	var r [16]float32
	r[0] = (a[5]*c5 - a[6]*c4 + a[7]*c3) * idet
	r[1] = (-a[1]*c5 + a[2]*c4 - a[3]*c3) * idet
	r[2] = (a[13]*s5 - a[14]*s4 + a[15]*s3) * idet
	r[3] = (-a[9]*s5 + a[10]*s4 - a[11]*s3) * idet
	r[4] = (-a[4]*c5 + a[6]*c2 - a[7]*c1) * idet
	r[5] = (a[0]*c5 - a[2]*c2 + a[3]*c1) * idet
	r[6] = (-a[12]*s5 + a[14]*s2 - a[15]*s1) * idet
	r[7] = (a[8]*s5 - a[10]*s2 + a[11]*s1) * idet
	r[8] = (a[4]*c4 - a[5]*c2 + a[7]*c0) * idet
	r[9] = (-a[0]*c4 + a[1]*c2 - a[3]*c0) * idet
	r[10] = (a[12]*s4 - a[13]*s2 + a[15]*s0) * idet
	r[11] = (-a[8]*s4 + a[9]*s2 - a[11]*s0) * idet
	r[12] = (-a[4]*c3 + a[5]*c1 - a[6]*c0) * idet
	r[13] = (a[0]*c3 - a[1]*c1 + a[2]*c0) * idet
	r[14] = (-a[12]*s3 + a[13]*s1 - a[14]*s0) * idet
	r[15] = (a[8]*s3 - a[9]*s1 + a[10]*s0) * idet
	m.fromArray(r)
}

// at returns the i-th component of v (0=X, 1=Y, 2=Z, 3=W).
func (v Vec4) at(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return v.W
	}
}

// set assigns the i-th component of v.
func (v *Vec4) set(i int, f float32) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	case 2:
		v.Z = f
	default:
		v.W = f
	}
}

// array lays m out in column-major order: a[4*col+row].
func (m *Mat4) array() (a [16]float32) {
	for c := 0; c < 4; c++ {
		a[4*c+0] = m[c].X
		a[4*c+1] = m[c].Y
		a[4*c+2] = m[c].Z
		a[4*c+3] = m[c].W
	}
	return
}

// fromArray is the inverse of array.
func (m *Mat4) fromArray(a [16]float32) {
	for c := 0; c < 4; c++ {
		m[c] = Vec4{a[4*c+0], a[4*c+1], a[4*c+2], a[4*c+3]}
	}
}

// Translate returns a matrix that translates by v.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{v.X, v.Y, v.Z, 1},
	}
}

// Scale returns a matrix that scales by (x, y, z).
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// RotateX returns a CCW rotation matrix about the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY returns a CCW rotation matrix about the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a CCW rotation matrix about the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// CreatePerspProjMatrix returns a right-handed perspective projection
// matrix for a -Z-forward view volume. fovY is the vertical field of
// view in radians. The result produces homogeneous clip coordinates
// with w = -z_view.
func CreatePerspProjMatrix(fovY, aspect, znear, zfar float32) Mat4 {
	t := math.Tan(fovY / 2)
	r := aspect * t
	return Mat4{
		{1 / r, 0, 0, 0},
		{0, 1 / t, 0, 0},
		{0, 0, -(zfar + znear) / (zfar - znear), -1},
		{0, 0, -2 * znear * zfar / (zfar - znear), 0},
	}
}

// CreateViewMatrix returns a right-handed look-at view matrix.
func CreateViewMatrix(pos, target, up Vec3) Mat4 {
	var f Vec3
	f.Sub(target, pos)
	f.Norm(f)
	var s Vec3
	s.Cross(f, up)
	s.Norm(s)
	var u Vec3
	u.Cross(s, f)
	return Mat4{
		{s.X, u.X, -f.X, 0},
		{s.Y, u.Y, -f.Y, 0},
		{s.Z, u.Z, -f.Z, 0},
		{-s.Dot(pos), -u.Dot(pos), f.Dot(pos), 1},
	}
}
