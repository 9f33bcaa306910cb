// Package linear implements math for 3D graphics.
package linear

import (
	math "github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Vec2 is a 2-component vector of float32.
type Vec2 struct{ X, Y float32 }

// R is an alias for X.
func (v Vec2) R() float32 { return v.X }

// G is an alias for Y.
func (v Vec2) G() float32 { return v.Y }

// Add sets v to contain l + r.
func (v *Vec2) Add(l, r Vec2) { v.X = l.X + r.X; v.Y = l.Y + r.Y }

// Sub sets v to contain l - r.
func (v *Vec2) Sub(l, r Vec2) { v.X = l.X - r.X; v.Y = l.Y - r.Y }

// Scale sets v to contain s ⋅ w.
func (v *Vec2) Scale(s float32, w Vec2) { v.X = s * w.X; v.Y = s * w.Y }

// Dot returns v ⋅ w.
func (v Vec2) Dot(w Vec2) float32 { return v.X*w.X + v.Y*w.Y }

// Vec3 is a 3-component vector of float32.
type Vec3 struct{ X, Y, Z float32 }

// R is an alias for X.
func (v Vec3) R() float32 { return v.X }

// G is an alias for Y.
func (v Vec3) G() float32 { return v.Y }

// B is an alias for Z.
func (v Vec3) B() float32 { return v.Z }

// Add sets v to contain l + r.
func (v *Vec3) Add(l, r Vec3) { v.X = l.X + r.X; v.Y = l.Y + r.Y; v.Z = l.Z + r.Z }

// Sub sets v to contain l - r.
func (v *Vec3) Sub(l, r Vec3) { v.X = l.X - r.X; v.Y = l.Y - r.Y; v.Z = l.Z - r.Z }

// Scale sets v to contain s ⋅ w.
func (v *Vec3) Scale(s float32, w Vec3) { v.X = s * w.X; v.Y = s * w.Y; v.Z = s * w.Z }

// Dot returns v ⋅ w.
func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Len returns the length of v.
func (v Vec3) Len() float32 { return math.Sqrt(v.Dot(v)) }

// Norm sets v to contain w normalized.
// If w has zero length, v is set to the zero vector.
func (v *Vec3) Norm(w Vec3) {
	if l := w.Len(); l != 0 {
		v.Scale(1/l, w)
	} else {
		*v = Vec3{}
	}
}

// Cross sets v to contain l × r.
func (v *Vec3) Cross(l, r Vec3) {
	*v = Vec3{
		X: l.Y*r.Z - l.Z*r.Y,
		Y: l.Z*r.X - l.X*r.Z,
		Z: l.X*r.Y - l.Y*r.X,
	}
}

// Reflect sets v to contain the reflection of w about normal n.
// n is expected to be normalized.
func (v *Vec3) Reflect(w, n Vec3) {
	var s Vec3
	s.Scale(2*n.Dot(w), n)
	v.Sub(w, s)
}

// Vec4 is a 4-component vector of float32.
type Vec4 struct{ X, Y, Z, W float32 }

// FromVec3 sets v to (w, a).
func (v *Vec4) FromVec3(w Vec3, a float32) { *v = Vec4{w.X, w.Y, w.Z, a} }

// Vec3 returns the first three components of v.
func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// R is an alias for X.
func (v Vec4) R() float32 { return v.X }

// G is an alias for Y.
func (v Vec4) G() float32 { return v.Y }

// B is an alias for Z.
func (v Vec4) B() float32 { return v.Z }

// A is an alias for W.
func (v Vec4) A() float32 { return v.W }

// Add sets v to contain l + r.
func (v *Vec4) Add(l, r Vec4) {
	v.X = l.X + r.X
	v.Y = l.Y + r.Y
	v.Z = l.Z + r.Z
	v.W = l.W + r.W
}

// Sub sets v to contain l - r.
func (v *Vec4) Sub(l, r Vec4) {
	v.X = l.X - r.X
	v.Y = l.Y - r.Y
	v.Z = l.Z - r.Z
	v.W = l.W - r.W
}

// Scale sets v to contain s ⋅ w.
func (v *Vec4) Scale(s float32, w Vec4) {
	v.X = s * w.X
	v.Y = s * w.Y
	v.Z = s * w.Z
	v.W = s * w.W
}

// Dot returns v ⋅ w.
func (v Vec4) Dot(w Vec4) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W }

// Lerp sets v to the linear interpolation of l and r by t, where
// t = 0 yields l and t = 1 yields r.
func (v *Vec4) Lerp(l, r Vec4, t float32) {
	v.X = l.X + (r.X-l.X)*t
	v.Y = l.Y + (r.Y-l.Y)*t
	v.Z = l.Z + (r.Z-l.Z)*t
	v.W = l.W + (r.W-l.W)*t
}

// Clamp restricts v to [lo, hi]. Shared by texture's channel
// quantization (T = float32) and the pipeline's screen-space bounding
// box arithmetic (T = int).
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
