// Package texture implements a typed 2D image usable both as a
// shader-sampled texture and as a framebuffer color attachment.
package texture

import (
	"unsafe"

	"github.com/vego3d/raster/linear"
)

// Texel is the set of types a Texture may store.
type Texel interface {
	UNorm | float32 | linear.Vec3 | linear.Vec4
}

// Texture is a 2D image of width*height texels of type T. The zero
// value is not usable; construct one with New.
//
// Texture is mutable only through Set, Clear and Fill; Fetch and
// Sample are read-only.
type Texture[T Texel] struct {
	buf           []T
	width, height int
}

// New creates a texture with the given dimensions, initialized to
// the zero value of T.
func New[T Texel](width, height int) *Texture[T] {
	return &Texture[T]{buf: make([]T, width*height), width: width, height: height}
}

// Width returns the texture's width in texels.
func (t *Texture[T]) Width() int { return t.width }

// Height returns the texture's height in texels.
func (t *Texture[T]) Height() int { return t.height }

// Raw returns the texel at (x, y) without any canonical conversion.
func (t *Texture[T]) Raw(x, y int) T { return t.buf[y*t.width+x] }

// Fetch returns the texel at (x, y) as a canonical Vec4: unpacked to
// [0, 1] for UNorm, replicated across RGB with alpha 1 for a
// grayscale float32, (rgb, 1) for Vec3, or passed through for Vec4.
func (t *Texture[T]) Fetch(x, y int) linear.Vec4 {
	return toVec4(t.buf[y*t.width+x])
}

// Set writes value, converted from canonical Vec4 into T, to the
// texel at (x, y).
func (t *Texture[T]) Set(x, y int, value linear.Vec4) {
	t.buf[y*t.width+x] = fromVec4[T](value)
}

// Sample performs nearest-neighbour lookup at normalized coordinates
// (u, v), addressing texel (u*(width-1), v*(height-1)). It neither
// clamps nor wraps: callers must supply u, v in [0, 1].
func (t *Texture[T]) Sample(u, v float32) linear.Vec4 {
	x := int(u * float32(t.width-1))
	y := int(v * float32(t.height-1))
	return t.Fetch(x, y)
}

// Clear zeroes the entire buffer.
func (t *Texture[T]) Clear() {
	var zero T
	for i := range t.buf {
		t.buf[i] = zero
	}
}

// Fill sets every texel to value.
func (t *Texture[T]) Fill(value T) {
	for i := range t.buf {
		t.buf[i] = value
	}
}

// ByteSize returns the size in bytes of the texture's backing buffer.
func (t *Texture[T]) ByteSize() int {
	var zero T
	return len(t.buf) * int(unsafe.Sizeof(zero))
}

// RawBuffer returns a pointer to the start of t's backing buffer, for
// host code (outside this module's scope) that blits a color
// attachment to a display surface.
func (t *Texture[T]) RawBuffer() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(t.buf))
}

func toVec4[T Texel](v T) linear.Vec4 {
	switch p := any(v).(type) {
	case UNorm:
		return p.ToVec4()
	case linear.Vec4:
		return p
	case linear.Vec3:
		return linear.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1}
	case float32:
		return linear.Vec4{X: p, Y: p, Z: p, W: 1}
	default:
		panic("texture: unreachable texel type")
	}
}

func fromVec4[T Texel](v linear.Vec4) T {
	var zero T
	switch any(zero).(type) {
	case UNorm:
		return any(UNormFromVec4(v)).(T)
	case linear.Vec4:
		return any(v).(T)
	case linear.Vec3:
		return any(v.Vec3()).(T)
	case float32:
		return any(v.X).(T)
	default:
		panic("texture: unreachable texel type")
	}
}
