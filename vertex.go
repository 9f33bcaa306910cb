// Package raster implements a single-threaded, programmable CPU
// rasterization pipeline: vertex shading, trivial clip rejection,
// perspective divide, viewport transform, culling, half-space (or
// wireframe) triangle traversal, perspective-correct interpolation,
// early depth test and fragment shading.
package raster

import (
	"unsafe"

	"github.com/vego3d/raster/linear"
)

// MaxAttrs is the compile-time cap on the number of float attribute
// slots a Program may share between its vertex and fragment shader.
const MaxAttrs = 16

// Vertex is the header every user vertex struct must embed as its
// first field. A VertexBuffer's elements are reached as *Vertex by
// the pipeline and reinterpreted as the caller's own struct by the
// vertex shader itself.
type Vertex struct {
	Pos linear.Vec3
}

// VertexH is the vertex shader's output record: a homogeneous
// clip-space position plus an attribute payload carved out of the
// pipeline's attribute arena for the current draw. Attr is written by
// the vertex shader and later mutated in place by perspective divide
// (Pos only) and by attribute pre-multiplication (Attr only).
type VertexH struct {
	Pos  linear.Vec4
	Attr []float32
}

// Fragment is the fragment shader's input record: the rasterized
// pixel's integer coordinates and interpolated depth, plus the
// interpolated attribute payload.
type Fragment struct {
	Coord linear.Vec3
	Attr  []float32
}

// VertexShader fills out.Pos with a clip-space position and writes
// prog.AttrCount floats to out.Attr. in points at the VertexBuffer's
// raw element storage and must be reinterpreted via unsafe.Pointer to
// the caller's own vertex struct (whose first field is Vertex) to
// reach attributes beyond Pos. A vertex shader is a pure function: it
// must not retain state across invocations and must not allocate from
// the arena.
type VertexShader func(in *Vertex, uniform unsafe.Pointer, out *VertexH)

// FragmentShader reads in.Attr (interpolated, perspective-correct)
// and uniform, and writes one color per bound FrameBuffer color
// attachment into out. Like VertexShader, it must be a pure function.
type FragmentShader func(in *Fragment, uniform unsafe.Pointer, out []linear.Vec4)

// Program bundles a shader pair with the attribute contract they
// share. AttrCount must not exceed MaxAttrs.
type Program struct {
	VS        VertexShader
	FS        FragmentShader
	AttrCount int
}

// VertexBuffer is a borrowed view over tightly packed vertex data:
// Ptr must point to Count elements of Stride bytes each, and the
// first bytes of every element must be layout-compatible with Vertex.
// The pipeline never copies or frees the memory behind Ptr; it must
// remain valid for the lifetime of every draw call that references
// it.
type VertexBuffer struct {
	Ptr    unsafe.Pointer
	Count  int
	Stride int
}

// at returns a pointer to the i-th element of vb, reinterpreted as
// *Vertex. Callers that need the user-defined payload beyond Pos cast
// the returned pointer again inside their own vertex shader.
func (vb *VertexBuffer) at(i int) *Vertex {
	return (*Vertex)(unsafe.Add(vb.Ptr, i*vb.Stride))
}

// CullMode selects which winding the pipeline discards during the
// cull step of a draw call.
type CullMode int

const (
	// CullNone keeps every non-degenerate triangle, rewinding
	// clockwise ones to counter-clockwise so downstream code always
	// sees a consistent winding.
	CullNone CullMode = iota
	// CullFrontFacing discards counter-clockwise (front-facing)
	// triangles.
	CullFrontFacing
	// CullBackFacing discards clockwise (back-facing) triangles.
	CullBackFacing
)
