package raster

import (
	"unsafe"

	"github.com/vego3d/raster/arena"
	"github.com/vego3d/raster/linear"
)

const pipePrefix = "pipeline: "

// subpixelBits is the fixed-point sub-pixel precision used by the
// filled-triangle rasterizer: vertex coordinates are scaled by
// subpixelScale before edge functions are evaluated, so coverage
// decisions are exact integer comparisons rather than float
// comparisons vulnerable to T-junction cracks.
const subpixelBits = 8
const subpixelScale = 1 << subpixelBits

// Pipeline is the draw engine: it reads a bound VertexBuffer and
// Program, transforms and rasterizes triangles against a bound
// FrameBuffer. It is not safe for concurrent use; a Pipeline owns its
// two arenas exclusively and Draw runs them to completion
// synchronously.
type Pipeline struct {
	vb      *VertexBuffer
	fb      *FrameBuffer
	prog    *Program
	uniform unsafe.Pointer

	culling   CullMode
	wireframe bool

	vertexArena arena.Arena
	attrArena   arena.Arena
	verts       []*VertexH
}

// NewPipeline returns an unbound Pipeline. Callers must bind a
// VertexBuffer, FrameBuffer and Program before calling Draw.
func NewPipeline() *Pipeline { return &Pipeline{} }

// SetVertexBuffer binds vb as the source of vertex data for
// subsequent Draw calls.
func (p *Pipeline) SetVertexBuffer(vb *VertexBuffer) { p.vb = vb }

// SetFrameBuffer binds fb as the render target for subsequent Draw
// calls.
func (p *Pipeline) SetFrameBuffer(fb *FrameBuffer) { p.fb = fb }

// SetProgram binds prog as the shader pair for subsequent Draw calls.
// It panics if prog.AttrCount exceeds MaxAttrs.
func (p *Pipeline) SetProgram(prog *Program) {
	if prog.AttrCount > MaxAttrs {
		panic(pipePrefix + "program attribute count exceeds MaxAttrs")
	}
	p.prog = prog
}

// SetUniform binds the opaque uniform blob passed to every shader
// invocation of subsequent Draw calls. The pipeline never reads or
// writes through u itself.
func (p *Pipeline) SetUniform(u unsafe.Pointer) { p.uniform = u }

// SetCulling selects the winding discarded by subsequent Draw calls.
func (p *Pipeline) SetCulling(mode CullMode) { p.culling = mode }

// SetWireframe toggles wireframe rasterization (Bresenham line
// traversal of each triangle edge) in place of filled half-space
// rasterization.
func (p *Pipeline) SetWireframe(on bool) { p.wireframe = on }

// Draw executes one synchronous, deterministic draw call against the
// currently bound state: vertex shading, trivial clip rejection,
// perspective divide, viewport transform, culling, rasterization,
// early depth test and fragment shading. It panics if no
// VertexBuffer, FrameBuffer or Program is bound.
func (p *Pipeline) Draw() {
	if p.vb == nil {
		panic(pipePrefix + "no vertex buffer bound")
	}
	if p.fb == nil {
		panic(pipePrefix + "no framebuffer bound")
	}
	if p.prog == nil {
		panic(pipePrefix + "no program bound")
	}

	n := p.vb.Count
	attrCount := p.prog.AttrCount

	p.vertexArena.Reset(n, int(unsafe.Sizeof(VertexH{})), 8)
	p.attrArena.Reset(n, attrCount*4, 32)

	if cap(p.verts) < n {
		p.verts = make([]*VertexH, n)
	}
	verts := p.verts[:n]

	for i := 0; i < n; i++ {
		vh := arena.Allocate[VertexH](&p.vertexArena)
		vh.Attr = p.attrArena.AllocateFloats()
		p.prog.VS(p.vb.at(i), p.uniform, vh)
		verts[i] = vh
	}

	for t := 0; t+2 < n; t += 3 {
		v0, v1, v2 := verts[t], verts[t+1], verts[t+2]
		if outsideFrustum(v0) && outsideFrustum(v1) && outsideFrustum(v2) {
			continue
		}

		perspectiveDivide(v0)
		perspectiveDivide(v1)
		perspectiveDivide(v2)

		p.viewportTransform(v0)
		p.viewportTransform(v1)
		p.viewportTransform(v2)

		cv0, cv1, cv2, ok := p.cull(v0, v1, v2)
		if !ok {
			continue
		}

		if p.wireframe {
			p.fillEdge(cv0, cv1, attrCount)
			p.fillEdge(cv1, cv2, attrCount)
			p.fillEdge(cv2, cv0, attrCount)
		} else {
			premultiplyAttrs(cv0, cv1, cv2, attrCount)
			p.fillTriangle(cv0, cv1, cv2, attrCount)
		}
	}
}

// outsideFrustum reports whether v's clip-space position fails at
// least one individual frustum plane test (|x|>w, |y|>w or |z|>w).
// Used only in the all-three-vertices combination that rejects a
// whole triangle.
func outsideFrustum(v *VertexH) bool {
	w := v.Pos.W
	return v.Pos.X > w || v.Pos.X < -w ||
		v.Pos.Y > w || v.Pos.Y < -w ||
		v.Pos.Z > w || v.Pos.Z < -w
}

// perspectiveDivide divides v's position by its clip-space w,
// leaving 1/w in v.Pos.W for reuse as 1/z_view during interpolation.
func perspectiveDivide(v *VertexH) {
	zRecip := 1 / v.Pos.W
	v.Pos.X *= zRecip
	v.Pos.Y *= zRecip
	v.Pos.Z *= zRecip
	v.Pos.W = zRecip
}

// viewportTransform maps v's NDC xy to pixel coordinates of p's bound
// framebuffer and its NDC z to [0, 1].
func (p *Pipeline) viewportTransform(v *VertexH) {
	w := float32(p.fb.width - 1)
	h := float32(p.fb.height - 1)
	v.Pos.X = (v.Pos.X*w + w) * 0.5
	v.Pos.Y = (v.Pos.Y*h + h) * 0.5
	v.Pos.Z = v.Pos.Z*0.5 + 0.5
}

// signedArea returns the screen-space signed area of the triangle
// (v0, v1, v2); positive for counter-clockwise winding.
func signedArea(v0, v1, v2 *VertexH) float32 {
	return (v1.Pos.X-v0.Pos.X)*(v2.Pos.Y-v0.Pos.Y) -
		(v2.Pos.X-v0.Pos.X)*(v1.Pos.Y-v0.Pos.Y)
}

// cull applies p's culling mode to the screen-space triangle
// (v0, v1, v2), returning its vertices (possibly with v1 and v2
// swapped to unify winding) and whether the triangle survives.
// Degenerate (zero-area) triangles are discarded regardless of mode.
func (p *Pipeline) cull(v0, v1, v2 *VertexH) (*VertexH, *VertexH, *VertexH, bool) {
	area := signedArea(v0, v1, v2)
	if area == 0 {
		return nil, nil, nil, false
	}
	switch p.culling {
	case CullBackFacing:
		if area <= 0 {
			return nil, nil, nil, false
		}
		return v0, v1, v2, true
	case CullFrontFacing:
		if area >= 0 {
			return nil, nil, nil, false
		}
		return v0, v2, v1, true
	default: // CullNone
		if area < 0 {
			return v0, v2, v1, true
		}
		return v0, v1, v2, true
	}
}

// premultiplyAttrs hoists the perspective-correct interpolation's
// division out of the per-pixel loop. It scales v0's attributes by
// its 1/z_view (v0.Pos.W, set by perspectiveDivide) and replaces
// v1's and v2's with a_i*w_i - a0*w0. Since the barycentric weights
// sum to 1, the inner loop then recovers the perspective-correct
// attribute as (a0' + bw1*a1' + bw2*a2') / (bw0*w0 + bw1*w1 + bw2*w2)
// with a single division instead of one per attribute.
func premultiplyAttrs(v0, v1, v2 *VertexH, attrCount int) {
	w0, w1, w2 := v0.Pos.W, v1.Pos.W, v2.Pos.W
	for i := 0; i < attrCount; i++ {
		a0 := v0.Attr[i] * w0
		v1.Attr[i] = v1.Attr[i]*w1 - a0
		v2.Attr[i] = v2.Attr[i]*w2 - a0
		v0.Attr[i] = a0
	}
}

// shade interpolates v0/v1/v2's (already premultiplied) attributes at
// barycentric weights (bw0, bw1, bw2) into attrBuf, runs the bound
// fragment shader, and writes the result to p's framebuffer at
// (x, y) with depth z, provided the early depth test passes.
func (p *Pipeline) shade(x, y int, v0, v1, v2 *VertexH, bw0, bw1, bw2, z float32, attrCount int, attrBuf []float32, colorBuf []linear.Vec4) {
	if !(z < p.fb.GetDepth(x, y)) {
		return
	}
	invZv := bw0*v0.Pos.W + bw1*v1.Pos.W + bw2*v2.Pos.W
	zv := 1 / invZv
	for i := 0; i < attrCount; i++ {
		attrBuf[i] = (v0.Attr[i] + bw1*v1.Attr[i] + bw2*v2.Attr[i]) * zv
	}
	frag := Fragment{
		Coord: linear.Vec3{X: float32(x), Y: float32(y), Z: z},
		Attr:  attrBuf[:attrCount],
	}
	p.prog.FS(&frag, p.uniform, colorBuf[:p.fb.ncolor])
	p.fb.SetPixel(x, y, colorBuf[:p.fb.ncolor], z)
}

// fillTriangle rasterizes the screen-space, already-premultiplied
// triangle (v0, v1, v2) using fixed-point half-space edge functions
// with subpixelBits of sub-pixel precision and a top-left fill rule,
// and shades every covered pixel.
func (p *Pipeline) fillTriangle(v0, v1, v2 *VertexH, attrCount int) {
	minXf := min3(v0.Pos.X, v1.Pos.X, v2.Pos.X)
	maxXf := max3(v0.Pos.X, v1.Pos.X, v2.Pos.X)
	minYf := min3(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y)
	maxYf := max3(v0.Pos.Y, v1.Pos.Y, v2.Pos.Y)

	minX := clampInt(int(minXf), 0, p.fb.width)
	maxX := clampInt(int(maxXf)+1, 0, p.fb.width)
	minY := clampInt(int(minYf), 0, p.fb.height)
	maxY := clampInt(int(maxYf)+1, 0, p.fb.height)
	if minX >= maxX || minY >= maxY {
		return
	}

	x0, y0 := toFixed(v0.Pos.X), toFixed(v0.Pos.Y)
	x1, y1 := toFixed(v1.Pos.X), toFixed(v1.Pos.Y)
	x2, y2 := toFixed(v2.Pos.X), toFixed(v2.Pos.Y)

	dx0, dy0 := x2-x1, y2-y1
	dx1, dy1 := x0-x2, y0-y2
	dx2, dy2 := x1-x0, y1-y0

	areaFixed := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if areaFixed <= 0 {
		return
	}
	invArea := 1 / float32(areaFixed)

	sx := int64(minX)*subpixelScale + subpixelScale/2
	sy := int64(minY)*subpixelScale + subpixelScale/2

	e0Row := dx0*(sy-y1) - dy0*(sx-x1) + edgeBias(dx0, dy0)
	e1Row := dx1*(sy-y2) - dy1*(sx-x2) + edgeBias(dx1, dy1)
	e2Row := dx2*(sy-y0) - dy2*(sx-x0) + edgeBias(dx2, dy2)

	stepX0, stepY0 := -dy0*subpixelScale, dx0*subpixelScale
	stepX1, stepY1 := -dy1*subpixelScale, dx1*subpixelScale
	stepX2, stepY2 := -dy2*subpixelScale, dx2*subpixelScale

	var attrBuf [MaxAttrs]float32
	var colorBuf [MaxColorAttachments]linear.Vec4

	for y := minY; y < maxY; y++ {
		e0, e1, e2 := e0Row, e1Row, e2Row
		for x := minX; x < maxX; x++ {
			if e0 >= 0 && e1 >= 0 && e2 >= 0 {
				w0 := float32(e0) * invArea
				w1 := float32(e1) * invArea
				w2 := 1 - w0 - w1
				zs := w0*v0.Pos.Z + w1*v1.Pos.Z + w2*v2.Pos.Z
				p.shade(x, y, v0, v1, v2, w0, w1, w2, zs, attrCount, attrBuf[:], colorBuf[:])
			}
			e0 += stepX0
			e1 += stepX1
			e2 += stepX2
		}
		e0Row += stepY0
		e1Row += stepY1
		e2Row += stepY2
	}
}

// fillEdge rasterizes the edge from va to vb with Bresenham's line
// algorithm, linearly interpolating depth and attributes between the
// two endpoints (not perspective-correct: a wireframe edge is a pure
// screen-space visualization aid, not a shaded surface).
func (p *Pipeline) fillEdge(va, vb *VertexH, attrCount int) {
	x0, y0 := int(va.Pos.X+0.5), int(va.Pos.Y+0.5)
	x1, y1 := int(vb.Pos.X+0.5), int(vb.Pos.Y+0.5)

	dx := iabs(x1 - x0)
	dy := -iabs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		steps = 1
	}

	var attrBuf [MaxAttrs]float32
	var colorBuf [MaxColorAttachments]linear.Vec4

	err := dx + dy
	x, y := x0, y0
	for step := 0; ; step++ {
		if x >= 0 && y >= 0 && x < p.fb.width && y < p.fb.height {
			wEdge := float32(step) / float32(steps)
			z := va.Pos.Z + (vb.Pos.Z-va.Pos.Z)*wEdge
			if z < p.fb.GetDepth(x, y) {
				for i := 0; i < attrCount; i++ {
					attrBuf[i] = va.Attr[i] + (vb.Attr[i]-va.Attr[i])*wEdge
				}
				frag := Fragment{
					Coord: linear.Vec3{X: float32(x), Y: float32(y), Z: z},
					Attr:  attrBuf[:attrCount],
				}
				p.prog.FS(&frag, p.uniform, colorBuf[:p.fb.ncolor])
				p.fb.SetPixel(x, y, colorBuf[:p.fb.ncolor], z)
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// toFixed scales f by subpixelScale into a rounded fixed-point int64.
func toFixed(f float32) int64 {
	if f >= 0 {
		return int64(f*subpixelScale + 0.5)
	}
	return -int64(-f*subpixelScale + 0.5)
}

// edgeBias returns the top-left fill rule bias for an edge with the
// given fixed-point delta: 0 if the edge is a top or left edge
// (inclusive), -1 otherwise (exclusive, since e==0 exactly on the
// edge must then fail the e>=0 coverage test).
func edgeBias(dx, dy int64) int64 {
	if dy < 0 || (dy == 0 && dx < 0) {
		return 0
	}
	return -1
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int { return linear.Clamp(v, lo, hi) }

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
