package raster

import (
	"github.com/vego3d/raster/linear"
	"github.com/vego3d/raster/texture"
)

const fbPrefix = "framebuffer: "

// MaxColorAttachments is the design bound on the number of color
// attachments a FrameBuffer may bundle alongside its depth texture.
const MaxColorAttachments = 4

// colorTarget is satisfied generically by texture.Texture[T] for
// every texel type T, letting FrameBuffer hold a heterogeneous list
// of attachments (UNorm, Vec3, ...) without a type switch at every
// SetPixel call.
type colorTarget interface {
	Width() int
	Height() int
	Set(x, y int, value linear.Vec4)
	Clear()
}

// FrameBuffer bundles between 1 and MaxColorAttachments color
// attachments plus a depth attachment, all sharing the same
// dimensions. The zero value is not usable; construct one with
// NewFrameBuffer.
type FrameBuffer struct {
	color      [MaxColorAttachments]colorTarget
	ncolor     int
	depth      *texture.Texture[float32]
	colorWrite bool
	width      int
	height     int
}

// NewFrameBuffer creates a FrameBuffer of the given dimensions with
// ncolor color attachments, each defaulting to a Texture[UNorm].
// Callers that need a different attachment format call AttachColor
// afterward. It panics if ncolor is out of [1, MaxColorAttachments].
func NewFrameBuffer(width, height, ncolor int) *FrameBuffer {
	if ncolor < 1 || ncolor > MaxColorAttachments {
		panic(fbPrefix + "color attachment count out of range")
	}
	fb := &FrameBuffer{
		ncolor:     ncolor,
		colorWrite: true,
		depth:      texture.New[float32](width, height),
		width:      width,
		height:     height,
	}
	for i := 0; i < ncolor; i++ {
		fb.color[i] = texture.New[texture.UNorm](width, height)
	}
	fb.Clear()
	return fb
}

// Width returns the framebuffer's width in pixels.
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the framebuffer's height in pixels.
func (fb *FrameBuffer) Height() int { return fb.height }

// AttachColor replaces the color attachment at slot with t, which may
// be a *texture.Texture[T] for any texel type T (UNorm, Vec3, Vec4 or
// float32). It panics if slot is out of range or t's dimensions do
// not match fb's.
func (fb *FrameBuffer) AttachColor(slot int, t colorTarget) {
	if slot < 0 || slot >= fb.ncolor {
		panic(fbPrefix + "color attachment slot out of range")
	}
	if t.Width() != fb.width || t.Height() != fb.height {
		panic(fbPrefix + "attachment dimensions do not match framebuffer")
	}
	fb.color[slot] = t
}

// ColorAttachment returns the color attachment currently bound at
// slot. Its dynamic type is the *texture.Texture[T] that was passed to
// AttachColor for that slot, or the *texture.Texture[texture.UNorm]
// that NewFrameBuffer created if the slot was never replaced; host
// code type-asserts it to reach the concrete texture (e.g. to call
// RawBuffer for a blit).
func (fb *FrameBuffer) ColorAttachment(slot int) any {
	if slot < 0 || slot >= fb.ncolor {
		panic(fbPrefix + "color attachment slot out of range")
	}
	return fb.color[slot]
}

// Clear resets every color attachment to its zero texel and the
// depth attachment to 1.0.
func (fb *FrameBuffer) Clear() {
	for i := 0; i < fb.ncolor; i++ {
		fb.color[i].Clear()
	}
	fb.depth.Fill(1)
}

// SetColorWrite toggles whether SetPixel writes color attachments.
// Depth writes are always unconditional.
func (fb *FrameBuffer) SetColorWrite(enabled bool) { fb.colorWrite = enabled }

// SetPixel writes depth unconditionally, and writes colors[i] to
// color attachment i for every bound attachment, but only if color
// writes are enabled. colors must have at least as many elements as
// fb has color attachments.
func (fb *FrameBuffer) SetPixel(x, y int, colors []linear.Vec4, depth float32) {
	if fb.colorWrite {
		for i := 0; i < fb.ncolor; i++ {
			fb.color[i].Set(x, y, colors[i])
		}
	}
	fb.depth.Set(x, y, linear.Vec4{X: depth})
}

// GetDepth returns the current depth value at (x, y).
func (fb *FrameBuffer) GetDepth(x, y int) float32 {
	return fb.depth.Fetch(x, y).X
}
