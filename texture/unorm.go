package texture

import (
	"github.com/vego3d/raster/linear"
)

// UNorm is a 4-byte packed R8G8B8A8 texel. Each channel is an 8-bit
// unsigned value interpreted as a float in [0, 1] via division by
// 255.
type UNorm struct {
	R, G, B, A uint8
}

// ToVec4 unpacks u into a Vec4 with components in [0, 1].
func (u UNorm) ToVec4() linear.Vec4 {
	const div = 1.0 / 255.0
	return linear.Vec4{
		X: float32(u.R) * div,
		Y: float32(u.G) * div,
		Z: float32(u.B) * div,
		W: float32(u.A) * div,
	}
}

// UNormFromVec4 packs v into a UNorm, clamping each channel to
// [0, 1] before quantizing by ×255. Alpha is always forced to 255:
// UNorm is the pipeline's opaque-write color format (see
// FrameBuffer's color-write semantics).
func UNormFromVec4(v linear.Vec4) UNorm {
	return UNorm{
		R: quantize(v.X),
		G: quantize(v.Y),
		B: quantize(v.Z),
		A: 255,
	}
}

func quantize(f float32) uint8 { return uint8(linear.Clamp(f, 0, 1) * 255) }
