package core

import "math"

// Color is a linear RGB triple; components are nominally in [0, 1] but
// emitters may exceed 1 before clamping
type Color = Vec3

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{X: r, Y: g, Z: b}
}

// RGB8 is an 8-bit per channel color as written to output images
type RGB8 struct {
	R, G, B uint8
}

// ToRGB8 clamps each channel to [0, 1] and truncates 255*c to a byte.
// NaN channels become 0.
func ToRGB8(c Color) RGB8 {
	return RGB8{
		R: channelByte(c.X),
		G: channelByte(c.Y),
		B: channelByte(c.Z),
	}
}

func channelByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255 * max(0, min(1, v)))
}

// Color converts the 8-bit color back to a float color; the round trip is lossy
func (c RGB8) Color() Color {
	return NewColor(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
