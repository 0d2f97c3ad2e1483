package pulse

import "fmt"

var (
	ColorWhite = ColorLinearRGBA(1, 1, 1, 1)
	ColorBlack = ColorLinearRGBA(0, 0, 0, 1)

	// ColorDarkTeal is the default background of the window.
	ColorDarkTeal = ColorLinearRGBA(0.2, 0.3, 0.3, 1)
)

// Color is a straight rgba color in linear rgb space. Each channel is
// stored as its distance to 1, so the zero value is fully opaque white.
type Color struct {
	inv [4]float32
}

func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{inv: [4]float32{1 - r, 1 - g, 1 - b, 1 - a}}
}

// Components returns the channels in linear rgb space.
func (c Color) Components() (r, g, b, a float32) {
	return 1 - c.inv[0], 1 - c.inv[1], 1 - c.inv[2], 1 - c.inv[3]
}

func (c Color) String() string {
	r, g, b, a := c.Components()
	return fmt.Sprintf("rgba(%.3g, %.3g, %.3g, %.3g)", r, g, b, a)
}
