// Package glm contains the small amount of linear algebra needed to place a
// 2d polygon in clip space. Matrices are column-major like in OpenGL.
package glm

import (
	"math"

	"golang.org/x/exp/constraints"
)

type numeric interface {
	constraints.Float
}

type Mat4f = Mat4[float32]
type Vec2f = Vec2[float32]
type Vec4f = Vec4[float32]

// Rad is an angle in radians
type Rad float32

// Sincos returns sine and cosine of the angle. They are computed in float64
// and rounded, so rotations match glm::rotate to float32 precision.
func (r Rad) Sincos() (sin, cos float32) {
	s, c := math.Sincos(float64(r))
	return float32(s), float32(c)
}
