package mathutil

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Mat2 is a 2x2 matrix stored row-major:
//
//	| A B |
//	| C D |
//
// A camera basis keeps the screen-horizontal axis in the first column and the
// forward axis in the second, so MulVec(vec.Vec2{X: fx, Y: 1}) is the ray
// direction for a screen offset fx.
type Mat2 struct {
	A, B float64
	C, D float64
}

// Mat2FromColumns builds a matrix from its two column vectors.
func Mat2FromColumns(c0, c1 vec.Vec2) Mat2 {
	return Mat2{
		A: c0.X, B: c1.X,
		C: c0.Y, D: c1.Y,
	}
}

// CameraBasis returns the basis for a camera facing angle (radians). The first
// column points to the camera's left so that positive screen offsets map to
// the left half of the screen.
func CameraBasis(angle float64) Mat2 {
	sin, cos := math.Sincos(angle)
	forward := vec.Vec2{X: cos, Y: sin}
	left := vec.Vec2{X: -sin, Y: cos}
	return Mat2FromColumns(left, forward)
}

// Column returns column i (0 or 1).
func (m Mat2) Column(i int) vec.Vec2 {
	if i == 0 {
		return vec.Vec2{X: m.A, Y: m.C}
	}
	return vec.Vec2{X: m.B, Y: m.D}
}

// MulVec returns m·v.
func (m Mat2) MulVec(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.C*v.X + m.D*v.Y,
	}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Inverse returns the inverse matrix. A singular matrix yields the zero matrix.
func (m Mat2) Inverse() Mat2 {
	det := m.Det()
	if det == 0 {
		return Mat2{}
	}
	inv := 1 / det
	return Mat2{
		A: m.D * inv, B: -m.B * inv,
		C: -m.C * inv, D: m.A * inv,
	}
}
