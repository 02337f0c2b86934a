// Package raycast walks rays through a unit tile grid.
//
// Cast visits every tile a ray enters, in order, and hands each crossing to the
// consumer as a Step. The consumer stops the walk with break, so a single pass
// can both collect see-through hits and stop at the first opaque wall.
package raycast

import (
	"iter"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/mathutil"
)

const (
	// DefaultMaxDistance bounds a ray when Ray.MaxDistance is not set.
	DefaultMaxDistance = 100.0

	// Epsilon is the smallest direction component treated as non-zero.
	Epsilon = 1e-6

	// farAway is the remaining distance used for an axis the ray never crosses.
	farAway = 1e16
)

// Axis names the grid line a step crossed.
type Axis uint8

const (
	// AxisX means the ray crossed a vertical grid line (x changed).
	AxisX Axis = iota
	// AxisY means the ray crossed a horizontal grid line (y changed).
	AxisY
)

// Ray is a half-line in tile space. Dir does not need to be normalized;
// distances are measured in multiples of Dir.
type Ray struct {
	Origin      vec.Vec2
	Dir         vec.Vec2
	MaxDistance float64
}

// Step describes the ray entering one tile.
type Step struct {
	Distance float64 // Parametric distance travelled so far
	X, Y     int     // Tile just entered
	FracX    float64 // Sub-tile x of the entry point, 0 when the ray crossed a vertical line
	FracY    float64 // Sub-tile y of the entry point, 0 when the ray crossed a horizontal line
	Pos      vec.Vec2
	Side     Axis
}

// U returns the horizontal texture coordinate of the entry point on the
// crossed tile face.
func (s Step) U() float64 {
	return s.FracX + s.FracY
}

// Cast returns the sequence of tiles entered by ray. The origin tile itself is
// not yielded, and a ray with no usable direction yields nothing. The walk
// ends once Distance reaches MaxDistance or the consumer stops ranging.
func Cast(ray Ray) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		maxDistance := ray.MaxDistance
		if maxDistance <= 0 {
			maxDistance = DefaultMaxDistance
		}

		ox, oy := ray.Origin.X, ray.Origin.Y
		dx, dy := ray.Dir.X, ray.Dir.Y
		if math.Abs(dx) < Epsilon && math.Abs(dy) < Epsilon {
			return
		}

		ix := int(math.Floor(ox))
		iy := int(math.Floor(oy))
		stepX := mathutil.FloatSign(dx)
		stepY := mathutil.FloatSign(dy)

		xRemaining := firstCrossing(ox, dx)
		yRemaining := firstCrossing(oy, dy)
		xDelta := 1 / math.Max(math.Abs(dx), Epsilon)
		yDelta := 1 / math.Max(math.Abs(dy), Epsilon)

		total := 0.0
		for total < maxDistance {
			var side Axis
			if xRemaining < yRemaining {
				total += xRemaining
				yRemaining -= xRemaining
				xRemaining = xDelta
				ix += stepX
				side = AxisX
			} else {
				total += yRemaining
				xRemaining -= yRemaining
				yRemaining = yDelta
				iy += stepY
				side = AxisY
			}

			pos := ray.Origin.Add(ray.Dir.Mul(total))
			step := Step{
				Distance: total,
				X:        ix,
				Y:        iy,
				Pos:      pos,
				Side:     side,
			}
			// The crossed axis sits exactly on a grid line; the other axis
			// is taken relative to the tile just entered.
			if side == AxisX {
				step.FracY = tileFrac(pos.Y, iy)
			} else {
				step.FracX = tileFrac(pos.X, ix)
			}

			if !yield(step) {
				return
			}
		}
	}
}

// firstCrossing is the parametric distance from p to the first grid line in
// direction d.
func firstCrossing(p, d float64) float64 {
	if math.Abs(d) < Epsilon {
		return farAway
	}
	frac := p - math.Floor(p)
	if d > 0 {
		return (1 - frac) / d
	}
	return frac / -d
}

// tileFrac returns p relative to tile index i, clamped to [0, 1).
func tileFrac(p float64, i int) float64 {
	f := p - float64(i)
	if f < 0 {
		return 0
	}
	if f >= 1 {
		return math.Nextafter(1, 0)
	}
	return f
}
