package render

import (
	"math"

	"github.com/TrolledWoods/raycaster/internal/mathutil"
	"github.com/TrolledWoods/raycaster/internal/texture"
)

// DefaultFalloff is the distance falloff of Dimming.
const DefaultFalloff = 0.2

// Dimming is the brightness factor for geometry at distance.
func Dimming(distance, falloff float64) float64 {
	return 1 / (1 + falloff*distance*distance)
}

// DimColor scales the RGB channels of px by dim and makes it opaque.
func DimColor(px uint32, dim float64) uint32 {
	if dim >= 1 {
		return px | 0xff000000
	}
	if dim <= 0 {
		return 0xff000000
	}
	r := uint32(float64((px>>16)&0xff) * dim)
	g := uint32(float64((px>>8)&0xff) * dim)
	b := uint32(float64(px&0xff) * dim)
	return 0xff000000 | r<<16 | g<<8 | b
}

// ClipStrip trims a destination range [d0, d1) to [0, 1] and shrinks the crop
// window [c0, c1) by the same fractions. It reports false when nothing of the
// destination range is visible.
func ClipStrip(c0, c1, d0, d1 float64) (float64, float64, float64, float64, bool) {
	if (d0 < 0 && d1 < 0) || (d0 > 1 && d1 > 1) || d1 <= d0 || c1 <= c0 {
		return c0, c1, d0, d1, false
	}
	span := d1 - d0
	crop := c1 - c0
	if d0 < 0 {
		c0 += (-d0 / span) * crop
		d0 = 0
	}
	if d1 > 1 {
		c1 -= ((d1 - 1) / span) * crop
		d1 = 1
	}
	return c0, c1, d0, d1, true
}

// DrawStrip paints rows [c0, c1) of source column srcX of bmp into rows
// [d0, d1) of col. All four bounds are fractions of the respective heights.
// Each source texel covers a run of destination rows proportional to its
// share of the crop window. Zero-alpha texels of transparent bitmaps are
// skipped; everything written is opaque and scaled by dim.
func DrawStrip(col Column, bmp *texture.Bitmap, srcX int, c0, c1, d0, d1, dim float64) {
	c0, c1, d0, d1, ok := ClipStrip(c0, c1, d0, d1)
	if !ok {
		return
	}

	srcH := bmp.Height()
	dstH := col.Height()
	strip := bmp.Column(srcX)

	start := c0 * float64(srcH)
	goal := c1 * float64(srcH)
	yStart := d0 * float64(dstH)
	yEnd := d1 * float64(dstH)
	scale := (yEnd - yStart) / (goal - start)

	from, y := start, yStart
	for from < goal {
		// Walk to the next texel boundary, or the end of the crop window
		to := math.Floor(from) + 1
		next := yStart + (to-start)*scale
		if to >= goal {
			to = goal
			next = yEnd
		}

		texel := strip[mathutil.IntClamp(int(from), 0, srcH-1)]
		if !bmp.Transparent || texel>>24 != 0 {
			px := DimColor(texel, dim)
			// A row belongs to the segment containing its centre
			lo := max(int(math.Ceil(y-0.5)), 0)
			hi := min(int(math.Ceil(next-0.5)), dstH)
			for row := lo; row < hi; row++ {
				col.Set(row, px)
			}
		}

		y = next
		from = to
	}
}
