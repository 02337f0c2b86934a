package texture

// Pattern names a procedural placeholder used when a texture file is absent.
type Pattern string

const (
	PatternSolid   Pattern = "solid"
	PatternChecker Pattern = "checker"
	PatternBrick   Pattern = "brick"
	PatternWindow  Pattern = "window" // Frame with a see-through pane
	PatternDoor    Pattern = "door"   // Slides open across its frames
	PatternSprite  Pattern = "sprite" // Disc on a transparent background
)

// Placeholder draws a single-frame placeholder bitmap.
func Placeholder(pattern Pattern, r, g, b uint8, size int) *Bitmap {
	return PlaceholderFrames(pattern, r, g, b, size, 1)[0]
}

// PlaceholderFrames draws frames placeholder bitmaps. Doors open from frame 0
// (closed) to the last frame (open); other patterns pulse their brightness.
func PlaceholderFrames(pattern Pattern, r, g, b uint8, size, frames int) []*Bitmap {
	if size < 4 {
		size = 4
	}
	if frames < 1 {
		frames = 1
	}

	out := make([]*Bitmap, frames)
	for f := range out {
		bmp := NewBitmap(size, size, IsTransparentPattern(pattern))
		shade := 1.0
		if frames > 1 && pattern != PatternDoor {
			shade = 0.85 + 0.15*float64(f)/float64(frames-1)
		}
		base := Pack(scale(r, shade), scale(g, shade), scale(b, shade), 255)
		dark := Pack(scale(r, shade*0.6), scale(g, shade*0.6), scale(b, shade*0.6), 255)

		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				bmp.Set(x, y, patternTexel(pattern, x, y, size, f, frames, base, dark))
			}
		}
		out[f] = bmp
	}
	return out
}

// IsTransparentPattern reports whether pattern leaves zero-alpha texels.
func IsTransparentPattern(pattern Pattern) bool {
	switch pattern {
	case PatternWindow, PatternDoor, PatternSprite:
		return true
	}
	return false
}

func patternTexel(pattern Pattern, x, y, size, frame, frames int, base, dark uint32) uint32 {
	cell := max(1, size/8)
	switch pattern {
	case PatternChecker:
		if (x/cell+y/cell)%2 == 0 {
			return base
		}
		return dark
	case PatternBrick:
		row := y / (cell * 2)
		offset := 0
		if row%2 == 1 {
			offset = cell * 2
		}
		if y%(cell*2) == 0 || (x+offset)%(cell*4) == 0 {
			return dark
		}
		return base
	case PatternWindow:
		border := cell
		if x < border || y < border || x >= size-border || y >= size-border || x == size/2 || y == size/2 {
			return dark
		}
		return 0
	case PatternDoor:
		// The door panel slides left; columns left of the edge are open.
		edge := size * frame / max(1, frames-1)
		if frames == 1 {
			edge = 0
		}
		if x < edge {
			return 0
		}
		if x == edge || y%(cell*2) == 0 {
			return dark
		}
		return base
	case PatternSprite:
		c := float64(size-1) / 2
		dx, dy := float64(x)-c, float64(y)-c
		rr := c * c
		d := dx*dx + dy*dy
		if d > rr {
			return 0
		}
		if d > rr*0.7 {
			return dark
		}
		return base
	}
	return base
}

func scale(v uint8, f float64) uint8 {
	s := float64(v) * f
	if s > 255 {
		return 255
	}
	return uint8(s)
}
