package mathutil

// IntClamp limits x to the inclusive range [lo, hi].
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FloatSign is the grid step direction for a ray component: -1, 0 or 1.
func FloatSign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
