package texture

// Mode selects what happens after the last frame of an animation.
type Mode uint8

const (
	Loop  Mode = iota // Wrap around to the first frame
	Clamp             // Hold the last frame
)

// Animation is a running instance of a texture's frame sequence.
type Animation struct {
	Texture ID
	Start   float64 // Elapsed time the animation started at
	Mode    Mode
}

func NewLoop(id ID, start float64) Animation {
	return Animation{Texture: id, Start: start, Mode: Loop}
}

func NewClamp(id ID, start float64) Animation {
	return Animation{Texture: id, Start: start, Mode: Clamp}
}

// frameIndex picks the frame shown at time t for an animation of count frames.
func (a Animation) frameIndex(count int, frameTime, t float64) int {
	if count <= 1 || frameTime <= 0 {
		return 0
	}
	elapsed := t - a.Start
	if elapsed < 0 {
		return 0
	}
	frame := int(elapsed / frameTime)
	if a.Mode == Clamp {
		return min(frame, count-1)
	}
	return frame % count
}
