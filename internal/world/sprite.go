package world

import (
	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/texture"
)

// SpriteID identifies a sprite in a World
type SpriteID uint32

// Sprite is a camera-facing billboard standing on the floor grid
type Sprite struct {
	Pos     vec.Vec2
	Texture texture.ID
	Size    float64 // Width in world units, also the height fraction of a wall
	Anchor  float64 // 0 sits on the floor, 1 hangs from the ceiling
}
