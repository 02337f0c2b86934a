package world

import (
	"github.com/TrolledWoods/raycaster/internal/texture"
)

// TileKind is the structural type of a tile
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileWindow
	TileDoor
)

var kindNames = map[string]TileKind{
	"floor":  TileFloor,
	"wall":   TileWall,
	"window": TileWindow,
	"door":   TileDoor,
}

func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileWindow:
		return "window"
	case TileDoor:
		return "door"
	}
	return "unknown"
}

// ParseTileKind maps a tiles.yaml kind name to a TileKind
func ParseTileKind(name string) (TileKind, bool) {
	kind, ok := kindNames[name]
	return kind, ok
}

// TileGraphics is what the renderer draws for a tile that rises out of the floor
type TileGraphics struct {
	Anim        texture.Animation
	Transparent bool // Rays continue through the tile after drawing it
}

// Tile is one cell of the TileMap
type Tile struct {
	kind     TileKind
	open     bool
	def      *TileDef
	graphics *TileGraphics

	// Sprites whose footprint overlaps this tile, maintained by TileMap.MoveSprite
	SpritesInside []SpriteID
}

// NewTile creates a tile from a definition. A nil definition is a bare floor.
func NewTile(def *TileDef, time float64) Tile {
	var t Tile
	if def == nil {
		return t
	}
	t.Apply(def, def.Open, time)
	return t
}

// Apply switches the tile to def, restarting its animation at time
func (t *Tile) Apply(def *TileDef, open bool, time float64) {
	t.def = def
	t.kind = def.Kind
	t.open = open
	t.graphics = def.graphics(open, time)
}

// SetKind switches the tile to the default definition for kind in tm
func (t *Tile) SetKind(kind TileKind, open bool, tm *TileManager, time float64) {
	t.Apply(tm.DefaultFor(kind), open, time)
}

// SetOpen opens or closes a door, starting the matching animation at time.
// Other kinds ignore it.
func (t *Tile) SetOpen(open bool, time float64) {
	if t.kind != TileDoor || t.def == nil || t.open == open {
		return
	}
	t.Apply(t.def, open, time)
}

func (t *Tile) Kind() TileKind {
	return t.kind
}

func (t *Tile) IsOpen() bool {
	return t.open
}

// Graphics returns nil for floor tiles
func (t *Tile) Graphics() *TileGraphics {
	return t.graphics
}

// IsSolid reports whether the tile blocks movement. Doors never block.
func (t *Tile) IsSolid() bool {
	switch t.kind {
	case TileWall, TileWindow:
		return true
	}
	return false
}
